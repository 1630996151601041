package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testStamp = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestWriteDetailExport(t *testing.T) {
	lastLogon := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := []ReportRow{
		{
			DisplayName:    "Åsa Öberg",
			EmailAddress:   "asa@corp.example",
			Type:           TypeUser,
			TotalItemSize:  "1.00 GB (1,073,741,824 bytes)",
			SizeBytes:      1073741824,
			ItemCount:      4211,
			LastLogonTime:  &lastLogon,
			Enabled:        true,
			ArchiveEnabled: true,
		},
		{
			DisplayName:   "Support",
			EmailAddress:  "support@corp.example",
			Type:          TypeShared,
			TotalItemSize: "500.00 MB (524,288,000 bytes)",
			SizeBytes:     524288000,
			ItemCount:     911,
		},
	}

	dir := t.TempDir()
	path, err := WriteDetailExport(rows, dir, testStamp)
	if err != nil {
		t.Fatalf("WriteDetailExport: %v", err)
	}

	if filepath.Base(path) != "MailboxReport_20260314_150926.csv" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("export missing UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	wantHeader := "DisplayName,EmailAddress,MailboxType,TotalItemSize,ItemCount,LastLogonTime,ArchiveEnabled"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header = %q; want %q", got, wantHeader)
	}

	first := records[1]
	if first[0] != "Åsa Öberg" {
		t.Errorf("unicode display name mangled: %q", first[0])
	}
	if first[3] != "1.00 GB (1,073,741,824 bytes)" {
		t.Errorf("TotalItemSize must keep the original display string, got %q", first[3])
	}
	if first[4] != "4211" {
		t.Errorf("ItemCount = %q; want 4211", first[4])
	}
	if first[5] != "2026-03-01 08:00:00" {
		t.Errorf("LastLogonTime = %q", first[5])
	}
	if first[6] != "true" {
		t.Errorf("ArchiveEnabled = %q; want true", first[6])
	}

	second := records[2]
	if second[5] != "" {
		t.Errorf("absent last logon must serialize empty, got %q", second[5])
	}
	if second[6] != "false" {
		t.Errorf("ArchiveEnabled = %q; want false", second[6])
	}
}

func TestWriteDetailExportEmptyRun(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDetailExport(nil, dir, testStamp)
	if err != nil {
		t.Fatalf("WriteDetailExport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	content := strings.TrimSpace(string(bytes.TrimPrefix(data, utf8BOM)))
	if strings.Count(content, "\n") != 0 || !strings.HasPrefix(content, "DisplayName,") {
		t.Errorf("empty run must emit exactly the header, got %q", content)
	}
}

func TestWriteDetailExportBadDestination(t *testing.T) {
	_, err := WriteDetailExport(nil, filepath.Join(t.TempDir(), "missing", "nested"), testStamp)
	if err == nil {
		t.Fatal("expected error for unwritable destination")
	}
}

func TestWriteSummaryDocument(t *testing.T) {
	summary := Summary{
		TotalMailboxes: 3,
		UserMailboxes:  2,
		OtherMailboxes: 1,
		TotalSizeBytes: 3745513472,
	}

	dir := t.TempDir()
	path, err := WriteSummaryDocument(summary, dir, testStamp)
	if err != nil {
		t.Fatalf("WriteSummaryDocument: %v", err)
	}

	if filepath.Base(path) != "MailboxSummary_20260314_150926.txt" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Generated: 2026-03-14 15:09:26",
		"Total mailboxes:    3",
		"User mailboxes:     2",
		"Other mailboxes:    1",
		"Total size:         3.49 GB",
		"User mailbox ratio: 66.7%",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("summary missing %q in:\n%s", want, content)
		}
	}
}

func TestWriteSummaryDocumentEmptyRun(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteSummaryDocument(Summary{}, dir, testStamp)
	if err != nil {
		t.Fatalf("WriteSummaryDocument: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Total mailboxes:    0",
		"Total size:         0.00 MB",
		"Average size:       0.00 MB",
		"User mailbox ratio: 0.0%",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("summary missing %q in:\n%s", want, content)
		}
	}
}
