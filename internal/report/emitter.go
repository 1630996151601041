package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// timestampLayout is embedded in artifact filenames to keep runs from
	// colliding.
	timestampLayout = "20060102_150405"
	// logonLayout renders last-logon timestamps in both artifacts.
	logonLayout = "2006-01-02 15:04:05"
)

// utf8BOM is prepended to the CSV export so spreadsheet tools detect the
// encoding and render Unicode display names correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// detailHeader is the fixed column contract of the detail export.
var detailHeader = []string{
	"DisplayName",
	"EmailAddress",
	"MailboxType",
	"TotalItemSize",
	"ItemCount",
	"LastLogonTime",
	"ArchiveEnabled",
}

// WriteDetailExport serializes the rows to a timestamped CSV file in dir and
// returns the full path. The file carries a header row even when there are
// no mailboxes.
func WriteDetailExport(rows []ReportRow, dir string, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("MailboxReport_%s.csv", now.Format(timestampLayout)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create detail export %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("write detail export %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(detailHeader); err != nil {
		return "", fmt.Errorf("write detail export header: %w", err)
	}

	for _, row := range rows {
		lastLogon := ""
		if row.LastLogonTime != nil {
			lastLogon = row.LastLogonTime.Format(logonLayout)
		}

		record := []string{
			row.DisplayName,
			row.EmailAddress,
			row.Type,
			row.TotalItemSize,
			strconv.FormatInt(row.ItemCount, 10),
			lastLogon,
			strconv.FormatBool(row.ArchiveEnabled),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write detail export row for %q: %w", row.EmailAddress, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush detail export %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close detail export %q: %w", path, err)
	}

	return path, nil
}

// WriteSummaryDocument renders the aggregate summary to a timestamped plain
// text file in dir and returns the full path.
func WriteSummaryDocument(summary Summary, dir string, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("MailboxSummary_%s.txt", now.Format(timestampLayout)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create summary document %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	_, err = fmt.Fprintf(f,
		"Mailbox Usage Summary\n"+
			"Generated: %s\n"+
			"\n"+
			"Total mailboxes:    %d\n"+
			"User mailboxes:     %d\n"+
			"Other mailboxes:    %d\n"+
			"\n"+
			"Total size:         %s\n"+
			"Average size:       %s\n"+
			"User mailbox ratio: %.1f%%\n",
		now.Format(logonLayout),
		summary.TotalMailboxes,
		summary.UserMailboxes,
		summary.OtherMailboxes,
		FormatByteSize(summary.TotalSizeBytes),
		FormatByteSize(summary.AverageSizeBytes()),
		summary.UserRatio(),
	)
	if err != nil {
		return "", fmt.Errorf("write summary document %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close summary document %q: %w", path, err)
	}

	return path, nil
}
