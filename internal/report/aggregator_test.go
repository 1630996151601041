package report

import (
	"errors"
	"testing"
	"time"
)

func userRow(size int64) ReportRow {
	return ReportRow{Type: TypeUser, SizeBytes: size}
}

func TestAggregatorScenario(t *testing.T) {
	rows := []ReportRow{
		{DisplayName: "Alice Liddell", Type: TypeUser, SizeBytes: 1073741824},
		{DisplayName: "Bob Harris", Type: TypeUser, SizeBytes: 2147483648},
		{DisplayName: "Support", Type: TypeShared, SizeBytes: 524288000},
	}

	agg := NewAggregator()
	for _, row := range rows {
		if err := agg.Add(row); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	summary := agg.Finalize()

	if summary.TotalMailboxes != 3 {
		t.Errorf("TotalMailboxes = %d; want 3", summary.TotalMailboxes)
	}
	if summary.UserMailboxes != 2 {
		t.Errorf("UserMailboxes = %d; want 2", summary.UserMailboxes)
	}
	if summary.OtherMailboxes != 1 {
		t.Errorf("OtherMailboxes = %d; want 1", summary.OtherMailboxes)
	}
	if summary.TotalSizeBytes != 3745513472 {
		t.Errorf("TotalSizeBytes = %d; want 3745513472", summary.TotalSizeBytes)
	}
	if got := FormatByteSize(summary.TotalSizeBytes); got != "3.49 GB" {
		t.Errorf("formatted total = %s; want 3.49 GB", got)
	}
}

func TestAggregatorCountInvariant(t *testing.T) {
	tests := []struct {
		name  string
		types []string
	}{
		{
			name:  "empty run",
			types: nil,
		},
		{
			name:  "only users",
			types: []string{TypeUser, TypeUser},
		},
		{
			name:  "mixed types including unknown tag",
			types: []string{TypeUser, TypeShared, TypeRoom, TypeEquipment, "LinkedMailbox"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			for _, typ := range tt.types {
				if err := agg.Add(ReportRow{Type: typ}); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}

			summary := agg.Finalize()

			if summary.TotalMailboxes != len(tt.types) {
				t.Errorf("TotalMailboxes = %d; want %d", summary.TotalMailboxes, len(tt.types))
			}
			if summary.UserMailboxes+summary.OtherMailboxes != summary.TotalMailboxes {
				t.Errorf("user %d + other %d != total %d",
					summary.UserMailboxes, summary.OtherMailboxes, summary.TotalMailboxes)
			}
			if len(summary.Rows) != len(tt.types) {
				t.Errorf("retained %d rows; want %d", len(summary.Rows), len(tt.types))
			}
		})
	}
}

func TestAggregatorPreservesOrder(t *testing.T) {
	agg := NewAggregator()
	names := []string{"c", "a", "b"}
	for _, name := range names {
		if err := agg.Add(ReportRow{DisplayName: name, Type: TypeUser}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	summary := agg.Finalize()
	for i, name := range names {
		if summary.Rows[i].DisplayName != name {
			t.Errorf("row %d = %q; want %q", i, summary.Rows[i].DisplayName, name)
		}
	}
}

func TestAggregatorAddAfterFinalize(t *testing.T) {
	agg := NewAggregator()
	if err := agg.Add(userRow(100)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	agg.Finalize()

	err := agg.Add(userRow(100))
	if !errors.Is(err, ErrFinalized) {
		t.Errorf("Add after Finalize = %v; want ErrFinalized", err)
	}
}

func TestAggregatorFinalizeIdempotent(t *testing.T) {
	agg := NewAggregator()
	if err := agg.Add(userRow(1024)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := agg.Add(ReportRow{Type: TypeShared, SizeBytes: 2048}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	first := agg.Finalize()
	second := agg.Finalize()

	if first.TotalMailboxes != second.TotalMailboxes ||
		first.UserMailboxes != second.UserMailboxes ||
		first.OtherMailboxes != second.OtherMailboxes ||
		first.TotalSizeBytes != second.TotalSizeBytes {
		t.Errorf("Finalize not idempotent: first %+v, second %+v", first, second)
	}
}

func TestSummaryDerivedMetrics(t *testing.T) {
	tests := []struct {
		name        string
		summary     Summary
		wantAverage int64
		wantRatio   float64
	}{
		{
			name:        "zero mailboxes does not divide by zero",
			summary:     Summary{},
			wantAverage: 0,
			wantRatio:   0,
		},
		{
			name: "even split",
			summary: Summary{
				TotalMailboxes: 4,
				UserMailboxes:  2,
				TotalSizeBytes: 4096,
			},
			wantAverage: 1024,
			wantRatio:   50,
		},
		{
			name: "all users",
			summary: Summary{
				TotalMailboxes: 3,
				UserMailboxes:  3,
				TotalSizeBytes: 300,
			},
			wantAverage: 100,
			wantRatio:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.AverageSizeBytes(); got != tt.wantAverage {
				t.Errorf("AverageSizeBytes() = %d; want %d", got, tt.wantAverage)
			}
			if got := tt.summary.UserRatio(); got != tt.wantRatio {
				t.Errorf("UserRatio() = %f; want %f", got, tt.wantRatio)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	lastLogon := time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rec       MailboxRecord
		stats     MailboxStatistics
		wantBytes int64
		wantErr   bool
	}{
		{
			name: "full projection",
			rec: MailboxRecord{
				Identity:       "alice@corp.example",
				DisplayName:    "Alice Liddell",
				EmailAddress:   "alice@corp.example",
				Type:           TypeUser,
				Enabled:        true,
				ArchiveEnabled: true,
				Database:       "MBX-DB-01",
			},
			stats: MailboxStatistics{
				TotalItemSize: "1.00 GB (1,073,741,824 bytes)",
				ItemCount:     4211,
				LastLogonTime: &lastLogon,
			},
			wantBytes: 1073741824,
		},
		{
			name: "unparseable size keeps the row with zero bytes",
			rec: MailboxRecord{
				DisplayName:  "Meeting Room 1",
				EmailAddress: "room1@corp.example",
				Type:         TypeRoom,
			},
			stats: MailboxStatistics{
				TotalItemSize: "corrupted",
				ItemCount:     7,
			},
			wantBytes: 0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := Normalize(tt.rec, tt.stats)

			if tt.wantErr && err == nil {
				t.Error("expected parse error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if row.SizeBytes != tt.wantBytes {
				t.Errorf("SizeBytes = %d; want %d", row.SizeBytes, tt.wantBytes)
			}
			if row.DisplayName != tt.rec.DisplayName {
				t.Errorf("DisplayName = %q; want %q", row.DisplayName, tt.rec.DisplayName)
			}
			if row.TotalItemSize != tt.stats.TotalItemSize {
				t.Errorf("TotalItemSize = %q; want %q", row.TotalItemSize, tt.stats.TotalItemSize)
			}
			if row.ItemCount != tt.stats.ItemCount {
				t.Errorf("ItemCount = %d; want %d", row.ItemCount, tt.stats.ItemCount)
			}
			if row.Enabled != tt.rec.Enabled {
				t.Errorf("Enabled = %v; want %v", row.Enabled, tt.rec.Enabled)
			}
		})
	}
}
