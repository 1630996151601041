package report

import "time"

// Distinguished mailbox type tags as reported by the tenant directory. The
// report treats tags as opaque strings and only special-cases UserMailbox
// when counting; unknown tags land in the "other" bucket.
const (
	TypeUser      = "UserMailbox"
	TypeShared    = "SharedMailbox"
	TypeRoom      = "RoomMailbox"
	TypeEquipment = "EquipmentMailbox"
)

// MailboxRecord is one entry of the tenant directory.
type MailboxRecord struct {
	Identity       string // Principal name used to look up statistics.
	DisplayName    string // Human-readable name.
	EmailAddress   string // Primary SMTP address.
	Type           string // Type tag, e.g. UserMailbox or SharedMailbox.
	Enabled        bool   // Whether the mailbox is enabled.
	ArchiveEnabled bool   // Whether an archive mailbox is provisioned.
	Database       string // Optional backing database / location label.
}

// MailboxStatistics holds the usage metrics fetched per mailbox.
type MailboxStatistics struct {
	TotalItemSize string     // Dual-format size, e.g. "5.5 GB (5,911,495,680 bytes)".
	ItemCount     int64      // Number of items in the mailbox.
	LastLogonTime *time.Time // Nil when the mailbox was never logged into.
}

// ReportRow joins one directory record with its statistics. Rows are
// constructed once by Normalize and never mutated afterwards.
type ReportRow struct {
	DisplayName    string
	EmailAddress   string
	Type           string
	TotalItemSize  string // Original display string, kept for the detail export.
	SizeBytes      int64  // Exact byte count parsed from TotalItemSize.
	ItemCount      int64
	LastLogonTime  *time.Time
	Enabled        bool
	ArchiveEnabled bool
	Database       string
}

// Normalize projects a record and its statistics into a ReportRow. A size
// string without a parseable byte count yields SizeBytes 0 and a non-nil
// *ParseError; the row is still complete and must be emitted. Callers treat
// the error as a warning, not a failure.
func Normalize(rec MailboxRecord, stats MailboxStatistics) (ReportRow, error) {
	row := ReportRow{
		DisplayName:    rec.DisplayName,
		EmailAddress:   rec.EmailAddress,
		Type:           rec.Type,
		TotalItemSize:  stats.TotalItemSize,
		ItemCount:      stats.ItemCount,
		LastLogonTime:  stats.LastLogonTime,
		Enabled:        rec.Enabled,
		ArchiveEnabled: rec.ArchiveEnabled,
		Database:       rec.Database,
	}

	size, err := ParseByteSize(stats.TotalItemSize)
	if err != nil {
		return row, err
	}
	row.SizeBytes = size

	return row, nil
}
