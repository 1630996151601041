package report

import "errors"

// ErrFinalized is returned when rows are added to an aggregator that has
// already produced its summary.
var ErrFinalized = errors.New("aggregator is finalized")

// Summary holds the aggregate results of one reporting pass along with the
// full ordered row sequence.
type Summary struct {
	TotalMailboxes int
	UserMailboxes  int
	OtherMailboxes int
	TotalSizeBytes int64
	Rows           []ReportRow
}

// AverageSizeBytes returns the mean mailbox size, or 0 for an empty run.
func (s Summary) AverageSizeBytes() int64 {
	if s.TotalMailboxes == 0 {
		return 0
	}
	return s.TotalSizeBytes / int64(s.TotalMailboxes)
}

// UserRatio returns the share of user mailboxes as a percentage, 0 for an
// empty run.
func (s Summary) UserRatio() float64 {
	if s.TotalMailboxes == 0 {
		return 0
	}
	return float64(s.UserMailboxes) / float64(s.TotalMailboxes) * 100
}

// Aggregator folds report rows into running totals during the single
// sequential pass. It starts accumulating and becomes terminal after
// Finalize; further Add calls are a programming error.
type Aggregator struct {
	total     int
	users     int
	sizeBytes int64
	rows      []ReportRow
	finalized bool
}

// NewAggregator returns an empty aggregator in the accumulating state.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add folds one row into the running totals, preserving insertion order.
// Every row is counted exactly once, including disabled and non-user
// mailboxes.
func (a *Aggregator) Add(row ReportRow) error {
	if a.finalized {
		return ErrFinalized
	}

	a.total++
	if row.Type == TypeUser {
		a.users++
	}
	a.sizeBytes += row.SizeBytes
	a.rows = append(a.rows, row)

	return nil
}

// Finalize transitions the aggregator to its terminal state and returns the
// summary. Calling it again returns the same values.
func (a *Aggregator) Finalize() Summary {
	a.finalized = true
	return Summary{
		TotalMailboxes: a.total,
		UserMailboxes:  a.users,
		OtherMailboxes: a.total - a.users,
		TotalSizeBytes: a.sizeBytes,
		Rows:           a.rows,
	}
}
