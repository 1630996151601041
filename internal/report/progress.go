package report

// Progress receives one Step call per processed mailbox with a 1-based,
// strictly increasing index, followed by a single Done call once the pass
// completes. Implementations must not influence the aggregation outcome.
type Progress interface {
	Step(current, total int)
	Done(total int)
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) Step(current, total int) {}

func (NopProgress) Done(total int) {}
