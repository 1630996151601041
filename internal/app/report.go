// Package app runs the reporting pass: enumerate mailboxes, fetch
// statistics, aggregate, and emit both artifacts.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greeddj/mailreport-go/internal/report"
)

// Source provides the tenant mailbox list and per-mailbox statistics.
type Source interface {
	ListMailboxes() ([]report.MailboxRecord, error)
	Statistics(identity string) (report.MailboxStatistics, error)
}

// Options tune one reporting run.
type Options struct {
	OutputDir string           // Artifact directory, "." when empty.
	Progress  report.Progress  // Per-mailbox observer, NopProgress when nil.
	Now       func() time.Time // Clock, time.Now when nil.
}

// Result describes a completed (or partially emitted) run.
type Result struct {
	Summary     report.Summary
	DetailPath  string   // Empty if the detail export failed.
	SummaryPath string   // Empty if the summary document failed.
	Warnings    []string // Non-fatal conditions recorded during the pass.
	Skipped     int      // Mailboxes excluded after a failed statistics fetch.
}

// Run executes one synchronous reporting pass over the source.
//
// Fetch-failure policy: a statistics failure on the first mailbox is treated
// as systemic (bad credentials, unreachable server) and aborts the run; any
// later failure skips that mailbox, records a warning, and continues. Size
// strings that cannot be parsed keep their row with byte size zero plus a
// warning.
//
// Both artifacts are attempted independently; if either write fails the
// partial Result is still returned alongside the joined error.
func Run(ctx context.Context, src Source, opts Options) (*Result, error) {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	progress := opts.Progress
	if progress == nil {
		progress = report.NopProgress{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	records, err := src.ListMailboxes()
	if err != nil {
		return nil, fmt.Errorf("list mailboxes: %w", err)
	}

	result := &Result{}
	agg := report.NewAggregator()
	total := len(records)

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stats, err := src.Statistics(rec.Identity)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("statistics fetch failed on first mailbox %s, aborting: %w", rec.Identity, err)
			}
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped %s: %v", rec.Identity, err))
			progress.Step(i+1, total)
			continue
		}

		row, err := report.Normalize(rec, stats)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("size unparseable for %s, counted as 0 bytes: %v", rec.Identity, err))
		}

		if err := agg.Add(row); err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", rec.Identity, err)
		}

		progress.Step(i+1, total)
	}

	result.Summary = agg.Finalize()
	progress.Done(total)

	stamp := now()

	detailPath, detailErr := report.WriteDetailExport(result.Summary.Rows, outputDir, stamp)
	if detailErr == nil {
		result.DetailPath = detailPath
	}

	summaryPath, summaryErr := report.WriteSummaryDocument(result.Summary, outputDir, stamp)
	if summaryErr == nil {
		result.SummaryPath = summaryPath
	}

	if err := errors.Join(detailErr, summaryErr); err != nil {
		return result, err
	}

	return result, nil
}
