// Package stdout provides progress reporting using a terminal spinner.
package stdout

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps spinner.Spinner with additional methods for progress reporting.
// It implements the progress reporter interfaces of both the IMAP scanner
// (Update/IsQuiet) and the reporting pass (Step/Done).
type Spinner struct {
	spin    *spinner.Spinner // The underlying spinner instance.
	quiet   bool             // If true, suppresses all output.
	verbose bool             // If true, prints verbose messages.
}

// New creates a new Spinner instance.
// If quiet is true, no output will be displayed.
func New(quiet, verbose bool) *Spinner {
	s := &Spinner{
		quiet:   quiet,
		verbose: verbose,
	}
	if !quiet {
		s.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithColor("green"))
		s.spin.Start()
	}
	return s
}

// Update sets the spinner's current message.
func (s *Spinner) Update(message string) {
	if !s.quiet && s.spin != nil {
		if s.verbose {
			fmt.Printf("\r%s\n", message)
		} else {
			s.spin.Suffix = " " + message
		}
	}
}

// Step reports one processed mailbox out of the expected total.
func (s *Spinner) Step(current, total int) {
	s.Update(fmt.Sprintf("Scanning mailbox %d/%d", current, total))
}

// Done reports the end of the mailbox pass.
func (s *Spinner) Done(total int) {
	s.Update(fmt.Sprintf("Scanned %d mailboxes", total))
}

// Print writes a raw message without changing the spinner suffix logic.
func (s *Spinner) Print(message string) {
	if !s.quiet && s.spin != nil {
		fmt.Printf("\r%s\n", message)
	}
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	if !s.quiet && s.spin != nil {
		s.spin.FinalMSG = "✅ " + message + "\n"
		s.spin.Stop()
	}
}

// Error stops the spinner with an error message.
func (s *Spinner) Error(message string) {
	if !s.quiet && s.spin != nil {
		s.spin.FinalMSG = "❌ " + message + "\n"
		s.spin.Stop()
	}
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	if !s.quiet && s.spin != nil {
		s.spin.Stop()
	}
}

// Restart restarts the spinner animation when it was previously stopped.
func (s *Spinner) Restart() {
	if !s.quiet && s.spin != nil {
		s.spin.Restart()
	}
}

// IsQuiet returns true if quiet mode is enabled.
func (s *Spinner) IsQuiet() bool {
	return s.quiet
}
