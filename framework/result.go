package framework

import (
	"fmt"
	"io"
)

type Results struct {
	Steps []StepResult
	// Fatal is set if the run was abandoned, for instance because the transcript could
	// not be written. Steps after the failure point are absent from Steps.
	Fatal error
}

type StepResult struct {
	ID     StepID
	Status int
	Errors []error
}

type StepID struct {
	Index int
	Title string
}

func (s StepID) String() string {
	return fmt.Sprintf("%d. %s", s.Index, s.Title)
}

// TransportFailures returns the number of steps that never got an HTTP response.
func (r Results) TransportFailures() int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == 0 {
			n++
		}
	}
	return n
}

// PrintResults writes a short per-step summary. It reports what happened, not whether the
// API behaved correctly.
func PrintResults(w io.Writer, r Results) {
	fmt.Fprintf(w, "Executed %d steps", len(r.Steps))
	if n := r.TransportFailures(); n > 0 {
		fmt.Fprintf(w, " (%d without an HTTP response)", n)
	}
	fmt.Fprintln(w)
	for _, s := range r.Steps {
		fmt.Fprintf(w, "  %-32s HTTP %d\n", s.ID, s.Status)
	}
	if r.Fatal != nil {
		fmt.Fprintf(w, "Run aborted: %s\n", r.Fatal)
	}
}
