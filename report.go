package harvest

import "time"

// RunReport summarizes a scrape run: pages visited, records kept and
// dropped, and any per-URL errors encountered along the way.
type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time

	PagesFetched   int
	RecordsFound   int
	RecordsKept    int
	RecordsDropped int
	DetailFetches  int

	// Errors maps a URL to the error that stopped its processing.
	// Pagination and detail failures land here; the run continues.
	Errors map[string]string
}

// NewRunReport returns a report with its error map initialized.
func NewRunReport() *RunReport {
	return &RunReport{StartedAt: time.Now(), Errors: make(map[string]string)}
}

// Duration returns the wall time of the run, or time since start if the
// run has not finished.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
