// Package jobs reads and observes long-running processing jobs. A job
// moves through uploading -> queued -> processing and ends in completed
// or failed; each processed output variant (markdown, chunks, summary,
// ...) becomes ready independently, so callers can wait for a subset of
// variants without waiting for the whole job.
package jobs
