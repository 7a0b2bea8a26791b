package jobs

import (
	"context"
	"net/http"

	"github.com/pagelift/pagelift-go/apierror"
	"github.com/pagelift/pagelift-go/transport"
)

// Stage is a job's position in the processing pipeline.
type Stage string

const (
	StageUploading  Stage = "uploading"
	StageQueued     Stage = "queued"
	StageProcessing Stage = "processing"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// Terminal returns true once the job can make no further progress.
// Unknown stages are treated as non-terminal and polling continues.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// Job is a point-in-time snapshot of a processing job. Each poll
// produces a fresh snapshot; snapshots are never mutated in place.
type Job struct {
	ID                string   `json:"id"`
	Stage             Stage    `json:"stage"`
	CurrentStep       string   `json:"current_step,omitempty"`
	VariantsCompleted []string `json:"variants_completed,omitempty"`
	VariantsReady     []string `json:"variants_ready,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// Ready returns true if the named output variant has a durably stored
// result.
func (j *Job) Ready(variant string) bool {
	for _, v := range j.VariantsReady {
		if v == variant {
			return true
		}
	}
	return false
}

// ListOptions filters a job listing.
type ListOptions struct {
	// Stage filters by current stage. Empty means all stages.
	Stage Stage
	// Limit caps the number of results. Zero means the server default.
	Limit int
	// Cursor resumes a previous listing.
	Cursor string
}

// ListResult is one page of a job listing.
type ListResult struct {
	Jobs       []Job  `json:"jobs"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Service reads jobs over the transport engine.
type Service struct {
	client *transport.Client
}

// NewService creates a job service on top of a transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Get fetches a fresh snapshot of one job.
func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	job, err := transport.Get[Job](s.client, ctx, "/v1/jobs/"+id)
	if err != nil {
		if apierror.IsNotFound(err) {
			return nil, apierror.NewNotFound("job", id).WithCause(err)
		}
		return nil, err
	}
	return job, nil
}

// List returns one page of jobs. Empty filters are dropped from the
// query string.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	query := transport.Query{
		"stage":  string(opts.Stage),
		"cursor": opts.Cursor,
	}
	if opts.Limit > 0 {
		query["limit"] = opts.Limit
	}
	resp, err := s.client.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/v1/jobs",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	var out ListResult
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
