// Package files registers uploads with the PageLift API and hands
// long-running processing off to the job watcher.
package files

import (
	"context"
	"net/http"

	"github.com/pagelift/pagelift-go/apierror"
	"github.com/pagelift/pagelift-go/jobs"
	"github.com/pagelift/pagelift-go/transport"
)

// File is a registered upload.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	BucketID    string `json:"bucket_id,omitempty"`
	// JobID is the processing job created for this file.
	JobID string `json:"job_id,omitempty"`
}

// RegisterRequest describes an upload to register.
type RegisterRequest struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	BucketID    string `json:"bucket_id,omitempty"`
}

// Service is a thin wrapper over the transport engine for the files
// endpoints.
type Service struct {
	client *transport.Client
	jobs   *jobs.Service
}

// NewService creates a file service on top of a transport client.
func NewService(client *transport.Client) *Service {
	return &Service{
		client: client,
		jobs:   jobs.NewService(client),
	}
}

// Register registers an upload. The call carries a generated
// idempotency key, so a transient failure mid-registration retries
// without creating a duplicate file.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*File, error) {
	return transport.Post[File](s.client, ctx, "/v1/files", req,
		transport.WithIdempotencyKey(transport.NewIdempotencyKey()))
}

// Get fetches one file.
func (s *Service) Get(ctx context.Context, id string) (*File, error) {
	file, err := transport.Get[File](s.client, ctx, "/v1/files/"+id)
	if err != nil {
		if apierror.IsNotFound(err) {
			return nil, apierror.NewNotFound("file", id).WithCause(err)
		}
		return nil, err
	}
	return file, nil
}

// Delete removes a file. DELETE is idempotent, so it retries on
// transient failures without a key.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.client.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/v1/files/" + id,
	})
	return err
}

// WaitForVariants blocks until the file's processing job has the
// requested output variants ready. See jobs.Service.WaitForVariants for
// the failure semantics.
func (s *Service) WaitForVariants(ctx context.Context, file *File, variants []string, opts jobs.WaitOptions) (*jobs.Job, error) {
	if file.JobID == "" {
		return nil, apierror.NewValidation("file has no processing job")
	}
	return s.jobs.WaitForVariants(ctx, file.JobID, variants, opts)
}
