package dto

import (
	"io"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// SubmitApplicationRequest carries a candidate's multipart submission.
// Resume is the uploaded file stream; the handler has already enforced
// the size cap and extension allowlist at the transport boundary.
type SubmitApplicationRequest struct {
	JobID       uuid.UUID `json:"job" validate:"required"`
	CandidateID uuid.UUID `json:"-"` // Set from user context
	CoverLetter string    `json:"coverLetter" validate:"required,min=1"`
	Resume      io.Reader `json:"-"`
	Filename    string    `json:"-"`
}

// CreateApplicationRequest is used internally by the submit service method
// once the resume has been persisted.
type CreateApplicationRequest struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	CoverLetter string
	ResumePath  string
}

// ListCandidateApplicationsRequest defines parameters for a candidate's own applications.
type ListCandidateApplicationsRequest struct {
	CandidateID uuid.UUID `json:"-" validate:"required"` // Set from user context
	Limit       int       `form:"limit,default=20" validate:"omitempty,gte=0"`
	Offset      int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListJobApplicationsRequest defines parameters for listing applications for a job.
type ListJobApplicationsRequest struct {
	JobID       uuid.UUID `json:"-" validate:"required"` // From path
	RequesterID uuid.UUID `json:"-"`                     // Set from user context for auth check
	Limit       int       `form:"limit,default=20" validate:"omitempty,gte=0"`
	Offset      int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// UpdateApplicationStatusRequest defines the structure for a status update.
// Notes is only populated by the full-update route; the status-only route
// leaves it nil. Both routes converge on the same service operation.
type UpdateApplicationStatusRequest struct {
	ID              uuid.UUID                `json:"-" validate:"required"` // From path
	RequesterID     uuid.UUID                `json:"-"`                     // Set from user context
	Status          models.ApplicationStatus `json:"status" validate:"required"`
	Notes           *string                  `json:"notes" validate:"omitempty,max=5000"`
	ExpectedVersion *int64                   `json:"-"` // From If-Match header
}

// DeleteApplicationRequest defines the structure for deleting an application.
type DeleteApplicationRequest struct {
	ID              uuid.UUID `json:"-" validate:"required"`
	RequesterID     uuid.UUID `json:"-"`
	ExpectedVersion *int64    `json:"-"`
}

// ApplicationResponse defines the standard application data returned to the client.
type ApplicationResponse struct {
	ID          uuid.UUID                `json:"id"`
	JobID       uuid.UUID                `json:"job_id"`
	CandidateID uuid.UUID                `json:"candidate_id"`
	Status      models.ApplicationStatus `json:"status"`
	CoverLetter string                   `json:"cover_letter"`
	Resume      string                   `json:"resume"`
	Notes       *string                  `json:"notes,omitempty"`
	Job         *models.JobSummary       `json:"job,omitempty"`
	Candidate   *models.CandidateSummary `json:"candidate,omitempty"`
	Version     int64                    `json:"version"`
	CreatedAt   string                   `json:"created_at"`
	UpdatedAt   string                   `json:"updated_at"`
}
