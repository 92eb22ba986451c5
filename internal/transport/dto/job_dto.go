// internal/transport/dto/job_dto.go
package dto

import (
	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// SalaryInput is the salary object accepted on create/update. Min and max
// are type-checked independently; min <= max ordering is not enforced.
type SalaryInput struct {
	Min      *float64         `json:"min" validate:"omitempty,gte=0"`
	Max      *float64         `json:"max" validate:"omitempty,gte=0"`
	Currency *models.Currency `json:"currency" validate:"omitempty,oneof=USD EUR GBP INR"`
}

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title        string         `json:"title" validate:"required,min=1,max=200"`
	Company      string         `json:"company" validate:"required,min=1,max=200"`
	Location     string         `json:"location" validate:"required,min=1,max=200"`
	Type         models.JobType `json:"type" validate:"required,oneof=full-time part-time contract internship"`
	Description  string         `json:"description" validate:"required,min=1"`
	Requirements []string       `json:"requirements" validate:"required,min=1,dive,required"`
	Salary       *SalaryInput   `json:"salary" validate:"omitempty"`
	EmployerID   uuid.UUID      `json:"-"` // Set internally by handler from auth context
}

// ListActiveJobsRequest defines parameters for the public job listing.
type ListActiveJobsRequest struct {
	Limit  int `form:"limit,default=20" validate:"omitempty,gte=0"`
	Offset int `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListEmployerJobsRequest defines parameters for listing an employer's own jobs.
type ListEmployerJobsRequest struct {
	EmployerID uuid.UUID `json:"-" validate:"required"` // Set internally by handler
	Limit      int       `form:"limit,default=20" validate:"omitempty,gte=0"`
	Offset     int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// UpdateJobRequest defines the structure for a partial job update.
// Nil fields are left untouched. ExpectedVersion, when set, makes the
// update conditional on the row not having changed since it was read.
type UpdateJobRequest struct {
	ID              uuid.UUID         `json:"-" validate:"required"` // From URL path
	Title           *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Company         *string           `json:"company" validate:"omitempty,min=1,max=200"`
	Location        *string           `json:"location" validate:"omitempty,min=1,max=200"`
	Type            *models.JobType   `json:"type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Description     *string           `json:"description" validate:"omitempty,min=1"`
	Requirements    []string          `json:"requirements" validate:"omitempty,min=1,dive,required"`
	Salary          *SalaryInput      `json:"salary" validate:"omitempty"`
	Status          *models.JobStatus `json:"status" validate:"omitempty,oneof=active closed"`
	ExpectedVersion *int64            `json:"-"` // From If-Match header
}

// DeleteJobRequest defines the structure for deleting a job.
type DeleteJobRequest struct {
	ID              uuid.UUID `json:"-" validate:"required"`
	RequesterID     uuid.UUID `json:"-"`
	ExpectedVersion *int64    `json:"-"`
}

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID           uuid.UUID               `json:"id"`
	Title        string                  `json:"title"`
	Company      string                  `json:"company"`
	Location     string                  `json:"location"`
	Type         models.JobType          `json:"type"`
	Description  string                  `json:"description"`
	Requirements []string                `json:"requirements"`
	Salary       models.Salary           `json:"salary"`
	Status       models.JobStatus        `json:"status"`
	EmployerID   uuid.UUID               `json:"employer_id"`
	Employer     *models.EmployerSummary `json:"employer,omitempty"`
	Applications []uuid.UUID             `json:"applications,omitempty"`
	Version      int64                   `json:"version"`
	CreatedAt    string                  `json:"created_at"`
	UpdatedAt    string                  `json:"updated_at"`
}
