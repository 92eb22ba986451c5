package handlers

import (
	"fmt"
	"strconv"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns validator errors into a field -> message map.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		}
	}
	return errorsMap
}

// parseIfMatch reads an optional If-Match header carrying an expected row
// version for optimistic concurrency. Returns nil when the header is absent.
func parseIfMatch(c *gin.Context) (*int64, error) {
	raw := c.GetHeader("If-Match")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid If-Match header: %q", raw)
	}
	return &v, nil
}

// MapUserToResponse converts a models.User to a dto.UserResponse
func MapUserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Company:   user.Company,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapJobToResponse converts a models.Job to a dto.JobResponse
func MapJobToResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Type:         job.Type,
		Description:  job.Description,
		Requirements: job.Requirements,
		Salary:       job.Salary,
		Status:       job.Status,
		EmployerID:   job.EmployerID,
		Version:      job.Version,
		CreatedAt:    job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    job.UpdatedAt.Format(time.RFC3339),
	}
}

// MapJobWithEmployerToResponse converts a listing row to a dto.JobResponse
func MapJobWithEmployerToResponse(job *models.JobWithEmployer) dto.JobResponse {
	resp := MapJobToResponse(&job.Job)
	employer := job.Employer
	resp.Employer = &employer
	return resp
}

// MapJobDetailToResponse converts a models.JobDetail to a dto.JobResponse
func MapJobDetailToResponse(detail *models.JobDetail) dto.JobResponse {
	resp := MapJobToResponse(&detail.Job)
	employer := detail.Employer
	resp.Employer = &employer
	resp.Applications = detail.ApplicationIDs
	return resp
}

// MapApplicationToResponse converts a models.Application to a dto.ApplicationResponse
func MapApplicationToResponse(app *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		CandidateID: app.CandidateID,
		Status:      app.Status,
		CoverLetter: app.CoverLetter,
		Resume:      app.Resume,
		Notes:       app.Notes,
		Version:     app.Version,
		CreatedAt:   app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   app.UpdatedAt.Format(time.RFC3339),
	}
}

// MapApplicationWithJobToResponse attaches the parent job summary.
func MapApplicationWithJobToResponse(app *models.ApplicationWithJob) dto.ApplicationResponse {
	resp := MapApplicationToResponse(&app.Application)
	job := app.Job
	resp.Job = &job
	return resp
}

// MapApplicationWithCandidateToResponse attaches the candidate summary.
func MapApplicationWithCandidateToResponse(app *models.ApplicationWithCandidate) dto.ApplicationResponse {
	resp := MapApplicationToResponse(&app.Application)
	candidate := app.Candidate
	resp.Candidate = &candidate
	return resp
}
