package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"job-board-api/internal/api/middleware"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// allowedResumeExtensions is the upload allowlist, keyed by lowercase extension.
var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ApplicationHandler holds dependencies for application lifecycle operations.
type ApplicationHandler struct {
	service       services.ApplicationService
	validator     *validator.Validate
	maxResumeSize int64
}

// NewApplicationHandler creates a new ApplicationHandler. maxResumeSize caps
// resume uploads in bytes.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate, maxResumeSize int64) *ApplicationHandler {
	return &ApplicationHandler{
		service:       service,
		validator:     validate,
		maxResumeSize: maxResumeSize,
	}
}

// SubmitApplication godoc
//
//	@Summary		Apply for a job
//	@Description	Submits a multipart application (job ID, cover letter, resume file) for an active job. One application per candidate per job.
//	@Tags			applications
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			job			formData	string	true	"Job ID"	Format(uuid)
//	@Param			coverLetter	formData	string	true	"Cover letter text"
//	@Param			resume		formData	file	true	"Resume file (.pdf, .doc, .docx)"
//	@Success		201			{object}	dto.ApplicationResponse	"Application submitted"
//	@Failure		400			{object}	map[string]string		"Bad Request - Missing fields, bad file type, or job closed"
//	@Failure		401			{object}	map[string]string		"Unauthorized"
//	@Failure		404			{object}	map[string]string		"Not Found - Job not found"
//	@Failure		409			{object}	map[string]string		"Conflict - Already applied to this job"
//	@Failure		500			{object}	map[string]string		"Internal Server Error"
//	@Router			/applications [post]
//	@Security		BearerAuth
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("SubmitApplication: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := uuid.Parse(c.PostForm("job"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing job ID"})
		return
	}

	coverLetter := c.PostForm("coverLetter")

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file is required"})
		return
	}
	if fileHeader.Size > h.maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Resume exceeds the maximum size of %d bytes", h.maxResumeSize)})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedResumeExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume must be a .pdf, .doc, or .docx file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("SubmitApplication: Error opening uploaded resume: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read resume upload"})
		return
	}
	defer file.Close()

	req := dto.SubmitApplicationRequest{
		JobID:       jobID,
		CandidateID: userID,
		CoverLetter: coverLetter,
		Resume:      file,
		Filename:    fileHeader.Filename,
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	application, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to submit application")
		return
	}

	c.JSON(http.StatusCreated, MapApplicationToResponse(application))
}

// ListMyApplications godoc
//
//	@Summary		List own applications
//	@Description	Returns the authenticated candidate's applications, newest first, each with a summary of its job.
//	@Tags			applications
//	@Produce		json
//	@Param			limit	query		int							false	"Page size"		default(20)
//	@Param			offset	query		int							false	"Page offset"	default(0)
//	@Success		200		{array}		dto.ApplicationResponse		"Candidate's applications"
//	@Failure		400		{object}	map[string]string			"Bad Request - Invalid pagination"
//	@Failure		401		{object}	map[string]string			"Unauthorized"
//	@Failure		500		{object}	map[string]string			"Internal Server Error"
//	@Router			/applications [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ListMyApplications: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListCandidateApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.CandidateID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	applications, err := h.service.ListCandidateApplications(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Application not found", "Failed to retrieve applications")
		return
	}

	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, MapApplicationWithJobToResponse(&applications[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListJobApplications godoc
//
//	@Summary		List applications for a job
//	@Description	Returns the applications received by one of the authenticated employer's jobs, each with a summary of the candidate.
//	@Tags			applications
//	@Produce		json
//	@Param			jobId	path		string						true	"Job ID"	Format(uuid)
//	@Param			limit	query		int							false	"Page size"		default(20)
//	@Param			offset	query		int							false	"Page offset"	default(0)
//	@Success		200		{array}		dto.ApplicationResponse		"Applications for the job"
//	@Failure		400		{object}	map[string]string			"Bad Request - Invalid job ID or pagination"
//	@Failure		401		{object}	map[string]string			"Unauthorized"
//	@Failure		403		{object}	map[string]string			"Forbidden - Not the posting employer"
//	@Failure		404		{object}	map[string]string			"Not Found - Job not found"
//	@Failure		500		{object}	map[string]string			"Internal Server Error"
//	@Router			/applications/job/{jobId} [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ListJobApplications: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Registered under both /applications/job/:jobId and /jobs/:id/applications.
	jobIDStr := c.Param("jobId")
	if jobIDStr == "" {
		jobIDStr = c.Param("id")
	}
	jobID, err := uuid.Parse(jobIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.ListJobApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.JobID = jobID
	req.RequesterID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	applications, err := h.service.ListJobApplications(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to retrieve applications")
		return
	}

	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, MapApplicationWithCandidateToResponse(&applications[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateApplication godoc
//
//	@Summary		Update an application
//	@Description	Updates the status and review notes of an application. Only the employer who posted the job may update it.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string								true	"Application ID"	Format(uuid)
//	@Param			If-Match	header		int									false	"Expected application version"
//	@Param			update		body		dto.UpdateApplicationStatusRequest	true	"New status and optional notes"
//	@Success		200			{object}	dto.ApplicationResponse				"Application updated"
//	@Failure		400			{object}	map[string]string					"Bad Request - Invalid input"
//	@Failure		401			{object}	map[string]string					"Unauthorized"
//	@Failure		403			{object}	map[string]string					"Forbidden - Not the posting employer"
//	@Failure		404			{object}	map[string]string					"Not Found - Application not found"
//	@Failure		409			{object}	map[string]string					"Conflict - Version mismatch"
//	@Failure		500			{object}	map[string]string					"Internal Server Error"
//	@Router			/applications/{id} [put]
//	@Security		BearerAuth
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	h.updateStatus(c, true)
}

// UpdateApplicationStatus godoc
//
//	@Summary		Update an application's status
//	@Description	Updates only the status of an application, leaving review notes untouched. Only the employer who posted the job may update it.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string								true	"Application ID"	Format(uuid)
//	@Param			If-Match	header		int									false	"Expected application version"
//	@Param			update		body		dto.UpdateApplicationStatusRequest	true	"New status"
//	@Success		200			{object}	dto.ApplicationResponse				"Application updated"
//	@Failure		400			{object}	map[string]string					"Bad Request - Invalid input"
//	@Failure		401			{object}	map[string]string					"Unauthorized"
//	@Failure		403			{object}	map[string]string					"Forbidden - Not the posting employer"
//	@Failure		404			{object}	map[string]string					"Not Found - Application not found"
//	@Failure		409			{object}	map[string]string					"Conflict - Version mismatch"
//	@Failure		500			{object}	map[string]string					"Internal Server Error"
//	@Router			/applications/{id} [patch]
//	@Security		BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	h.updateStatus(c, false)
}

// updateStatus backs both the full update (status + notes) and the
// status-only route. When includeNotes is false any notes in the payload
// are dropped before the service call.
func (h *ApplicationHandler) updateStatus(c *gin.Context, includeNotes bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("UpdateApplicationStatus: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	expectedVersion, err := parseIfMatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = id
	req.RequesterID = userID
	req.ExpectedVersion = expectedVersion
	if !includeNotes {
		req.Notes = nil
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	application, err := h.service.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Application not found", "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, MapApplicationToResponse(application))
}

// DeleteApplication godoc
//
//	@Summary		Withdraw an application
//	@Description	Deletes an application and its stored resume. Only the employer who posted the job may delete it.
//	@Tags			applications
//	@Produce		json
//	@Param			id			path	string	true	"Application ID"	Format(uuid)
//	@Param			If-Match	header	int		false	"Expected application version"
//	@Success		204			"Application deleted"
//	@Failure		400			{object}	map[string]string	"Bad Request - Invalid application ID"
//	@Failure		401			{object}	map[string]string	"Unauthorized"
//	@Failure		403			{object}	map[string]string	"Forbidden - Not the posting employer"
//	@Failure		404			{object}	map[string]string	"Not Found - Application not found"
//	@Failure		409			{object}	map[string]string	"Conflict - Version mismatch"
//	@Failure		500			{object}	map[string]string	"Internal Server Error"
//	@Router			/applications/{id} [delete]
//	@Security		BearerAuth
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("DeleteApplication: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	expectedVersion, err := parseIfMatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := dto.DeleteApplicationRequest{
		ID:              id,
		RequesterID:     userID,
		ExpectedVersion: expectedVersion,
	}

	if err := h.service.Delete(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "Application not found", "Failed to delete application")
		return
	}

	c.Status(http.StatusNoContent)
}
