package handlers

import (
	"log"
	"net/http"

	"job-board-api/internal/api/middleware"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job registry operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

// CreateJob godoc
//
//	@Summary		Create a job posting
//	@Description	Allows a logged-in employer to publish a new job. The posting starts in the active status.
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			job	body		dto.CreateJobRequest	true	"Job posting to create"
//	@Success		201	{object}	dto.JobResponse			"Job created successfully"
//	@Failure		400	{object}	map[string]string		"Bad Request - Invalid input"
//	@Failure		401	{object}	map[string]string		"Unauthorized"
//	@Failure		403	{object}	map[string]string		"Forbidden - Only employers can post jobs"
//	@Failure		500	{object}	map[string]string		"Internal Server Error"
//	@Router			/jobs [post]
//	@Security		BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("CreateJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, MapJobToResponse(job))
}

// ListJobs godoc
//
//	@Summary		List active jobs
//	@Description	Public listing of jobs currently accepting applications, newest first.
//	@Tags			jobs
//	@Produce		json
//	@Param			limit	query		int					false	"Page size"		default(20)
//	@Param			offset	query		int					false	"Page offset"	default(0)
//	@Success		200		{array}		dto.JobResponse		"Active jobs"
//	@Failure		400		{object}	map[string]string	"Bad Request - Invalid pagination"
//	@Failure		500		{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListActiveJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListActiveJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to retrieve jobs")
		return
	}

	resp := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, MapJobWithEmployerToResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListEmployerJobs godoc
//
//	@Summary		List own job postings
//	@Description	Returns the authenticated employer's jobs regardless of status, with the IDs of received applications.
//	@Tags			jobs
//	@Produce		json
//	@Param			limit	query		int					false	"Page size"		default(20)
//	@Param			offset	query		int					false	"Page offset"	default(0)
//	@Success		200		{array}		dto.JobResponse		"Employer's jobs"
//	@Failure		400		{object}	map[string]string	"Bad Request - Invalid pagination"
//	@Failure		401		{object}	map[string]string	"Unauthorized"
//	@Failure		500		{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/employer [get]
//	@Security		BearerAuth
func (h *JobHandler) ListEmployerJobs(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ListEmployerJobs: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListEmployerJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListEmployerJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to retrieve jobs")
		return
	}

	resp := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, MapJobDetailToResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetJobByID godoc
//
//	@Summary		Get a job by ID
//	@Description	Retrieves a single job posting with employer details and application IDs.
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string				true	"Job ID"	Format(uuid)
//	@Success		200	{object}	dto.JobResponse		"Job found"
//	@Failure		400	{object}	map[string]string	"Bad Request - Invalid job ID"
//	@Failure		404	{object}	map[string]string	"Not Found - Job not found"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	detail, err := h.service.GetJobByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to retrieve job")
		return
	}

	c.JSON(http.StatusOK, MapJobDetailToResponse(detail))
}

// UpdateJob godoc
//
//	@Summary		Update a job posting
//	@Description	Partially updates a job. Only the posting employer may update it. An If-Match header with the known version makes the update conditional.
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Job ID"	Format(uuid)
//	@Param			If-Match	header		int						false	"Expected job version"
//	@Param			job			body		dto.UpdateJobRequest	true	"Fields to update"
//	@Success		200			{object}	dto.JobResponse			"Job updated"
//	@Failure		400			{object}	map[string]string		"Bad Request - Invalid input"
//	@Failure		401			{object}	map[string]string		"Unauthorized"
//	@Failure		403			{object}	map[string]string		"Forbidden - Not the posting employer"
//	@Failure		404			{object}	map[string]string		"Not Found - Job not found"
//	@Failure		409			{object}	map[string]string		"Conflict - Version mismatch"
//	@Failure		500			{object}	map[string]string		"Internal Server Error"
//	@Router			/jobs/{id} [put]
//	@Security		BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("UpdateJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	expectedVersion, err := parseIfMatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = id
	req.ExpectedVersion = expectedVersion

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.service.UpdateJob(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Job not found", "Failed to update job")
		return
	}

	c.JSON(http.StatusOK, MapJobToResponse(job))
}

// DeleteJob godoc
//
//	@Summary		Delete a job posting
//	@Description	Deletes a job together with all applications submitted to it, including their stored resumes. Only the posting employer may delete it.
//	@Tags			jobs
//	@Produce		json
//	@Param			id			path	string	true	"Job ID"	Format(uuid)
//	@Param			If-Match	header	int		false	"Expected job version"
//	@Success		204			"Job deleted"
//	@Failure		400			{object}	map[string]string	"Bad Request - Invalid job ID"
//	@Failure		401			{object}	map[string]string	"Unauthorized"
//	@Failure		403			{object}	map[string]string	"Forbidden - Not the posting employer"
//	@Failure		404			{object}	map[string]string	"Not Found - Job not found"
//	@Failure		409			{object}	map[string]string	"Conflict - Version mismatch"
//	@Failure		500			{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/{id} [delete]
//	@Security		BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("DeleteJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	expectedVersion, err := parseIfMatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := dto.DeleteJobRequest{
		ID:              id,
		RequesterID:     userID,
		ExpectedVersion: expectedVersion,
	}

	if err := h.service.DeleteJob(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "Job not found", "Failed to delete job")
		return
	}

	c.Status(http.StatusNoContent)
}
