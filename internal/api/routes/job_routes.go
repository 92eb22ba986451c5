package routes

import (
	"job-board-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings.
// Browsing jobs is public; posting, updating and deleting require auth.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)                    // Public listing of active jobs
		jobs.GET("/:id", jobHandler.GetJobByID)              // Public job detail
		jobs.POST("", authMiddleware, jobHandler.CreateJob)  // Employer posts a job
		jobs.GET("/employer", authMiddleware, jobHandler.ListEmployerJobs)
		jobs.PUT("/:id", authMiddleware, jobHandler.UpdateJob)
		jobs.DELETE("/:id", authMiddleware, jobHandler.DeleteJob)
		jobs.GET("/:id/applications", authMiddleware, applicationHandler.ListJobApplications)
	}
}
