package routes

import (
	"job-board-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to job applications.
// Every application route requires auth.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.POST("", applicationHandler.SubmitApplication)       // Candidate applies (multipart)
		applications.GET("", applicationHandler.ListMyApplications)       // Candidate's own applications
		applications.GET("/job/:jobId", applicationHandler.ListJobApplications) // Employer view of a job's applications
		applications.PUT("/:id", applicationHandler.UpdateApplication)           // Status + notes
		applications.PATCH("/:id", applicationHandler.UpdateApplicationStatus)   // Status only
		applications.DELETE("/:id", applicationHandler.DeleteApplication)
	}
}
