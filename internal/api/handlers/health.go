package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness for load balancers and uptime monitors. It
// answers without touching Postgres or Redis, so a degraded dependency
// does not take the whole job board out of rotation.
//
//	@Summary		Health check
//	@Description	Report whether the job board API is accepting requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string	"Service is accepting requests"
//	@Router			/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
