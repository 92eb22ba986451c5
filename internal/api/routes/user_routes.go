package routes

import (
	"job-board-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers all routes related to identity and sessions.
// Registration, login and refresh are public; logout and profile lookup require auth.
func RegisterUserRoutes(
	rg *gin.RouterGroup,
	userHandler handlers.UserHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	users := rg.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/refresh", userHandler.Refresh)
		users.POST("/logout", authMiddleware, userHandler.Logout)
		users.GET("/me", authMiddleware, userHandler.GetMe)
	}
}
