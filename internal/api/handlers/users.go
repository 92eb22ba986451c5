package handlers

import (
	"log"
	"net/http"

	"job-board-api/internal/api/middleware"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler holds dependencies for identity operations.
type UserHandler struct {
	service   services.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validate,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Creates a candidate or employer account.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		dto.CreateUserRequest	true	"Registration details"
//	@Success		201		{object}	dto.UserResponse		"User created successfully"
//	@Failure		400		{object}	map[string]string		"Bad Request - Invalid input"
//	@Failure		409		{object}	map[string]string		"Conflict - Email already registered"
//	@Failure		500		{object}	map[string]string		"Internal Server Error"
//	@Router			/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "User not found", "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an access/refresh token pair.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		dto.LoginRequest	true	"Login credentials"
//	@Success		200			{object}	dto.TokenResponse	"Tokens issued"
//	@Failure		400			{object}	map[string]string	"Bad Request - Invalid input"
//	@Failure		401			{object}	map[string]string	"Unauthorized - Invalid credentials"
//	@Failure		500			{object}	map[string]string	"Internal Server Error"
//	@Router			/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "User not found", "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          MapUserToResponse(user),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh godoc
//
//	@Summary		Refresh tokens
//	@Description	Rotates a valid refresh token into a new token pair.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			token	body		dto.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	dto.TokenResponse	"New tokens issued"
//	@Failure		400		{object}	map[string]string	"Bad Request - Invalid input"
//	@Failure		401		{object}	map[string]string	"Unauthorized - Unknown or expired refresh token"
//	@Failure		500		{object}	map[string]string	"Internal Server Error"
//	@Router			/users/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	accessToken, refreshToken, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Session not found", "Failed to refresh tokens")
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Revokes the given refresh token.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			token	body		dto.LogoutRequest	true	"Refresh token to revoke"
//	@Success		204		"Token revoked"
//	@Failure		400		{object}	map[string]string	"Bad Request - Invalid input"
//	@Failure		401		{object}	map[string]string	"Unauthorized"
//	@Failure		500		{object}	map[string]string	"Internal Server Error"
//	@Router			/users/logout [post]
//	@Security		BearerAuth
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "Session not found", "Failed to log out")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMe godoc
//
//	@Summary		Get current user
//	@Description	Returns the profile of the authenticated user.
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	dto.UserResponse	"Current user"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		404	{object}	map[string]string	"Not Found"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/users/me [get]
//	@Security		BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("GetMe: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), &dto.GetUserByIDRequest{ID: userID})
	if err != nil {
		respondServiceError(c, err, "User not found", "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}
