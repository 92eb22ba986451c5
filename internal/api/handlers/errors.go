package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"job-board-api/internal/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// notFound is the client-facing message for the resource the handler acts
// on, e.g. "Job not found". Unrecognized errors become a 500 with the
// supplied fallback message; the underlying error is logged, never sent to
// the client.
func respondServiceError(c *gin.Context, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflictMessage(err)})
	default:
		log.Printf("Unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// conflictMessage returns the client-facing part of a conflict error,
// dropping the sentinel prefix used for errors.Is matching.
func conflictMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), services.ErrConflict.Error()+": ")
	if msg == services.ErrConflict.Error() {
		return "Conflict with the current state of the resource"
	}
	return msg
}
