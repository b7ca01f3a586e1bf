package handler

import (
	"errors"
	"net/http"

	"flowboard/internal/middleware"
	"flowboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorID pulls the authenticated user out of the gin context.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// serviceError maps the service failure taxonomy onto HTTP responses.
// Validation and domain rejections keep their field scoping; everything
// storage-shaped is already reduced to the one generic failure.
func serviceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var derr *service.DomainError

	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case errors.Is(err, service.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.As(err, &derr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{derr.Field: []string{derr.Message}}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
