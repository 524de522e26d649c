package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/daily"
	"github.com/teampulse/pulsebot/internal/store"
)

// respondError maps the core error taxonomy onto HTTP statuses. State and
// validation errors carry their message to the invoking user; persistence
// failures do not leak details.
func respondError(c *gin.Context, err error) {
	switch {
	case store.IsStateError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, daily.ErrBadDate),
		errors.Is(err, daily.ErrFutureDate),
		errors.Is(err, daily.ErrEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrVersionAnnounced):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
