package webserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slonskitech/slownik/src/api/dictionary"
)

const requestIDKey = "reqid"

// RequestID tags every request so admin actions can be correlated in
// the logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// respondError maps store errors onto the HTTP taxonomy. Unexpected
// failures are logged with the request id and never leak detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dictionary.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dictionary.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, dictionary.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error [%s] %s %s: %v", c.GetString(requestIDKey), c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
