package middleware

import (
	"net/http"

	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			problem := dto.NewProblem(http.StatusRequestEntityTooLarge,
				"request-too-large", "Request body exceeds maximum allowed size").
				WithInstance(c.Request.URL.Path)
			c.Header("Content-Type", dto.ProblemContentType)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, problem)
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
