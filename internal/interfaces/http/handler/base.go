package handler

import (
	"errors"
	"net/http"

	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/finman/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RequestIDKey is the context key for the request correlation ID
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// getClientID extracts the authenticated user's ID from JWT claims.
// Every finance resource is scoped to this ID.
func getClientID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// OK sends a 200 response with the given body
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the given body
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Problem writes an RFC 7807 problem response
func (h *BaseHandler) Problem(c *gin.Context, p *dto.Problem) {
	p.WithInstance(c.Request.URL.Path)
	if requestID := getRequestID(c); requestID != "" {
		p.WithTraceID(requestID)
	}
	c.Header("Content-Type", dto.ProblemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}

// HandleError maps any error to its problem response. Domain errors keep
// their message; everything else is reported as an opaque 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	h.Problem(c, dto.ProblemFromError(err))
}

// BindingError maps a gin binding failure to a 400 problem. Validator
// errors carry per-field messages; malformed JSON gets a generic detail.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	p := dto.NewProblem(http.StatusBadRequest, "bad-request", "Request validation failed")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		p.WithErrors(fields)
	} else {
		p.Detail = "Malformed request body"
	}
	h.Problem(c, p)
}

// validationMessage renders a single validator failure
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
