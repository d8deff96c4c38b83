package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HTTPError is the body of every non-2xx store response.
// swagger:model HTTPError
type HTTPError struct {
	Error string `json:"error" example:"Product not found"`
}

// Error aborts the request with {"error": msg}.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}

// Internal logs err through the access logger and answers 500 with msg.
func Internal(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, msg)
}

// BindError answers 400 for a failed ShouldBindJSON, naming the first
// offending field when the failure came from validation.
func BindError(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusBadRequest, bindMessage(err))
}

func bindMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Invalid request body"
	}
	fe := vErrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
