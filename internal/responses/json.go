package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"h2grid/internal/apperr"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// Error writes err with the status its kind maps to. Unclassified errors become
// a 500 carrying only the fallback message; the error itself is attached to
// the gin context for the request logger.
func Error(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Fail(c, status, nil, fallback)
		return
	}

	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Field == "" {
		message = appErr.Message
	}
	Fail(c, status, err, message)
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error, fallback string) {
	Error(c, err, fallback)
	c.Abort()
}

func StatusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsConflict(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
