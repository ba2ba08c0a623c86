package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"h2grid/internal/apperr"
)

func TestError_MapsTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.InvalidField("budget", "must be greater than 0"), http.StatusBadRequest, "budget: must be greater than 0"},
		{"unauthorized", apperr.Unauthorized("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
		{"not found", apperr.NotFound("Plant not found"), http.StatusNotFound, "Plant not found"},
		{"conflict", apperr.Conflict("duplicate"), http.StatusConflict, "duplicate"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Failed to create plant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			Error(c, tt.err, "Failed to create plant")

			require.Equal(t, tt.status, rec.Code)
			var body APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.message, body.Message)
			if tt.status == http.StatusInternalServerError {
				assert.Empty(t, body.Error)
				assert.Len(t, c.Errors, 1)
			}
		})
	}
}
