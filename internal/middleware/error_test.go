package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rehabtrack/rehab-api/pkg/errors"
)

func newErrorTestEngine(attach func(c *gin.Context)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), ErrorHandler())
	engine.GET("/boom", attach)
	return engine
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandlerMapsAppErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad request", apperrors.BadRequest("patientId is required", nil), http.StatusBadRequest},
		{"not found", apperrors.NotFound("patient", nil), http.StatusNotFound},
		{"unavailable", &apperrors.AppError{Code: apperrors.ErrUnavailable, Message: "down"}, http.StatusServiceUnavailable},
		{"plain error", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newErrorTestEngine(func(c *gin.Context) {
				_ = c.Error(tc.err)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			require.Equal(t, tc.wantStatus, w.Code)
			body := decodeErrorBody(t, w)
			assert.Equal(t, tc.wantStatus, body.Code)
			assert.Equal(t, tc.err.Error(), body.Message)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	engine := newErrorTestEngine(func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"already": "written"})
		_ = c.Error(fmt.Errorf("ignored"))
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, w.Body.String(), "already")
}

func TestErrorHandlerEchoesRequestID(t *testing.T) {
	engine := newErrorTestEngine(func(c *gin.Context) {
		_ = c.Error(apperrors.BadRequest("bad input", nil))
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderXRequestID, "trace-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", decodeErrorBody(t, w).TraceID)
}
