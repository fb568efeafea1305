package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rehabtrack/rehab-api/pkg/errors"
)

// Error attaches err to the context and aborts the chain; the error
// middleware renders the envelope from the attached error.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BadRequest reports a client error, such as a rejected binding.
func BadRequest(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		err = apperrors.BadRequest(err.Error(), nil)
	}
	Error(c, err)
}

// Internal reports a server-side failure.
func Internal(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		err = apperrors.Internal(err)
	}
	Error(c, err)
}
