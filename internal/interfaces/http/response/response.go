package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "keygate.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response in the stable envelope
// {"error":{"type":...,"info":...}}. Anything that is not an AppError is
// masked as an internal error so no driver message ever reaches a client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.Internal(err)
	}

	c.JSON(appErr.Status, gin.H{"error": appErr})
}

// AbortError sends the error envelope and stops the handler chain. Meant for
// middleware, where the remaining chain must not run.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
