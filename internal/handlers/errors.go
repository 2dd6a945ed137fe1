package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/services"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, billing.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyRecorded):
		return http.StatusConflict
	case errors.Is(err, services.ErrProofTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrProofExpired):
		return http.StatusGone
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError answers a read. Unexpected failures get a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Terjadi kesalahan pada server"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondWriteError answers a failed write, passing the underlying message through
func respondWriteError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Write failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Gagal menyimpan: " + err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
