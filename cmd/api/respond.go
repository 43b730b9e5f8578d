package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/metrics"
)

// respond writes the uniform success envelope.
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"data":    data,
		"message": message,
	})
}

// respondError writes the uniform failure envelope.
func respondError(c *gin.Context, status int, message string, errs ...string) {
	body := gin.H{
		"status":  status,
		"message": message,
	}
	if len(errs) > 0 {
		body["errors"] = errs
	}
	c.JSON(status, body)
}

// respondStoreError maps domain errors to HTTP statuses. Anything
// unrecognized is a 500; the caller's message only leaks for the mapped
// cases.
func (api *API) respondStoreError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		respondError(c, http.StatusNotFound, msg)
	case errors.Is(err, database.ErrConflict):
		respondError(c, http.StatusConflict, msg)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenMismatch):
		respondError(c, http.StatusUnauthorized, "Invalid or expired token")
	default:
		api.log.ErrorWithErr("request failed", err)
		metrics.RecordError("api", "internal")
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
