package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/layout"
	"github.com/katalvlaran/gridpath/visualizer"
)

// ErrSessionNotFound indicates an unknown or malformed session id.
var ErrSessionNotFound = errors.New("server: session not found")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, layout.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, visualizer.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, visualizer.ErrMissingEndpoints):
		return http.StatusUnprocessableEntity
	case errors.Is(err, visualizer.ErrBadMode),
		errors.Is(err, gridgraph.ErrEmptyGrid),
		errors.Is(err, gridgraph.ErrTooLarge),
		errors.Is(err, gridgraph.ErrNonRectangular),
		errors.Is(err, gridgraph.ErrBadSymbol),
		errors.Is(err, gridgraph.ErrDuplicateRole),
		errors.Is(err, gridgraph.ErrOutOfBounds),
		errors.Is(err, gridgraph.ErrWallCell),
		errors.Is(err, gridgraph.ErrRoleCell),
		errors.Is(err, layout.ErrEmptyName),
		errors.Is(err, layout.ErrBadName):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body with its mapped status.
func fail(ctx *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
		_ = ctx.Error(err)
	}
	ctx.JSON(status, gin.H{"error": msg})
}
