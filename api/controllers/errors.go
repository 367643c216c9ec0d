package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/gin-gonic/gin"
)

// httpError is a failure the caller can fix, answered with its own status.
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

var errNoValidFields = badRequest("No valid fields to update")

// respondError writes err as the response: client errors keep their status,
// storage.ErrNotFound becomes 404 with notFound as the message, and anything
// else is an internal error exposing only err's message.
func respondError(g *gin.Context, err error, notFound string) {
	var he *httpError
	switch {
	case errors.As(err, &he):
		g.JSON(he.status, models.ErrorResponse{Error: he.message})
	case errors.Is(err, storage.ErrNotFound):
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFound})
	default:
		logging.Log.WithField("request_id", transport.RequestID(g)).Errorf("%s %s failed: %v", g.Request.Method, g.Request.URL.Path, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}
