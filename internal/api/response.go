package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/view"
)

// ErrItemNotFound is returned for unknown shop item ids
var ErrItemNotFound = errors.New("shop item not found")

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code         string             `json:"code"`
	Message      string             `json:"message"`
	TraceID      string             `json:"trace_id,omitempty"`
	Notification *view.Notification `json:"notification,omitempty"`
}

// ActionResponse is the body of a settled store action
type ActionResponse struct {
	Result       game.Result       `json:"result"`
	Notification view.Notification `json:"notification"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, statusCode int, code, message, traceID string, n *view.Notification) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:         code,
		Message:      message,
		TraceID:      traceID,
		Notification: n,
	})
}

// WriteSuccess writes data as JSON
func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// classify maps an error to its HTTP status and error code
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrNotConnected):
		return http.StatusConflict, "not_connected"
	case errors.Is(err, game.ErrInsufficientBalance):
		return http.StatusConflict, "insufficient_balance"
	case errors.Is(err, game.ErrConnectInProgress):
		return http.StatusConflict, "connect_in_progress"
	case errors.Is(err, game.ErrPetNotFound):
		return http.StatusNotFound, "pet_not_found"
	case errors.Is(err, view.ErrPostNotFound):
		return http.StatusNotFound, "post_not_found"
	case errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound, "item_not_found"
	case errors.Is(err, game.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, game.ErrOperationFailed):
		return http.StatusBadGateway, "operation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
