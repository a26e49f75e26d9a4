package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is:
//   - logged with full technical details and the request ID (server-side)
//   - returned to the client as a user-facing message with an action and code
//
// The flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusFor(err))
//  3. Error is mapped via core.MapError to a user message
//  4. Technical error + context is logged for correlation
//  5. The JSON ErrorBody is written

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/dblibsync/internal/core"
	"github.com/JonMunkholm/dblibsync/internal/logging"
	"github.com/JonMunkholm/dblibsync/internal/schema"
)

// ErrorBody is the JSON structure of API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func errorBody(err error) ErrorBody {
	msg := core.MapError(err)
	return ErrorBody{
		Error:   err.Error(),
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
}

// respondError logs the technical error and writes the mapped message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	body := errorBody(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", body.Code,
	)

	// Unmapped technical text stays in the log. Schema errors name the tab
	// and column to fix, so they go out in full.
	if !isSchemaError(err) && !core.IsUserFacing(err) {
		body.Error = body.Message
	}
	writeJSON(w, statusCode, body)
}

// statusFor picks the HTTP status for an error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrSyncInProgress):
		return http.StatusConflict
	case isSchemaError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func isSchemaError(err error) bool {
	var verr *schema.ValidationError
	var cerr *schema.CollisionError
	return errors.As(err, &verr) || errors.As(err, &cerr)
}
