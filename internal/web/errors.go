package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with the request ID and returned to the client as the
// mapped core.UserMessage: JSON for /api routes and JSON clients, an HTML
// page otherwise.

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	errRateLimited = errors.New("rate limit exceeded")
	errInvalidID   = errors.New("invalid id")
	errBadBody     = errors.New("invalid request body")
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Ref     string `json:"ref,omitempty"`
}

// respondError logs err and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	writeError(w, r, statusCode, err)
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	userMsg := core.MapError(err)

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		writeJSON(w, statusCode, toErrorResponse(userMsg))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorPage(userMsg.Message, userMsg.Action, userMsg.Code, userMsg.Ref).Render(r.Context(), w); err != nil {
		slog.Error("render error page", "error", err)
	}
}

func toErrorResponse(msg core.UserMessage) ErrorResponse {
	return ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
		Field:   msg.Field,
		Ref:     msg.Ref,
	}
}

// statusFor picks the HTTP status for an operation error.
func statusFor(err error) int {
	switch {
	case core.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrAlreadyPersisted):
		return http.StatusConflict
	case errors.Is(err, core.ErrWritesBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorAlert renders err as an inline alert for pages that stay usable.
func errorAlert(err error) templ.Component {
	msg := core.MapError(err)
	return templates.ErrorAlert(msg.Message, msg.Action, msg.Code, msg.Ref)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
