package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//     and a stable code users can quote to support
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via mapError to a user message, code, and status
//  4. Technical error + context is logged with request ID for correlation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/restopsdev/platewatch/internal/ingest"
	"github.com/restopsdev/platewatch/internal/report"
	"github.com/restopsdev/platewatch/internal/session"
)

// ErrorResponse is the JSON structure for API error responses. It includes
// both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// userMessage pairs a user-facing message with a support code and status.
type userMessage struct {
	Status  int
	Code    string
	Message string
	Action  string
}

// mapError translates pipeline errors into user messages.
//
// Codes:
//
//	VAL001 - schema error: missing columns / empty file / duplicate keys
//	VAL002 - data quality error: non-numeric values in a numeric column
//	QRY001 - unknown sort column
//	QRY002 - unknown filter name
//	RPT001 - processing failed; no report was produced
//	SES001 - no report stored for this session
//	SYS001 - unexpected internal error
func mapError(err error) userMessage {
	var schemaErr *ingest.SchemaError
	if errors.As(err, &schemaErr) {
		return userMessage{
			Status:  http.StatusBadRequest,
			Code:    "VAL001",
			Message: schemaErr.Error(),
			Action:  "Fix the file and upload it again",
		}
	}

	var qualityErr *ingest.DataQualityError
	if errors.As(err, &qualityErr) {
		return userMessage{
			Status:  http.StatusBadRequest,
			Code:    "VAL002",
			Message: qualityErr.Error(),
			Action:  "Remove text from numeric cells and upload again",
		}
	}

	var sortErr *report.UnknownSortColumnError
	if errors.As(err, &sortErr) {
		return userMessage{
			Status:  http.StatusBadRequest,
			Code:    "QRY001",
			Message: sortErr.Error(),
			Action:  "Sort by one of the report's column names",
		}
	}

	var filterErr *report.UnknownFilterError
	if errors.As(err, &filterErr) {
		return userMessage{
			Status:  http.StatusBadRequest,
			Code:    "QRY002",
			Message: filterErr.Error(),
			Action:  "Use one of: all, high_shrinkage, high_waste, missing_stock, negative_shrinkage",
		}
	}

	var procErr *report.ProcessingError
	if errors.As(err, &procErr) {
		return userMessage{
			Status:  http.StatusUnprocessableEntity,
			Code:    "RPT001",
			Message: "Processing failed and no report was produced",
			Action:  "Check the uploaded files and try again",
		}
	}

	if errors.Is(err, session.ErrNotFound) {
		return userMessage{
			Status:  http.StatusNotFound,
			Code:    "SES001",
			Message: "No report available for this session",
			Action:  "Upload the four CSV files or load the sample data first",
		}
	}

	return userMessage{
		Status:  http.StatusInternalServerError,
		Code:    "SYS001",
		Message: "Something went wrong",
		Action:  "Please try again",
	}
}

// respondError logs the technical error and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := mapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", msg.Status,
		"error", err.Error(),
		"code", msg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(msg.Status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeError writes a plain JSON error response for middleware-level
// failures that have no pipeline error to map.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Message: message, Code: "SYS001"})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
