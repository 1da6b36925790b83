package webserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorType categorizes webserver errors for API consumers.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeUpload     ErrorType = "upload"
	ErrorTypeFileIO     ErrorType = "file_io"
	ErrorTypeInternal   ErrorType = "internal"
)

// ErrorResponse is the structured error body for request-level failures.
// Analysis outcomes use the file_stats record shape instead; this shape
// covers everything that fails before a file reaches the analyzer.
type ErrorResponse struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Details     string    `json:"details"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// CategorizeError maps an error onto an ErrorResponse by inspecting its
// message, the same way upload failures are classified throughout.
func CategorizeError(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{
			Type:    ErrorTypeInternal,
			Code:    "unknown_error",
			Title:   "Something went wrong",
			Details: "No error details available",
		}
	}

	errMsg := err.Error()
	errMsgLower := strings.ToLower(errMsg)

	if strings.Contains(errMsgLower, "form") || strings.Contains(errMsgLower, "multipart") ||
		strings.Contains(errMsgLower, "retrieval") {
		return ErrorResponse{
			Type:    ErrorTypeUpload,
			Code:    "upload_form_error",
			Title:   "Upload failed",
			Details: errMsg,
			Suggestions: []string{
				"Make sure a file is selected in the form field named 'file'",
				"Check that the upload does not exceed the size limit",
			},
		}
	}

	if strings.Contains(errMsgLower, "file type") || strings.Contains(errMsgLower, "filename") ||
		strings.Contains(errMsgLower, "too large") || strings.Contains(errMsgLower, "invalid characters") {
		return ErrorResponse{
			Type:    ErrorTypeValidation,
			Code:    "invalid_upload",
			Title:   "File rejected",
			Details: errMsg,
			Suggestions: []string{
				"Upload a plain text file with an allowed extension",
				"Keep the filename free of path separators",
			},
		}
	}

	if strings.Contains(errMsgLower, "temporary file") || strings.Contains(errMsgLower, "write") {
		return ErrorResponse{
			Type:    ErrorTypeFileIO,
			Code:    "file_write_error",
			Title:   "Could not store the upload",
			Details: errMsg,
			Suggestions: []string{
				"Retry the upload",
				"Check available disk space on the server",
			},
		}
	}

	return ErrorResponse{
		Type:    ErrorTypeInternal,
		Code:    "internal_error",
		Title:   "Something went wrong",
		Details: errMsg,
	}
}

// WriteErrorResponse categorizes err and writes it as a JSON response.
func WriteErrorResponse(w http.ResponseWriter, err error, status int) {
	resp := CategorizeError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encodeErr := json.NewEncoder(w).Encode(resp)
	if encodeErr != nil {
		slog.Error("Failed to encode error response", "error", encodeErr)
	}
}
