package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getevo/evo/v2/lib/outcome"
	"github.com/getevo/evo/v2/lib/text"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Input validation errors
	ErrorCodeInvalidInput          ErrorCode = "invalid_input"
	ErrorCodeValidationError       ErrorCode = "validation_error"
	ErrorCodeInvalidConversationID ErrorCode = "invalid_conversation_id"
	ErrorCodeInvalidPagination     ErrorCode = "invalid_pagination"
	ErrorCodeMissingRequired       ErrorCode = "missing_required"

	// Resource errors
	ErrorCodeNotFound             ErrorCode = "not_found"
	ErrorCodeConversationNotFound ErrorCode = "conversation_not_found"
	ErrorCodeNoMessages           ErrorCode = "no_messages"

	// Conflict errors
	ErrorCodeConflict      ErrorCode = "conflict"
	ErrorCodeSummaryExists ErrorCode = "summary_exists"

	// Internal errors
	ErrorCodeInternalError ErrorCode = "internal_error"
	ErrorCodeDatabaseError ErrorCode = "database_error"
	ErrorCodeAIError       ErrorCode = "ai_error"
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode `json:"error"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Details    string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Response returns an outcome.Response for the error
func (e AppError) Response() outcome.Response {
	var body = map[string]interface{}{
		"error":   string(e.Code),
		"message": e.Message,
	}
	if e.Details != "" {
		body["details"] = e.Details
	}
	return outcome.Response{
		ContentType: "application/json",
		StatusCode:  e.StatusCode,
		Data:        text.ToJSON(body),
	}
}

// NewError creates a new AppError
func NewError(code ErrorCode, message string, statusCode int) AppError {
	return AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewErrorWithDetails creates a new AppError with additional details
func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details string) AppError {
	return AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Predefined common errors
var (
	ErrInvalidInput = AppError{
		Code:       ErrorCodeInvalidInput,
		Message:    "Invalid request data",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrInvalidConversationID = AppError{
		Code:       ErrorCodeInvalidConversationID,
		Message:    "Invalid conversation ID format",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrInvalidPagination = AppError{
		Code:       ErrorCodeInvalidPagination,
		Message:    "Page must be >= 1 and limit must be between 1 and 100",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrConversationNotFound = AppError{
		Code:       ErrorCodeConversationNotFound,
		Message:    "Conversation not found",
		StatusCode: http.StatusNotFound,
	}

	ErrNoMessages = AppError{
		Code:       ErrorCodeNoMessages,
		Message:    "No messages found in this conversation",
		StatusCode: http.StatusNotFound,
	}

	ErrSummaryExists = AppError{
		Code:       ErrorCodeSummaryExists,
		Message:    "A summary already exists for this conversation",
		StatusCode: http.StatusConflict,
	}

	ErrNotFound = AppError{
		Code:       ErrorCodeNotFound,
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrInternalError = AppError{
		Code:       ErrorCodeInternalError,
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}

	ErrDatabaseError = AppError{
		Code:       ErrorCodeDatabaseError,
		Message:    "Database operation failed",
		StatusCode: http.StatusInternalServerError,
	}
)

// Helper function to create outcome.Response from AppError
func Error(err AppError) outcome.Response {
	return err.Response()
}

// =====================================================
// STANDARDIZED SUCCESS RESPONSE SYSTEM
// =====================================================

// APIResponse represents a standardized API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (r APIResponse) ToJSON() []byte {
	b, _ := json.Marshal(r)
	return b
}

// Meta contains metadata for API responses
type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"total_pages,omitempty"`
	Count      int   `json:"count,omitempty"`
}

// OK creates a standardized success response
func OK(data interface{}) outcome.Response {
	return outcome.Response{
		ContentType: "application/json",
		StatusCode:  http.StatusOK,
		Data: APIResponse{
			Success: true,
			Data:    data,
		}.ToJSON(),
	}
}

// OKWithMeta creates a success response with metadata
func OKWithMeta(data interface{}, meta *Meta) outcome.Response {
	return outcome.Response{
		ContentType: "application/json",
		StatusCode:  http.StatusOK,
		Data: APIResponse{
			Success: true,
			Data:    data,
			Meta:    meta,
		}.ToJSON(),
	}
}

// Created creates a 201 Created response
func Created(data interface{}) outcome.Response {
	return outcome.Response{
		ContentType: "application/json",
		StatusCode:  http.StatusCreated,
		Data: APIResponse{
			Success: true,
			Data:    data,
		}.ToJSON(),
	}
}

// Message creates a response with only a success message
func Message(message string) outcome.Response {
	return outcome.Response{
		ContentType: "application/json",
		StatusCode:  http.StatusOK,
		Data: APIResponse{
			Success: true,
			Message: message,
		}.ToJSON(),
	}
}

// Raw creates a JSON response without the success envelope. Used for
// infrastructure endpoints with a fixed body contract such as /healthcheck.
func Raw(statusCode int, data interface{}) outcome.Response {
	return outcome.Response{
		ContentType: "application/json",
		StatusCode:  statusCode,
		Data:        text.ToJSON(data),
	}
}

// ValidationError creates a 422 response for malformed request input
func ValidationError(message string) outcome.Response {
	return Error(NewError(ErrorCodeValidationError, message, http.StatusUnprocessableEntity))
}

// NotFound creates a 404 Not Found response
func NotFound(message string) outcome.Response {
	return Error(NewError(ErrorCodeNotFound, message, http.StatusNotFound))
}

// InternalError creates a 500 Internal Server Error response
func InternalError(message string) outcome.Response {
	return Error(NewError(ErrorCodeInternalError, message, http.StatusInternalServerError))
}
