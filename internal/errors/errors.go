package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages shared by several handlers
const (
	MessageUnauthorized  = "Please authenticate."
	MessageInvalidUpdate = "Invalid update request!"
	MessageInternal      = "Something went wrong, please try again later!"
)

// APIError is the message object carried by every error body
type APIError struct {
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(message string) *APIError {
	return &APIError{Message: message}
}

// ErrorsResponse is the {"errors":{"message":...}} body used by signup,
// profile, account and avatar routes
type ErrorsResponse struct {
	Errors *APIError `json:"errors"`
}

// ErrorResponse is the {"error":{"message":...}} body used by login and the
// authentication gate
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// Errors sends {"errors":{"message":message}} with statusCode
func Errors(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorsResponse{Errors: NewAPIError(message)})
}

// Error sends {"error":{"message":message}} with statusCode
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: NewAPIError(message)})
}

// Helper functions for common error responses

// Unauthorized sends the 401 response of the authentication gate
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, MessageUnauthorized)
}

// BadRequest sends a 400 response in the errors shape
func BadRequest(c *gin.Context, message string) {
	Errors(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 response in the error shape
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 response in the errors shape
func InternalError(c *gin.Context) {
	Errors(c, http.StatusInternalServerError, MessageInternal)
}

// Status sends statusCode with an empty body
func Status(c *gin.Context, statusCode int) {
	c.Status(statusCode)
}
