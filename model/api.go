// Package model defines the data structures for the course directory backend.
package model

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Page describes one page of a listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the next/prev page descriptors of a listing. A descriptor
// is omitted when the corresponding page does not exist.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// ListResult is the envelope returned by every listing endpoint.
type ListResult struct {
	Success    bool                     `json:"success"`
	Count      int                      `json:"count"`
	Pagination Pagination               `json:"pagination"`
	Data       []map[string]interface{} `json:"data"`
}

// ErrorResponse is the error type surfaced to the HTTP layer. The status code
// selects the response status, the message becomes the response body.
type ErrorResponse struct {
	StatusCode int
	Message    string
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// BadRequest builds a 400 error.
func BadRequest(format string, args ...interface{}) *ErrorResponse {
	return &ErrorResponse{StatusCode: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a 404 error.
func NotFound(format string, args ...interface{}) *ErrorResponse {
	return &ErrorResponse{StatusCode: fiber.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds a 401 error.
func Unauthorized(format string, args ...interface{}) *ErrorResponse {
	return &ErrorResponse{StatusCode: fiber.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a 403 error.
func Forbidden(format string, args ...interface{}) *ErrorResponse {
	return &ErrorResponse{StatusCode: fiber.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a 409 error, used for unique index violations.
func Conflict(format string, args ...interface{}) *ErrorResponse {
	return &ErrorResponse{StatusCode: fiber.StatusConflict, Message: fmt.Sprintf(format, args...)}
}
