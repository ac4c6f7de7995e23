package dto

import "errors"

// Custom errors
var (
	ErrNoFile       = errors.New("a ticket file is required")
	ErrFileTooLarge = errors.New("ticket file exceeds the maximum upload size")
	ErrEmptyText    = errors.New("ticket text is required")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
