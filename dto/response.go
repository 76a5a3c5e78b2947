package dto

import "errors"

// Custom errors
var (
	ErrFileRequired        = errors.New("file is required")
	ErrUnsupportedFileType = errors.New("invalid file type. Supported: PDF, PNG, JPG")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyText           = errors.New("text is required")
	ErrNoTextExtracted     = errors.New("no text could be extracted from the document")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
