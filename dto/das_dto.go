package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// ExtractedDocument holds the four fields recovered from a DAS slip.
// Every field is optional; a missing field is an empty string.
type ExtractedDocument struct {
	DocumentNumber     string `json:"document_number"`
	DueDate            string `json:"due_date"`            // YYYY-MM-DD
	AcceptanceDeadline string `json:"acceptance_deadline"` // YYYY-MM-DD
	TotalAmount        string `json:"total_amount"`        // point-decimal, e.g. "3412.23"
}

// MissingFields lists the JSON names of the fields that could not be extracted.
func (d ExtractedDocument) MissingFields() []string {
	missing := []string{}
	if d.DocumentNumber == "" {
		missing = append(missing, "document_number")
	}
	if d.DueDate == "" {
		missing = append(missing, "due_date")
	}
	if d.AcceptanceDeadline == "" {
		missing = append(missing, "acceptance_deadline")
	}
	if d.TotalAmount == "" {
		missing = append(missing, "total_amount")
	}
	return missing
}

// DASExtractRequest is the multipart upload for POST /das/extract
type DASExtractRequest struct {
	File     *multipart.FileHeader
	Password string
}

// Validate checks the uploaded file against the supported types and size limit.
func (r *DASExtractRequest) Validate(maxFileSize int64) error {
	if r.File == nil {
		return ErrFileRequired
	}

	if maxFileSize > 0 && r.File.Size > maxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, r.File.Size, maxFileSize)
	}

	if !IsSupportedFile(r.File.Filename) {
		return ErrUnsupportedFileType
	}

	return nil
}

// IsSupportedFile reports whether the filename has an extension we can read text from.
func IsSupportedFile(filename string) bool {
	filename = strings.ToLower(filename)
	for _, ext := range []string{".pdf", ".png", ".jpg", ".jpeg"} {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

// DASParseRequest is the JSON body for POST /das/parse
type DASParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// DASExtractResponse represents the response of both DAS endpoints
type DASExtractResponse struct {
	ExtractedDocument
	Source   string          `json:"source"` // "pdf_text", "ocr" or "text"
	Barcode  string          `json:"barcode,omitempty"`
	Missing  []string        `json:"missing_fields"`
	Quality  DocumentQuality `json:"quality"`
	RawText  string          `json:"raw_text,omitempty"`
	Filename string          `json:"filename,omitempty"`
}
