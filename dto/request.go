package dto

import (
	"mime/multipart"
	"strings"
)

// TicketUploadRequest carries a scanned ticket (image or PDF) for OCR and
// extraction.
type TicketUploadRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// Validate performs basic validation on the request
func (r *TicketUploadRequest) Validate(maxSize int64) error {
	if r.File == nil {
		return ErrNoFile
	}
	if r.File.Size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// TicketTextRequest carries already-recognized OCR text, bypassing the OCR
// backends entirely.
type TicketTextRequest struct {
	Text string `json:"text"`
}

// Validate performs basic validation on the request
func (r *TicketTextRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}
