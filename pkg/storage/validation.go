package storage

import (
	"fmt"
	"mime/multipart"
)

// Codes carried by FileValidationError.
const (
	CodeEmptyFile   = "empty_file"
	CodeTooLarge    = "file_too_large"
	CodeInvalidType = "invalid_type"
)

// FileValidationError explains why an upload was rejected.
type FileValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *FileValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Rule checks an upload whose MIME type was already sniffed.
type Rule func(fh *multipart.FileHeader, mimeType string) *FileValidationError

// NotEmpty rejects missing or zero-byte uploads.
func NotEmpty() Rule {
	return func(fh *multipart.FileHeader, _ string) *FileValidationError {
		if fh == nil || fh.Size == 0 {
			return &FileValidationError{Code: CodeEmptyFile, Message: "file is required"}
		}
		return nil
	}
}

// MaxSize rejects uploads larger than limit bytes.
func MaxSize(limit int64) Rule {
	return func(fh *multipart.FileHeader, _ string) *FileValidationError {
		if fh != nil && fh.Size > limit {
			return &FileValidationError{
				Code:    CodeTooLarge,
				Message: fmt.Sprintf("file must be at most %d bytes", limit),
			}
		}
		return nil
	}
}

// AllowedTypes accepts MIME types matching one of patterns; "image/*"
// style wildcards are supported.
func AllowedTypes(patterns ...string) Rule {
	return func(fh *multipart.FileHeader, mimeType string) *FileValidationError {
		if fh == nil || matchesMIME(mimeType, patterns) {
			return nil
		}
		return &FileValidationError{
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("file type %s is not allowed", baseMIME(mimeType)),
		}
	}
}

// ImageOnly accepts image/* uploads.
func ImageOnly() Rule {
	return func(fh *multipart.FileHeader, mimeType string) *FileValidationError {
		if err := AllowedTypes("image/*")(fh, mimeType); err != nil {
			err.Message = "file must be an image"
			return err
		}
		return nil
	}
}

// ValidateFile sniffs fh and runs rules in order, stopping at the first
// failure. The returned error carries field.
func ValidateFile(field string, fh *multipart.FileHeader, rules ...Rule) *FileValidationError {
	mimeType := MIMEOctetStream
	if fh != nil && fh.Size > 0 {
		mimeType = DetectMIME(fh)
	}
	for _, rule := range rules {
		if err := rule(fh, mimeType); err != nil {
			err.Field = field
			return err
		}
	}
	return nil
}
