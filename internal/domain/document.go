package domain

import (
	"errors"
	"time"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrUnsupportedType  = errors.New("unsupported document type")
	ErrFileTooLarge     = errors.New("file exceeds size limit")
)

// Document is an uploaded PDF reduced to its extracted plain text. The
// original binary is discarded after extraction; Text may be empty when the
// file contains no extractable text.
type Document struct {
	ID           string
	OwnerID      string
	StoredName   string
	OriginalName string
	Text         string
	UploadedAt   time.Time
}
