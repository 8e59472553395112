// Package filestorage is the opaque blob store for activity and
// participation documents: bytes in, retrievable URL out.
package filestorage

import "mime/multipart"

// FileStorage defines the interface for document storage operations
type FileStorage interface {
	// SaveFile saves an uploaded document and returns its retrievable URL
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
