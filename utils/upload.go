package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaveUpload writes an uploaded file into dir under a unique name and
// returns the relative URL stored in the referencing row. Files are served
// back under the /uploads prefix.
func SaveUpload(ctx *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := ctx.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return "/uploads/" + filename, nil
}

// RemoveUpload deletes a previously saved upload given its relative URL.
// Used to avoid orphaned files when the referencing row insert fails.
func RemoveUpload(relativeURL, dir string) {
	os.Remove(filepath.Join(dir, filepath.Base(relativeURL)))
}
