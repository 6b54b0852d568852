package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"ocms/config"
	"os"
	"path/filepath"
	"time"
)

// SaveUploadedFile writes an uploaded file under destDir with a timestamped
// name. The size cap is enforced before anything touches disk.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	if max := config.AppConfig.MaxUploadBytes; max > 0 && file.Size > max {
		return "", fmt.Errorf("file exceeds the %d byte upload limit", max)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored file path to its public URL.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(filePath)
}
