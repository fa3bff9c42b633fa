package util

import (
	"errors"
	"strings"
)

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName flattens path separators out of an uploaded file name
// and rejects traversal attempts.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	cleaned := fileNameReplacer.Replace(strings.TrimSpace(name))
	if cleaned == "" {
		return "", errors.New("invalid file name")
	}
	return cleaned, nil
}
