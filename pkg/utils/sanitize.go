package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

// sanitize.go - Input sanitization utilities for security

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// ValidateUsername checks if username contains only allowed characters
// Returns true if valid
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips directory components and unsafe characters from a
// client-supplied filename so it can never escape the storage root.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
