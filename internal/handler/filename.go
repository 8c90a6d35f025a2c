package handler

import (
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdsidecar/internal/domain"
)

var (
	safeFilenameRE = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	unsafeCharRE   = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// sanitizeFilename reduces a client-supplied filename to a safe basename:
// path components are stripped and any character outside [a-zA-Z0-9._-] is
// replaced with an underscore.
func sanitizeFilename(raw string) (string, error) {
	if err := validation.Validate(raw,
		validation.Required.Error("missing filename"),
		validation.Length(1, 255),
	); err != nil {
		return "", &domain.InvalidInputError{Message: err.Error()}
	}

	name := filepath.Base(strings.TrimSpace(raw))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", &domain.InvalidInputError{Message: "invalid filename"}
	}
	if !safeFilenameRE.MatchString(name) {
		name = unsafeCharRE.ReplaceAllString(name, "_")
	}
	if name == "" {
		return "", &domain.InvalidInputError{Message: "invalid filename"}
	}
	return name, nil
}
