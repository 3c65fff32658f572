package errors

import (
	"strings"
	"unicode"
)

// ValidateVenvFolder validates the virtual-environment folder name passed on
// the command line. The folder is resolved relative to the project path, so
// anything that escapes the project directory is rejected.
//
// An empty name is valid: it means "no virtual environment, use global packages".
func ValidateVenvFolder(name string) error {
	if name == "" {
		return nil
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidVenv, "venv folder cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidVenv, "venv folder cannot be %q", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVenv, "venv folder contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputName validates an output manifest filename.
// It ensures the filename is a simple basename without path components,
// since the manifest is always written into the project directory.
func ValidateOutputName(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidOutput, "output filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidOutput, "output filename cannot contain path separators")
	}

	if filename == "." || filename == ".." {
		return New(ErrCodeInvalidOutput, "output filename cannot be %q", filename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOutput, "output filename contains invalid control characters")
		}
	}

	return nil
}
