// Package manifest writes the pinned requirements file from the intersection
// of imported and installed packages.
package manifest

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultFilename is the manifest written into the project directory.
const DefaultFilename = "requirements.txt"

// Write emits one pinned `name==version` line per imported package that
// matches an installed one, and returns the number of lines written.
//
// A match is either raw name equality or equality after both sides have
// underscores replaced by hyphens (pip normalizes hyphens, import names use
// underscores, so both spellings are compared). The emitted name is the
// installed map's key. At most one line is written per imported name; the
// first installed match wins. Imported names with no match are skipped
// silently. Line order follows the iteration order of the imported set and
// is not stable across runs.
func Write(w io.Writer, installed map[string]string, imported map[string]bool) (int, error) {
	written := 0
	for pkg := range imported {
		for name, version := range installed {
			if pkg == name || hyphenated(pkg) == hyphenated(name) {
				if _, err := fmt.Fprintf(w, "%s==%s\n", name, version); err != nil {
					return written, err
				}
				written++
				break
			}
		}
	}
	return written, nil
}

// WriteFile writes the manifest to path, creating or truncating it
// unconditionally. An empty intersection still produces the file.
func WriteFile(path string, installed map[string]string, imported map[string]bool) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := Write(f, installed, imported)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func hyphenated(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
