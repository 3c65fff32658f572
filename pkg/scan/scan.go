// Package scan discovers the top-level module names imported across a
// Python project tree.
//
// Import extraction is deliberately regex-based rather than a structural
// parse: lines beginning with `import X` or `from X import ...` are matched
// and X's root segment (before the first dot) becomes a candidate. Comma
// lists on a single import line are captured as one token and will simply
// never match an installed package downstream.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/larajo/reqgen/pkg/errors"
)

// sourceExt is the file extension scanned for import statements.
const sourceExt = ".py"

// importRE matches lines starting with optional whitespace followed by
// `import <token>` or `from <token>`, capturing the token.
var importRE = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+(\S+)`)

// Scanner walks a directory tree collecting imported module names.
type Scanner struct {
	aliases map[string]string
	ignore  map[string]bool
}

// New creates a Scanner with the given alias table and ignored directory
// names. Both may be nil.
func New(aliases map[string]string, ignore []string) *Scanner {
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}
	return &Scanner{aliases: aliases, ignore: skip}
}

// Imports walks the tree rooted at root and returns the set of normalized
// top-level module names imported by .py files. Directories whose base name
// is in the ignore set are pruned and never descended into.
//
// Files that are not valid UTF-8 terminate the scan with an error.
func (s *Scanner) Imports(root string) (map[string]bool, error) {
	imported := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.ignore[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), sourceExt) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !utf8.Valid(data) {
			return errors.New(errors.ErrCodeInvalidSource, "source file is not valid UTF-8: %s", path)
		}

		for _, m := range importRE.FindAllStringSubmatch(string(data), -1) {
			imported[s.normalize(m[1])] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return imported, nil
}

// normalize reduces an import token to its lowercase top-level segment and
// applies the alias table.
func (s *Scanner) normalize(token string) string {
	name, _, _ := strings.Cut(token, ".")
	name = strings.ToLower(name)
	if mapped, ok := s.aliases[name]; ok {
		return mapped
	}
	return name
}
