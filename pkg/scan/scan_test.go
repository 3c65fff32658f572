package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/larajo/reqgen/pkg/errors"
)

// writeFile creates a file under dir, making parent directories as needed.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImports_ExtractsTopLevelModules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", `import os
import numpy
from collections.abc import Mapping
from Django.http import HttpResponse
	import requests
x = 1  # import fakepkg
`)

	s := New(nil, nil)
	got, err := s.Imports(dir)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}

	for _, want := range []string{"os", "numpy", "collections", "django", "requests"} {
		if !got[want] {
			t.Errorf("expected import %q not found in %v", want, got)
		}
	}
	if got["fakepkg"] {
		t.Error("mid-line import text should not be captured")
	}
	if got["mapping"] {
		t.Error("imported symbol from a `from` statement should not be captured")
	}
}

func TestImports_AliasMapping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img.py", "from PIL import Image\n")

	s := New(map[string]string{"pil": "pillow"}, nil)
	got, err := s.Imports(dir)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}

	if !got["pillow"] {
		t.Errorf("expected alias-mapped name pillow, got %v", got)
	}
	if got["pil"] {
		t.Error("raw alias name pil should not appear after mapping")
	}
}

func TestNormalize_AliasIdempotent(t *testing.T) {
	s := New(map[string]string{"pil": "pillow"}, nil)

	once := s.normalize("PIL.Image")
	twice := s.normalize(once)
	if once != "pillow" || twice != "pillow" {
		t.Errorf("normalize chain = %q -> %q, want pillow -> pillow", once, twice)
	}
}

func TestImports_MultiImportLineCapturedAsSingleToken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "multi.py", "import os, sys\n")

	s := New(nil, nil)
	got, err := s.Imports(dir)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}

	// The pattern captures up to the first whitespace, so `import os, sys`
	// yields the token "os," which will never match an installed package.
	if !got["os,"] {
		t.Errorf("expected token %q from multi-import line, got %v", "os,", got)
	}
	if got["os"] || got["sys"] {
		t.Errorf("multi-import names should not be split into candidates, got %v", got)
	}
}

func TestImports_PrunesIgnoredDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "import requests\n")
	writeFile(t, dir, filepath.Join(".git", "fake.py"), "import os\n")
	writeFile(t, dir, filepath.Join("__pycache__", "cached.py"), "import shadow\n")

	s := New(nil, []string{".git", "__pycache__"})
	got, err := s.Imports(dir)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}

	if !got["requests"] {
		t.Errorf("expected requests, got %v", got)
	}
	if got["os"] || got["shadow"] {
		t.Errorf("pruned directories were descended into: %v", got)
	}
}

func TestImports_IgnoresNonPythonFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "import nothere\n")
	writeFile(t, dir, "script.py", "import click\n")

	s := New(nil, nil)
	got, err := s.Imports(dir)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}

	if got["nothere"] {
		t.Error("non-.py file was scanned")
	}
	if !got["click"] {
		t.Errorf("expected click, got %v", got)
	}
}

func TestImports_InvalidUTF8IsFatal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.py"), []byte{'i', 'm', 0xff, 0xfe, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	s := New(nil, nil)
	_, err := s.Imports(dir)
	if err == nil {
		t.Fatal("expected error for non-UTF-8 source file")
	}
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSource)
	}
}

func TestImports_EmptyProject(t *testing.T) {
	s := New(nil, nil)
	got, err := s.Imports(t.TempDir())
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty set, got %v", got)
	}
}
