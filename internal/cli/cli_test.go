package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/larajo/reqgen/pkg/errors"
)

// fakeRunner answers every invocation with a fixed pip table.
type fakeRunner struct {
	table string
	calls []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name)
	return []byte(f.table), nil, nil
}

func newTestCLI(runner *fakeRunner) *CLI {
	c := New(io.Discard, LogInfo)
	if runner != nil {
		c.Runner = runner
	}
	return c
}

func TestRootCommand_Structure(t *testing.T) {
	c := newTestCLI(nil)
	root := c.RootCommand()

	if !strings.HasPrefix(root.Use, "reqgen") {
		t.Errorf("Use = %q, want reqgen prefix", root.Use)
	}

	for _, flag := range []string{"venv_folder", "output"} {
		if root.Flags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}

	want := map[string]bool{"scan": false, "list": false, "completion": false}
	for _, sub := range root.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_GeneratesManifest(t *testing.T) {
	project := t.TempDir()
	src := "import numpy\nfrom PIL import Image\nimport localmodule\n"
	if err := os.WriteFile(filepath.Join(project, "main.py"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{table: "Package Version\n------- -------\nnumpy 1.26.0\nPillow 10.3.0\nflask 3.0.2\n"}
	c := newTestCLI(runner)

	root := c.RootCommand()
	root.SetArgs([]string{project})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(project, "requirements.txt"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}

	var got []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			got = append(got, line)
		}
	}
	sort.Strings(got)

	want := []string{"numpy==1.26.0", "pillow==10.3.0"}
	if len(got) != len(want) {
		t.Fatalf("manifest lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	// No venv folder was supplied, so only the global pip is consulted.
	if len(runner.calls) != 1 || runner.calls[0] != "pip" {
		t.Errorf("runner calls = %v, want single global pip call", runner.calls)
	}
}

func TestRootCommand_CustomOutputName(t *testing.T) {
	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, "app.py"), []byte("import flask\n"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{table: "Package Version\n------- -------\nflask 3.0.2\n"}
	c := newTestCLI(runner)

	root := c.RootCommand()
	root.SetArgs([]string{project, "-o", "requirements-dev.txt"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(project, "requirements-dev.txt"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if string(data) != "flask==3.0.2\n" {
		t.Errorf("manifest = %q, want flask pinned", data)
	}
}

func TestRootCommand_EmptyMatchStillSucceeds(t *testing.T) {
	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, "main.py"), []byte("import os\nimport sys\n"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{table: "Package Version\n------- -------\n"}
	c := newTestCLI(runner)

	root := c.RootCommand()
	root.SetArgs([]string{project})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(project, "requirements.txt"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("manifest size = %d, want empty file", info.Size())
	}
}

func TestRootCommand_RejectsInvalidVenvFolder(t *testing.T) {
	c := newTestCLI(&fakeRunner{})

	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetOut(io.Discard)
	root.SetArgs([]string{t.TempDir(), "--venv_folder", "../outside"})

	err := root.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("expected error for venv folder with path separators")
	}
	if !errors.Is(err, errors.ErrCodeInvalidVenv) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidVenv)
	}
}

func TestEnsureProjectDir(t *testing.T) {
	if err := ensureProjectDir(t.TempDir()); err != nil {
		t.Errorf("ensureProjectDir(tempdir) = %v, want nil", err)
	}

	err := ensureProjectDir(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if werr := os.WriteFile(file, []byte("x"), 0644); werr != nil {
		t.Fatal(werr)
	}
	err = ensureProjectDir(file)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code for file = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}
