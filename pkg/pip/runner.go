package pip

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes an external command and captures its output streams.
// The production implementation shells out with os/exec; tests inject fakes
// so the dual venv/global listing paths can be exercised without pip installed.
type Runner interface {
	// Run executes name with args and returns captured stdout and stderr.
	// A non-zero exit status is reported through err (as *exec.ExitError for
	// the exec-backed implementation); stdout and stderr are still returned.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec, blocking until they exit.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return out.Bytes(), errBuf.Bytes(), err
}
