package crontab

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes the host scheduler binary.
type Runner interface {
	// Run executes name with args and returns the captured output streams.
	// A non-zero exit status is reported as a non-nil error.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
