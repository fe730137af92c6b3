package mkservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result is the outcome of a command that ran to completion
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs an external command synchronously and waits for it to exit.
// A non-nil error means the command could not be run at all; a command that
// ran and exited non-zero is reported through Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, argv []string) (Result, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes argv[0] with the remaining arguments
func (ExecRunner) Run(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr) && exitErr.ExitCode() >= 0:
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		return res, err
	}
}

// runTool runs argv and converts spawn failures and non-zero exits into a
// *ToolError. The captured stdout is returned on success.
func runTool(ctx context.Context, r Runner, argv []string) ([]byte, error) {
	res, err := r.Run(ctx, argv)
	if err != nil {
		return nil, &ToolError{Argv: argv, ExitCode: -1, Stderr: string(res.Stderr), Err: err}
	}
	if res.ExitCode != 0 {
		return nil, &ToolError{Argv: argv, ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}
	return res.Stdout, nil
}
