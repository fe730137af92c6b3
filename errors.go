package mkservice

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by mkservice operations
var (
	// ErrUnsupported indicates no supported service manager was detected
	ErrUnsupported = errors.New("mkservice: no supported service manager detected")

	// ErrExternalTool indicates an external tool failed to run or produced unusable output
	ErrExternalTool = errors.New("mkservice: external tool failed")

	// ErrHomeUnresolved indicates the invoking user's home directory could not be resolved
	ErrHomeUnresolved = errors.New("mkservice: home directory not resolvable")

	// ErrEncoding indicates rendered or captured text is not valid UTF-8
	ErrEncoding = errors.New("mkservice: invalid utf-8")
)

// Step identifies a stage of the install workflow
type Step int

const (
	// StepResolveScope computes the install directory
	StepResolveScope Step = iota
	// StepEscape escapes the service name
	StepEscape
	// StepRender renders the unit text
	StepRender
	// StepWrite writes the unit file
	StepWrite
	// StepReload reloads the manager configuration
	StepReload
	// StepEnable enables the unit
	StepEnable
	// StepStart starts the unit
	StepStart
)

// String returns the step name
func (s Step) String() string {
	switch s {
	case StepResolveScope:
		return "resolve-scope"
	case StepEscape:
		return "escape"
	case StepRender:
		return "render"
	case StepWrite:
		return "write"
	case StepReload:
		return "daemon-reload"
	case StepEnable:
		return "enable"
	case StepStart:
		return "start"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// OpError represents an error from one step of an install or start
type OpError struct {
	// Op is the step that failed
	Op Step
	// Path is the file path or unit name involved in the step
	Path string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("mkservice %s %q: %v", e.Op.String(), e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// ToolError describes a failed external command. It matches ErrExternalTool
// under errors.Is.
type ToolError struct {
	// Argv is the command line that was run
	Argv []string
	// ExitCode is the exit status, or -1 if the process never ran
	ExitCode int
	// Stderr holds whatever the command wrote to stderr
	Stderr string
	// Err is the underlying cause, if any
	Err error
}

// Error returns a formatted error message
func (e *ToolError) Error() string {
	cmd := strings.Join(e.Argv, " ")
	var msg string
	switch {
	case e.Err != nil && e.ExitCode <= 0:
		msg = fmt.Sprintf("%s: %v", cmd, e.Err)
	case e.Err != nil:
		msg = fmt.Sprintf("%s: exit status %d: %v", cmd, e.ExitCode, e.Err)
	default:
		msg = fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += " (stderr: " + stderr + ")"
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExternalTool
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalTool
}
