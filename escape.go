package mkservice

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"unicode/utf8"
)

// DefaultEscapeTool is the escaping helper shipped with systemd
const DefaultEscapeTool = "systemd-escape"

// Escaper turns an arbitrary name into a unit-name-safe identifier by
// delegating to an external escaping tool.
type Escaper struct {
	// Runner executes the tool
	Runner Runner
	// Path is the escaping tool (default: systemd-escape)
	Path string
	// Args are extra mode flags placed before the "--" separator
	Args []string
}

// NewEscaper creates an Escaper using the default tool and no extra flags
func NewEscaper(r Runner) *Escaper {
	return &Escaper{
		Runner: r,
		Path:   DefaultEscapeTool,
	}
}

// argv builds "<tool> [args...] -- <name>"
func (e *Escaper) argv(name string) []string {
	path := e.Path
	if path == "" {
		path = DefaultEscapeTool
	}
	argv := append([]string{path}, e.Args...)
	return append(argv, "--", name)
}

// Escape returns the escaped form of name. The tool must print the result
// followed by exactly one trailing newline, which is stripped.
func (e *Escaper) Escape(ctx context.Context, name string) (string, error) {
	argv := e.argv(name)

	out, err := runTool(ctx, e.Runner, argv)
	if err != nil {
		return "", err
	}

	if !bytes.HasSuffix(out, []byte("\n")) {
		return "", &ToolError{Argv: slices.Clone(argv), Err: errors.New("output not newline-terminated")}
	}
	out = out[:len(out)-1]

	if len(out) == 0 {
		return "", &ToolError{Argv: slices.Clone(argv), Err: errors.New("empty output")}
	}
	if !utf8.Valid(out) {
		return "", &ToolError{Argv: slices.Clone(argv), Err: ErrEncoding}
	}
	return string(out), nil
}
