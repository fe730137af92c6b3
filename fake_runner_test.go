package mkservice

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"
)

type fakeOutcome struct {
	res Result
	err error
}

// fakeRunner records every command and answers like systemd-escape and a
// successful systemctl unless an override matches the command line.
type fakeRunner struct {
	calls [][]string
	// override maps a command-line prefix ("systemctl enable") to an outcome
	override map[string]fakeOutcome
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{override: make(map[string]fakeOutcome)}
}

func (f *fakeRunner) fail(prefix string, res Result, err error) *fakeRunner {
	f.override[prefix] = fakeOutcome{res: res, err: err}
	return f
}

func (f *fakeRunner) Run(_ context.Context, argv []string) (Result, error) {
	f.calls = append(f.calls, slices.Clone(argv))

	joined := strings.Join(argv, " ")
	for prefix, out := range f.override {
		if strings.HasPrefix(joined, prefix) {
			return out.res, out.err
		}
	}

	if filepath.Base(argv[0]) == DefaultEscapeTool {
		name := argv[len(argv)-1]
		return Result{Stdout: []byte(unit.UnitNameEscape(name) + "\n")}, nil
	}
	return Result{}, nil
}

// commands returns the recorded calls whose program is tool
func (f *fakeRunner) commands(tool string) [][]string {
	var out [][]string
	for _, c := range f.calls {
		if filepath.Base(c[0]) == tool {
			out = append(out, c)
		}
	}
	return out
}
