package mkservice

import (
	"os"
)

type options struct {
	runner        Runner
	systemctlPath string
	escapeTool    string
	escapeArgs    []string
	systemUnitDir string
	lookupEnv     func(string) (string, bool)
	probe         func() bool
}

// Option configures an operator
type Option func(*options)

// WithRunner sets the runner used for every external command
func WithRunner(r Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithSystemctlPath sets the path to the systemctl binary
func WithSystemctlPath(path string) Option {
	return func(o *options) {
		o.systemctlPath = path
	}
}

// WithEscapeTool sets the escaping tool and any extra mode flags passed
// before the "--" separator
func WithEscapeTool(path string, args ...string) Option {
	return func(o *options) {
		o.escapeTool = path
		o.escapeArgs = args
	}
}

// WithSystemUnitDir overrides the system-wide unit directory
func WithSystemUnitDir(dir string) Option {
	return func(o *options) {
		o.systemUnitDir = dir
	}
}

// WithLookupEnv sets the environment lookup used to resolve HOME
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = fn
	}
}

// WithProbe sets the function Detect uses to decide whether systemd is
// the running service manager
func WithProbe(fn func() bool) Option {
	return func(o *options) {
		o.probe = fn
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		runner:        ExecRunner{},
		systemctlPath: DefaultSystemctlPath,
		escapeTool:    DefaultEscapeTool,
		systemUnitDir: SystemUnitDir,
		lookupEnv:     os.LookupEnv,
		probe:         IsSystemdRunning,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
