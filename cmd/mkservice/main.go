// mkservice installs a command as a systemd service.
//
//	mkservice [flags] NAME COMMAND [ARGS...]
//
// Flags must precede NAME; everything after NAME is the service command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/juju/loggo"
	"github.com/spf13/pflag"

	"github.com/axondata/go-mkservice"
)

var logger = loggo.GetLogger("mkservice.cmd")

// maxNameLen bounds the service name accepted on the command line
const maxNameLen = 256

var validName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// newOperator selects the service manager backend
var newOperator = func(d *mkservice.Descriptor) (mkservice.ServiceOperator, error) {
	return mkservice.Detect(d)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Errorf("Failed creating service: %v", err)
		os.Exit(1)
	}
}

type cliArgs struct {
	file    string
	env     []string
	level   string
	start   bool
	dryRun  bool
	verbose bool
	version bool
}

func run(argv []string, stdout, stderr io.Writer) error {
	var a cliArgs

	flagSet := pflag.NewFlagSet("mkservice", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVarP(&a.file, "file", "f", "", "YAML file describing the service")
	flagSet.StringArrayVarP(&a.env, "env", "e", nil, "environment variable KEY=VALUE (repeatable)")
	flagSet.StringVar(&a.level, "level", "system", "install level: user or system")
	flagSet.BoolVar(&a.start, "start", false, "start the service after installing it")
	flagSet.BoolVar(&a.dryRun, "dry-run", false, "print the unit file and exit")
	flagSet.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flagSet.BoolVar(&a.version, "version", false, "print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: mkservice [flags] NAME COMMAND [ARGS...]\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(argv); err != nil {
		return err
	}

	if a.version {
		fmt.Fprintf(stdout, "mkservice %s\n", mkservice.Version)
		return nil
	}

	if err := setupLogging(stderr, a.verbose); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	cfg := &fileConfig{}
	if a.file != "" {
		var err error
		if cfg, err = loadConfig(a.file); err != nil {
			return err
		}
	}
	if err := cfg.merge(flagSet, a, flagSet.Args()); err != nil {
		return err
	}

	if err := validateName(cfg.Name); err != nil {
		return err
	}
	scope, err := mkservice.ParseScope(cfg.Level)
	if err != nil {
		return err
	}

	d := mkservice.NewDescriptor(cfg.Name, cfg.Command, cfg.Env, scope)
	logger.Debugf("Service: %v", d)

	if a.dryRun {
		content, err := mkservice.RenderUnit(d)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, content)
		return err
	}

	op, err := newOperator(d)
	if errors.Is(err, mkservice.ErrUnsupported) {
		return fmt.Errorf("unknown init system, cannot add service: %w", err)
	} else if err != nil {
		return err
	}

	logger.Infof("%s detected, creating service...", op.Name())
	ctx := context.Background()
	if err := op.Install(ctx); err != nil {
		return err
	}
	if cfg.Start {
		if err := op.Start(ctx); err != nil {
			return err
		}
	}

	logger.Infof("Service %q installed.", d.Name())
	return nil
}

// validateName checks the service name syntax before anything touches the host
func validateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("name %q includes invalid characters, pattern: %s", name, validName)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must not exceed %d characters", maxNameLen)
	}
	return nil
}

// parseEnv splits KEY=VALUE pairs at the first '='. A pair without '=' binds
// the key to the empty string; later pairs override earlier ones.
func parseEnv(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, _ := strings.Cut(p, "=")
		env[k] = v
	}
	return env
}
