//go:build linux

package mkservice

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("mkservice")

// Systemd installs a Descriptor as a systemd service unit
type Systemd struct {
	descriptor    *Descriptor
	runner        Runner
	escaper       *Escaper
	systemctlPath string
	systemUnitDir string
	lookupEnv     func(string) (string, bool)
}

// NewSystemd creates a systemd operator for the descriptor
func NewSystemd(d *Descriptor, opts ...Option) *Systemd {
	return newSystemd(d, newOptions(opts))
}

func newSystemd(d *Descriptor, o *options) *Systemd {
	return &Systemd{
		descriptor: d,
		runner:     o.runner,
		escaper: &Escaper{
			Runner: o.runner,
			Path:   o.escapeTool,
			Args:   o.escapeArgs,
		},
		systemctlPath: o.systemctlPath,
		systemUnitDir: o.systemUnitDir,
		lookupEnv:     o.lookupEnv,
	}
}

// Name implements ServiceOperator
func (s *Systemd) Name() string {
	return ManagerSystemd.String()
}

// Install implements ServiceOperator. Steps run strictly in order and the
// first failure aborts the rest; nothing already written is rolled back.
// An existing unit path that is a symlink is written through, leaving the
// link in place.
func (s *Systemd) Install(ctx context.Context) error {
	name := s.descriptor.Name()
	logger.Debugf("installing %v", s.descriptor)

	dir, err := s.unitDir()
	if err != nil {
		return err
	}

	escaped, err := s.escaper.Escape(ctx, name)
	if err != nil {
		return &OpError{Op: StepEscape, Path: name, Err: err}
	}

	content, err := RenderUnit(s.descriptor)
	if err != nil {
		return &OpError{Op: StepRender, Path: name, Err: err}
	}

	unitPath := filepath.Join(dir, escaped+UnitSuffix)
	const prefix = "\n>  "
	logger.Infof("Writing systemd unit to %q:%s%s", unitPath, prefix,
		strings.ReplaceAll(strings.TrimSuffix(content, "\n"), "\n", prefix))

	if err := writeUnitFile(unitPath, []byte(content)); err != nil {
		return &OpError{Op: StepWrite, Path: unitPath, Err: err}
	}

	logger.Infof("Reloading systemd daemon...")
	if err := s.systemctl(ctx, "daemon-reload"); err != nil {
		return &OpError{Op: StepReload, Path: unitPath, Err: err}
	}

	// systemctl resolves the raw name to the escaped unit itself
	logger.Infof("Enabling service...")
	if err := s.systemctl(ctx, "enable", name); err != nil {
		return &OpError{Op: StepEnable, Path: name, Err: err}
	}

	return nil
}

// Start implements ServiceOperator. Callers should only start a unit after
// Install has succeeded.
func (s *Systemd) Start(ctx context.Context) error {
	name := s.descriptor.Name()
	logger.Infof("Starting service...")
	if err := s.systemctl(ctx, "start", name); err != nil {
		return &OpError{Op: StepStart, Path: name, Err: err}
	}
	return nil
}

// writeUnitFile creates or replaces the file at path. Symlinks are followed,
// dangling ones included, so the link survives and its target receives the
// content. Regular targets are replaced atomically; anything else (such as
// /dev/null for a masked unit) is truncated in place.
func writeUnitFile(path string, data []byte) error {
	target, err := resolveSymlink(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err == nil && !info.Mode().IsRegular() {
		return os.WriteFile(target, data, 0o644)
	}
	return renameio.WriteFile(target, data, 0o644)
}

// resolveSymlink returns the file path ultimately refers to. A path that
// does not exist, or whose final link is dangling, resolves to the last
// name in the chain.
func resolveSymlink(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	for i := 0; i < 40; i++ {
		dest, err := os.Readlink(path)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", &fs.PathError{Op: "readlink", Path: path, Err: errors.New("too many levels of symbolic links")}
}

// unitDir resolves the install directory for the descriptor's scope,
// creating the per-user directory when needed
func (s *Systemd) unitDir() (string, error) {
	if s.descriptor.Scope() != ScopeUser {
		return s.systemUnitDir, nil
	}

	home, ok := s.lookupEnv("HOME")
	if !ok || home == "" {
		return "", &OpError{Op: StepResolveScope, Path: "$HOME", Err: ErrHomeUnresolved}
	}

	dir := filepath.Join(home, filepath.FromSlash(UserUnitDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &OpError{Op: StepResolveScope, Path: dir, Err: err}
	}
	return dir, nil
}

// systemctlArgv prefixes args with systemctl and, for user scope, --user.
// Every invocation goes through here so the qualifier is never missed.
func (s *Systemd) systemctlArgv(args ...string) []string {
	argv := []string{s.systemctlPath}
	if s.descriptor.Scope() == ScopeUser {
		argv = append(argv, "--user")
	}
	return append(argv, args...)
}

// systemctl runs a systemctl command and waits for it. Both spawn failures
// and non-zero exit statuses are errors.
func (s *Systemd) systemctl(ctx context.Context, args ...string) error {
	_, err := runTool(ctx, s.runner, s.systemctlArgv(args...))
	return err
}
