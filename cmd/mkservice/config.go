package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of a service description:
//
//	name: hello
//	command: [/bin/sh, -c, echo hello]
//	env:
//	  FOO: foo
//	level: user
//	start: true
type fileConfig struct {
	Name    string            `yaml:"name"`
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env"`
	Level   string            `yaml:"level"`
	Start   bool              `yaml:"start"`
}

func loadConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening service file: %w", err)
	}
	defer f.Close()

	var cfg fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing service file %s: %w", path, err)
	}
	return &cfg, nil
}

// merge applies command-line values over the file values. Positional
// arguments replace name and command; -e pairs are added to the file's env.
func (c *fileConfig) merge(flags *pflag.FlagSet, a cliArgs, positional []string) error {
	if len(positional) > 0 {
		c.Name = positional[0]
		if len(positional) > 1 {
			c.Command = positional[1:]
		}
	}
	if c.Name == "" {
		return errors.New("missing service NAME")
	}

	if len(a.env) > 0 {
		if c.Env == nil {
			c.Env = make(map[string]string, len(a.env))
		}
		for k, v := range parseEnv(a.env) {
			c.Env[k] = v
		}
	}

	if flags.Changed("level") || c.Level == "" {
		c.Level = a.level
	}
	c.Start = c.Start || a.start
	return nil
}
