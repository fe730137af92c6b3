package mkservice

import (
	"fmt"
	"slices"
	"sort"
)

// Scope selects where a service is installed and how the manager is invoked
type Scope int

const (
	// ScopeSystem installs a system-wide unit (the default)
	ScopeSystem Scope = iota
	// ScopeUser installs a unit for the invoking user's manager instance
	ScopeUser
)

// Scope string constants
const (
	scopeSystemStr = "system"
	scopeUserStr   = "user"
)

// String returns the string representation of Scope
func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return scopeUserStr
	case ScopeSystem:
		fallthrough
	default:
		return scopeSystemStr
	}
}

// ParseScope converts "user" or "system" to a Scope
func ParseScope(s string) (Scope, error) {
	switch s {
	case scopeSystemStr, "":
		return ScopeSystem, nil
	case scopeUserStr:
		return ScopeUser, nil
	default:
		return ScopeSystem, fmt.Errorf("unknown scope %q (want %q or %q)", s, scopeUserStr, scopeSystemStr)
	}
}

// EnvVar is a single environment variable binding
type EnvVar struct {
	Key   string
	Value string
}

// String returns the KEY=VALUE form
func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

// Descriptor is the validated description of a service to install.
// It is immutable once constructed; accessors return copies.
type Descriptor struct {
	name    string
	command []string
	env     []EnvVar
	scope   Scope
}

// NewDescriptor creates a Descriptor. The name is expected to have been
// validated by the caller. The environment is stored sorted by key.
func NewDescriptor(name string, command []string, env map[string]string, scope Scope) *Descriptor {
	vars := make([]EnvVar, 0, len(env))
	for k, v := range env {
		vars = append(vars, EnvVar{Key: k, Value: v})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Key < vars[j].Key })

	return &Descriptor{
		name:    name,
		command: slices.Clone(command),
		env:     vars,
		scope:   scope,
	}
}

// Name returns the raw, unescaped service name
func (d *Descriptor) Name() string {
	return d.name
}

// Command returns the executable path followed by its arguments
func (d *Descriptor) Command() []string {
	return slices.Clone(d.command)
}

// Env returns the environment sorted lexicographically by key
func (d *Descriptor) Env() []EnvVar {
	return slices.Clone(d.env)
}

// Scope returns the install scope
func (d *Descriptor) Scope() Scope {
	return d.scope
}

// String implements fmt.Stringer for debug logging
func (d *Descriptor) String() string {
	return fmt.Sprintf("Descriptor{name=%q command=%q env=%v scope=%s}", d.name, d.command, d.env, d.scope)
}
