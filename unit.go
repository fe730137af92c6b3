package mkservice

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/coreos/go-systemd/v22/unit"
)

// Section and directive names used in generated units
const (
	SectionUnit    = "Unit"
	SectionInstall = "Install"
	SectionService = "Service"

	// ServiceTypeSimple is the only service type generated
	ServiceTypeSimple = "simple"
	// DefaultWantedBy is the install target, independent of scope
	DefaultWantedBy = "multi-user.target"
	// UnitSuffix is appended to the escaped name to form the file name
	UnitSuffix = ".service"
)

// Value is a directive value: either a Scalar or a List
type Value interface {
	values() []string
}

// Scalar is a directive bound to exactly one value
type Scalar string

func (s Scalar) values() []string { return []string{string(s)} }

// List is a directive emitted once per element, in element order
type List []string

func (l List) values() []string { return l }

// Section maps directive names to values. Directives are emitted sorted by name.
type Section map[string]Value

// options flattens the section into go-systemd unit options
func (s Section) options(name string) []*unit.UnitOption {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var opts []*unit.UnitOption
	for _, k := range keys {
		for _, v := range s[k].values() {
			opts = append(opts, &unit.UnitOption{Section: name, Name: k, Value: v})
		}
	}
	return opts
}

// Unit is the in-memory form of a service unit file
type Unit struct {
	Unit    Section
	Install Section
	Service Section
}

// NewUnit builds the unit representation of a descriptor
func NewUnit(d *Descriptor) *Unit {
	env := d.Env()
	envLines := make(List, 0, len(env))
	for _, e := range env {
		envLines = append(envLines, e.String())
	}

	service := Section{
		"Type":      Scalar(ServiceTypeSimple),
		"ExecStart": Scalar(QuoteCommand(d.Command())),
	}
	if len(envLines) > 0 {
		service["Environment"] = envLines
	}

	return &Unit{
		Unit:    Section{"Description": Scalar(d.Name())},
		Install: Section{"WantedBy": Scalar(DefaultWantedBy)},
		Service: service,
	}
}

// Serialize renders the unit as text. Sections are always written in the
// order [Unit], [Install], [Service] with no blank lines between them, and
// the result uses LF line endings only.
func (u *Unit) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	sections := []struct {
		name string
		sec  Section
	}{
		{SectionUnit, u.Unit},
		{SectionInstall, u.Install},
		{SectionService, u.Service},
	}

	for _, s := range sections {
		opts := s.sec.options(s.name)
		if len(opts) == 0 {
			// unit.Serialize drops empty sections entirely
			fmt.Fprintf(&buf, "[%s]\n", s.name)
			continue
		}
		// One section per call: unit.Serialize separates sections with a blank line.
		data, err := io.ReadAll(unit.Serialize(opts))
		if err != nil {
			return nil, fmt.Errorf("serializing [%s]: %w", s.name, err)
		}
		buf.Write(data)
	}

	out := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
	if !utf8.Valid(out) {
		return nil, ErrEncoding
	}
	return out, nil
}

// RenderUnit renders the unit file text for a descriptor. The output is
// byte-identical for identical descriptors.
func RenderUnit(d *Descriptor) (string, error) {
	data, err := NewUnit(d).Serialize()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// QuoteCommand joins argv into an ExecStart value, wrapping every token in
// double quotes and backslash-escaping embedded double quotes. Backslashes,
// newlines and specifiers such as % and $ are passed through unchanged.
func QuoteCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
	}
	return strings.Join(quoted, " ")
}
