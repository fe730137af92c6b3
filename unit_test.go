package mkservice

import (
	"strings"
	"testing"

	"github.com/coreos/go-systemd/v22/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloDescriptor() *Descriptor {
	return NewDescriptor(
		"hello",
		[]string{"/bin/sh", "-c", "echo hello"},
		map[string]string{"FOO": "foo", "BAR": "bar"},
		ScopeSystem,
	)
}

func TestRenderUnit(t *testing.T) {
	got, err := RenderUnit(helloDescriptor())
	require.NoError(t, err)

	want := "[Unit]\n" +
		"Description=hello\n" +
		"[Install]\n" +
		"WantedBy=multi-user.target\n" +
		"[Service]\n" +
		"Environment=BAR=bar\n" +
		"Environment=FOO=foo\n" +
		"ExecStart=\"/bin/sh\" \"-c\" \"echo hello\"\n" +
		"Type=simple\n"
	assert.Equal(t, want, got)
}

func TestRenderUnitDeterministic(t *testing.T) {
	d := NewDescriptor("svc", []string{"/usr/bin/env"},
		map[string]string{"Z": "1", "A": "2", "M": "3", "B": "4", "Y": "5"}, ScopeUser)

	first, err := RenderUnit(d)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := RenderUnit(d)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestRenderUnitSectionOrder(t *testing.T) {
	tests := []struct {
		name string
		desc *Descriptor
	}{
		{"no env", NewDescriptor("a", []string{"/bin/true"}, nil, ScopeSystem)},
		{"user scope", NewDescriptor("b", []string{"/bin/true"}, map[string]string{"K": "v"}, ScopeUser)},
		{"empty command", NewDescriptor("c", nil, nil, ScopeSystem)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderUnit(tt.desc)
			require.NoError(t, err)

			u := strings.Index(out, "[Unit]\n")
			i := strings.Index(out, "[Install]\n")
			s := strings.Index(out, "[Service]\n")
			require.Equal(t, 0, u)
			require.Greater(t, i, u)
			require.Greater(t, s, i)
			assert.Contains(t, out, "WantedBy=multi-user.target\n")
			assert.NotContains(t, out, "\n\n")
		})
	}
}

func TestRenderUnitEnvironmentSorted(t *testing.T) {
	out, err := RenderUnit(helloDescriptor())
	require.NoError(t, err)

	bar := strings.Index(out, "Environment=BAR=bar\n")
	foo := strings.Index(out, "Environment=FOO=foo\n")
	require.NotEqual(t, -1, bar)
	require.NotEqual(t, -1, foo)
	assert.Less(t, bar, foo)
}

func TestRenderUnitNoEnvironmentLines(t *testing.T) {
	out, err := RenderUnit(NewDescriptor("a", []string{"/bin/true"}, nil, ScopeSystem))
	require.NoError(t, err)
	assert.NotContains(t, out, "Environment=")
}

func TestRenderUnitEmptyCommand(t *testing.T) {
	out, err := RenderUnit(NewDescriptor("a", nil, nil, ScopeSystem))
	require.NoError(t, err)
	assert.Contains(t, out, "\nExecStart=\n")
}

func TestRenderUnitLineEndings(t *testing.T) {
	d := NewDescriptor("crlf", []string{"/bin/echo", "a\r\nb"},
		map[string]string{"WIN": "line1\r\nline2"}, ScopeSystem)

	out, err := RenderUnit(d)
	require.NoError(t, err)
	assert.NotContains(t, out, "\r\n")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRenderUnitInvalidUTF8(t *testing.T) {
	d := NewDescriptor("bad\xff", []string{"/bin/true"}, nil, ScopeSystem)

	_, err := RenderUnit(d)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestRenderUnitParses(t *testing.T) {
	out, err := RenderUnit(helloDescriptor())
	require.NoError(t, err)

	opts, err := unit.Deserialize(strings.NewReader(out))
	require.NoError(t, err)

	type entry struct{ section, name, value string }
	var got []entry
	for _, o := range opts {
		if o.Name == "ExecStart" {
			continue
		}
		got = append(got, entry{o.Section, o.Name, o.Value})
	}
	assert.Equal(t, []entry{
		{"Unit", "Description", "hello"},
		{"Install", "WantedBy", "multi-user.target"},
		{"Service", "Environment", "BAR=bar"},
		{"Service", "Environment", "FOO=foo"},
		{"Service", "Type", "simple"},
	}, got)
}

func TestUnitSerializeListOrderPreserved(t *testing.T) {
	u := &Unit{
		Unit:    Section{"Description": Scalar("x")},
		Install: Section{},
		Service: Section{
			"Environment": List{"Z=1", "A=2"},
			"After":       Scalar("network.target"),
		},
	}

	data, err := u.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "[Unit]\nDescription=x\n[Install]\n[Service]\nAfter=network.target\nEnvironment=Z=1\nEnvironment=A=2\n", string(data))
}

func TestQuoteCommand(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"shell command", []string{"/bin/sh", "-c", "echo hello"}, `"/bin/sh" "-c" "echo hello"`},
		{"single", []string{"/usr/bin/app"}, `"/usr/bin/app"`},
		{"embedded quotes", []string{"/bin/echo", `say "hi"`}, `"/bin/echo" "say \"hi\""`},
		{"backslash untouched", []string{`C:\path`}, `"C:\path"`},
		{"dollar untouched", []string{"$HOME"}, `"$HOME"`},
		{"empty arg", []string{"/bin/echo", ""}, `"/bin/echo" ""`},
		{"no args", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteCommand(tt.argv))
		})
	}
}
