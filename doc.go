// Package mkservice turns a command line into an installed, enabled
// background service managed by systemd.
//
// A Descriptor holds the validated inputs. RenderUnit converts it into unit
// file text, and an operator obtained from Detect writes that text to the
// scope's unit directory, reloads the manager and enables the unit:
//
//	d := mkservice.NewDescriptor("hello",
//	    []string{"/bin/sh", "-c", "echo hello"},
//	    map[string]string{"FOO": "foo"},
//	    mkservice.ScopeUser)
//
//	op, err := mkservice.Detect(d)
//	if err != nil {
//	    log.Fatal(err) // errors.Is(err, mkservice.ErrUnsupported) without systemd
//	}
//	if err := op.Install(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	err = op.Start(ctx)
//
// # Unit format
//
// Generated units always contain the sections [Unit], [Install] and
// [Service] in that order, with directives sorted by name inside each
// section and LF line endings:
//
//	[Unit]
//	Description=hello
//	[Install]
//	WantedBy=multi-user.target
//	[Service]
//	Environment=FOO=foo
//	ExecStart="/bin/sh" "-c" "echo hello"
//	Type=simple
//
// ExecStart quoting only escapes double quotes. Backslashes, newlines and
// systemd specifiers in arguments are written as-is.
//
// # External tools
//
// Unit names are escaped with systemd-escape and the manager is driven with
// systemctl (with --user for ScopeUser). Both are run through a Runner so
// callers and tests can substitute their own. Each command is waited on
// before the next step runs and a non-zero exit status is an error.
package mkservice
