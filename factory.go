package mkservice

import (
	"fmt"
)

// ManagerType identifies a service manager backend
type ManagerType int

const (
	// ManagerUnknown represents an unknown or absent service manager
	ManagerUnknown ManagerType = iota
	// ManagerSystemd represents systemd
	ManagerSystemd
)

// String returns the string representation of ManagerType
func (m ManagerType) String() string {
	switch m {
	case ManagerSystemd:
		return "systemd"
	case ManagerUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

// Systemd paths and flags
const (
	// DefaultSystemctlPath is the systemctl binary looked up on PATH
	DefaultSystemctlPath = "systemctl"
	// SystemUnitDir is where system-scope units are written
	SystemUnitDir = "/etc/systemd/system"
	// UserUnitDir is where user-scope units are written, relative to $HOME
	UserUnitDir = ".config/systemd/user"
)

// Detect selects the operator for the running service manager. It returns
// ErrUnsupported when no supported manager is present; the probe is run
// once, here, and never by the operator itself.
func Detect(d *Descriptor, opts ...Option) (ServiceOperator, error) {
	o := newOptions(opts)
	if !o.probe() {
		return nil, ErrUnsupported
	}
	return NewOperator(ManagerSystemd, d, opts...)
}

// NewOperator creates an operator for the given manager without probing
func NewOperator(m ManagerType, d *Descriptor, opts ...Option) (ServiceOperator, error) {
	switch m {
	case ManagerSystemd:
		return newSystemdOperator(d, newOptions(opts))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, m)
	}
}
