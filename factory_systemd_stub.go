//go:build !linux

package mkservice

import (
	"fmt"
	"runtime"
)

// IsSystemdRunning always reports false on non-Linux systems
func IsSystemdRunning() bool {
	return false
}

func newSystemdOperator(_ *Descriptor, _ *options) (ServiceOperator, error) {
	return nil, fmt.Errorf("%w: systemd on %s", ErrUnsupported, runtime.GOOS)
}
