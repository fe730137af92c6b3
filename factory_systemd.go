//go:build linux

package mkservice

import (
	"github.com/coreos/go-systemd/v22/util"
)

// IsSystemdRunning reports whether systemd is the running init system
func IsSystemdRunning() bool {
	return util.IsRunningSystemd()
}

func newSystemdOperator(d *Descriptor, o *options) (ServiceOperator, error) {
	return newSystemd(d, o), nil
}
