package mkservice

import (
	"context"
)

// ServiceOperator installs and starts a service with one specific service
// manager. Callers obtain one from Detect and need not know which manager
// backs it.
type ServiceOperator interface {
	// Name returns the service manager name (e.g. "systemd")
	Name() string

	// Install writes the unit for the descriptor, reloads the manager and
	// enables the unit. Re-running Install overwrites and re-enables.
	Install(ctx context.Context) error

	// Start asks the manager to start the installed unit
	Start(ctx context.Context) error
}
