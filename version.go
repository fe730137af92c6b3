package mkservice

// Version is the current version of mkservice
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Managers lists the supported service managers
	Managers []string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:  Version,
		Managers: []string{ManagerSystemd.String()},
	}
}
