package audioprobe

// Version is the semantic version of the audioprobe library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
