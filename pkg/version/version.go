package version

// Version represents the current version of gss
const Version = "0.1.0"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "gss version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}

// UserAgent is sent with every request to the search API.
func UserAgent() string {
	return "gss/" + Version
}
