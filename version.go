package keysctl

import (
	"github.com/hashicorp/go-version"
)

// Version is overridden at build time with -ldflags "-X github.com/michaelquigley/keysctl.Version=..."
var Version = "0.3.0"

// RuntimeVersion returns the normalized build version, or the raw string if it
// is not a valid semantic version
func RuntimeVersion() string {
	v, err := version.NewVersion(Version)
	if err != nil {
		return Version
	}
	return v.String()
}
