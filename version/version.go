package version

import "fmt"

// Name is the program name printed by --version.
const Name = "oairequest"

// Version is a semantic version number.
type Version struct {
	major int
	minor int
	patch int
}

func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// Current returns the version of this build.
func Current() *Version {
	return &Version{major: 0, minor: 1, patch: 0}
}
