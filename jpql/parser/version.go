package parser

import "fmt"

// Version is the JPA version a query is written against. Factories carry a
// minimum version; newer keywords are not recognized under older versions.
type Version int

const (
	Version1_0 Version = iota + 1
	Version2_0
	Version2_1
)

// DefaultVersion is used when no version option is given.
const DefaultVersion = Version2_1

var versionNames = map[Version]string{
	Version1_0: "1.0",
	Version2_0: "2.0",
	Version2_1: "2.1",
}

func (v Version) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return "Unknown"
}

// Supports reports whether a construct introduced in since is available in v.
// A zero since means the construct exists in every version.
func (v Version) Supports(since Version) bool {
	return since == 0 || v >= since
}

func ParseVersion(s string) (Version, error) {
	for v, name := range versionNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown JPA version: %s (expected 1.0, 2.0, or 2.1)", s)
}
