// Package version interprets the semantic version strings used as release
// train labels.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const snapshotSuffix = "-SNAPSHOT"

// Parse parses v as a semantic version ("1.0.0", "1.0.0-M1", "1.0.0-SNAPSHOT").
func Parse(v string) (*semver.Version, error) {
	parsed, err := semver.StrictNewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", v, err)
	}
	return parsed, nil
}

// Base strips a -SNAPSHOT suffix, so "1.1.0-SNAPSHOT" becomes "1.1.0".
func Base(v string) string {
	return strings.TrimSuffix(v, snapshotSuffix)
}

// IsPreRelease reports whether v carries a prerelease label such as M1 or
// RC1. Labels that are already scheduled contain a dash.
func IsPreRelease(v string) bool {
	parsed, err := Parse(v)
	if err != nil {
		return strings.Contains(v, "-")
	}
	return parsed.Prerelease() != ""
}

// IsMinorRelease reports whether v is an x.y.0 GA version. Such versions get
// a full release train; other GA versions are patch releases.
func IsMinorRelease(v string) bool {
	parsed, err := Parse(v)
	if err != nil {
		return strings.HasSuffix(v, ".0")
	}
	return parsed.Prerelease() == "" && parsed.Patch() == 0
}

// Compare orders two versions by semver precedence. Unparseable versions fall
// back to string order.
func Compare(a, b string) int {
	va, errA := Parse(a)
	vb, errB := Parse(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// NextSnapshot returns the development version that follows v. A released
// prerelease (1.1.0-M1) continues as 1.1.0-SNAPSHOT, a GA release (1.1.0)
// moves on to 1.1.1-SNAPSHOT and a snapshot is returned unchanged.
func NextSnapshot(v string) (string, error) {
	parsed, err := Parse(v)
	if err != nil {
		return "", err
	}
	switch parsed.Prerelease() {
	case "SNAPSHOT":
		return v, nil
	case "":
		next := parsed.IncPatch()
		return next.String() + snapshotSuffix, nil
	}
	release, err := parsed.SetPrerelease("")
	if err != nil {
		return "", err
	}
	return release.String() + snapshotSuffix, nil
}
