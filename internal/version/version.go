// Package version provides centralized version information for uppraisal.
// Versions follow semantic versioning (semver) conventions.
package version

// UppraiseVersion holds the current uppraise CLI version. It is also sent in
// the User-Agent header of every LMS request.
// Format: major.minor.patch[-prerelease][+build]
const UppraiseVersion = "0.3.0"
