// Package version contains information on the current version of the
// program. It is split from the main program for easy use, mirroring the
// teacher's internal/version.
package version

// Current is the string representing the current version of the HULK
// compiler.
const Current = "0.1.0"
