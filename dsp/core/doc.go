// Package core holds the sample constraint and small buffer and option
// helpers shared by the filter, statistics and detection packages.
package core
