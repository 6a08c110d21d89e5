// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/bizcalc/pkg/mathutil"
)

// AssertClose fails the test when actual differs from expected by more than
// tolerance.
func AssertClose(t testing.TB, description string, expected, actual, tolerance float64) {
	t.Helper()
	if !mathutil.WithinTolerance(expected, actual, tolerance) {
		t.Errorf("%s: expected %.6f, got %.6f (diff: %.6f)",
			description, expected, actual, actual-expected)
	}
}

// AssertRelativeClose is AssertClose with the tolerance scaled by the
// magnitude of the values.
func AssertRelativeClose(t testing.TB, description string, expected, actual, tolerance float64) {
	t.Helper()
	if !mathutil.WithinRelativeTolerance(expected, actual, tolerance) {
		t.Errorf("%s: expected %.6f, got %.6f (relative tolerance %g)",
			description, expected, actual, tolerance)
	}
}
