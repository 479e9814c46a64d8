// Package testutil provides shared test helpers.
package testutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertErrorIs fails the test unless err wraps target.
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error %v does not wrap %v", err, target)
	}
}

// AssertFloatsNear compares float slices elementwise within a relative or
// absolute tolerance of tol. NaNs compare equal to NaNs.
func AssertFloatsNear(t testing.TB, want, got []float64, tol float64) {
	t.Helper()
	opts := cmp.Options{cmpopts.EquateApprox(tol, tol), cmpopts.EquateNaNs()}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("float slices differ (-want +got):\n%s", diff)
	}
}
