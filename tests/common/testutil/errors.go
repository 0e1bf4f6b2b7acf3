//go:build unit || e2e

package testutil

import (
	"testing"

	"chargeshare/internal/pkg/errs"
)

// RequireErrorIs is the mark-aware counterpart of require.ErrorIs. Sentinel
// translation attaches targets with errs.Mark, which the standard library's
// errors.Is does not follow.
func RequireErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error matching %q, got nil", target)
	}
	if !errs.Is(err, target) {
		t.Fatalf("error %q does not match %q", err, target)
	}
}
