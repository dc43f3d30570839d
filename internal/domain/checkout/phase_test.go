//go:build unit

package checkout_test

import (
	"testing"

	"homestay-checkout/internal/domain/checkout"

	"github.com/stretchr/testify/assert"
)

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct{ from, to checkout.Phase }{
		{checkout.PhaseIdle, checkout.PhaseValidating},
		{checkout.PhaseValidating, checkout.PhaseInvalid},
		{checkout.PhaseValidating, checkout.PhaseSubmitting},
		{checkout.PhaseInvalid, checkout.PhaseIdle},
		{checkout.PhaseSubmitting, checkout.PhaseRedirected},
		{checkout.PhaseSubmitting, checkout.PhaseSucceeded},
		{checkout.PhaseSubmitting, checkout.PhaseFailed},
		{checkout.PhaseFailed, checkout.PhaseIdle},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to checkout.Phase }{
		{checkout.PhaseIdle, checkout.PhaseSubmitting},
		{checkout.PhaseInvalid, checkout.PhaseSubmitting},
		{checkout.PhaseRedirected, checkout.PhaseIdle},
		{checkout.PhaseSucceeded, checkout.PhaseValidating},
		{checkout.PhaseSubmitting, checkout.PhaseIdle},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, checkout.PhaseRedirected.IsTerminal())
	assert.True(t, checkout.PhaseSucceeded.IsTerminal())
	assert.False(t, checkout.PhaseFailed.IsTerminal())
	assert.False(t, checkout.PhaseIdle.IsTerminal())
}
