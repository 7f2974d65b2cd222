package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusSubmitted, StatusPendingPayment, true},
		{StatusSubmitted, StatusPaymentSubmitted, true},
		{StatusSubmitted, StatusActive, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusPendingPayment, StatusPaymentSubmitted, true},
		{StatusPendingPayment, StatusActive, true},
		{StatusPendingPayment, StatusRejected, false},
		{StatusPaymentSubmitted, StatusActive, true},
		{StatusPaymentSubmitted, StatusRejected, true},
		{StatusPaymentSubmitted, StatusPendingPayment, false},
		{StatusActive, StatusRejected, false},
		{StatusActive, StatusSubmitted, false},
		{StatusRejected, StatusActive, false},
		{StatusRejected, StatusSubmitted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusActive.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusPendingPayment.IsTerminal())
	assert.False(t, StatusPaymentSubmitted.IsTerminal())
}
