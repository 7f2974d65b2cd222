package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amang06/aim-backend/internal/domain"
)

func paymentEventBody(t *testing.T, event domain.PaymentEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func newTestConsumer(repo *repoStub) *PaymentEventConsumer {
	svc, _ := newTestService(repo, &gatewayStub{})
	return NewPaymentEventConsumer(svc)
}

func TestHandlePaymentEventSucceededActivates(t *testing.T) {
	repo := newRepoStub()
	m := seedMember(repo, domain.StatusPaymentSubmitted)
	consumer := newTestConsumer(repo)

	ack := consumer.HandlePaymentEvent(paymentEventBody(t, domain.PaymentEvent{
		EventID:     "evt_1",
		MemberID:    m.ID,
		ReferenceID: "pay_N8f2kQ",
		Amount:      "5900",
		Outcome:     "succeeded",
	}))

	assert.True(t, ack)
	assert.Equal(t, domain.StatusActive, repo.members[m.ID].Status)
}

func TestHandlePaymentEventSubmittedRecordsReference(t *testing.T) {
	repo := newRepoStub()
	m := seedMember(repo, domain.StatusPendingPayment)
	consumer := newTestConsumer(repo)

	ack := consumer.HandlePaymentEvent(paymentEventBody(t, domain.PaymentEvent{
		EventID:     "evt_2",
		MemberID:    m.ID,
		ReferenceID: "pay_N8f2kQ",
		Outcome:     "submitted",
	}))

	assert.True(t, ack)
	assert.Equal(t, domain.StatusPaymentSubmitted, repo.members[m.ID].Status)
}

func TestHandlePaymentEventFailedLeavesRecordAlone(t *testing.T) {
	repo := newRepoStub()
	m := seedMember(repo, domain.StatusPendingPayment)
	consumer := newTestConsumer(repo)

	ack := consumer.HandlePaymentEvent(paymentEventBody(t, domain.PaymentEvent{
		EventID:  "evt_3",
		MemberID: m.ID,
		Outcome:  "failed",
	}))

	assert.True(t, ack)
	assert.Equal(t, domain.StatusPendingPayment, repo.members[m.ID].Status)
}

func TestHandlePaymentEventAcksPermanentProblems(t *testing.T) {
	repo := newRepoStub()
	rejected := seedMember(repo, domain.StatusRejected)
	consumer := newTestConsumer(repo)

	cases := []struct {
		name string
		body []byte
	}{
		{"malformed json", []byte("{not json")},
		{"missing member id", paymentEventBody(t, domain.PaymentEvent{EventID: "evt_4", Outcome: "succeeded", Amount: "5900"})},
		{"unknown member", paymentEventBody(t, domain.PaymentEvent{EventID: "evt_5", MemberID: 999, Outcome: "succeeded", Amount: "5900", ReferenceID: "pay_x"})},
		{"invalid amount", paymentEventBody(t, domain.PaymentEvent{EventID: "evt_6", MemberID: rejected.ID, Outcome: "succeeded", Amount: "not-a-number"})},
		{"state machine violation", paymentEventBody(t, domain.PaymentEvent{EventID: "evt_7", MemberID: rejected.ID, Outcome: "succeeded", Amount: "5900", ReferenceID: "pay_x"})},
		{"unknown outcome", paymentEventBody(t, domain.PaymentEvent{EventID: "evt_8", MemberID: rejected.ID, Outcome: "mystery"})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Acked, not requeued: redelivery cannot fix any of these.
			assert.True(t, consumer.HandlePaymentEvent(tc.body))
		})
	}
}
