/**
 * @description
 * Internal event payloads published to RabbitMQ when the payment gateway
 * calls back. The webhook handler validates and publishes; a consumer
 * applies the status transition, so gateway acknowledgement is decoupled
 * from the database write.
 */
package domain

import "time"

// Routing keys for payment events on the payments topic exchange.
const (
	PaymentEventsExchange   = "payment.events"
	PaymentSucceededKey     = "payment.succeeded"
	PaymentSubmittedKey     = "payment.submitted"
	PaymentFailedKey        = "payment.failed"
	PaymentEventsQueue      = "membership.payment.events"
	PaymentEventsBindingKey = "payment.*"
)

// PaymentEvent is the internal representation of a gateway callback.
type PaymentEvent struct {
	EventID     string    `json:"event_id"`
	MemberID    int64     `json:"member_id"`
	ReferenceID string    `json:"reference_id"`
	Amount      string    `json:"amount"`
	Outcome     string    `json:"outcome"` // 'succeeded', 'submitted' or 'failed'
	ReceivedAt  time.Time `json:"received_at"`
}
