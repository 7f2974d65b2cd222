/**
 * @description
 * This file contains the consumer that applies payment gateway outcomes to
 * member records. The webhook handler only validates and publishes; the
 * status transition happens here, decoupled from gateway acknowledgement.
 *
 * @dependencies
 * - context, encoding/json, log: Standard Go libraries.
 * - The service's internal packages for domain models and business logic.
 */
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amang06/aim-backend/internal/domain"
	"github.com/amang06/aim-backend/internal/store"
)

// PaymentEventConsumer handles the processing of payment events.
type PaymentEventConsumer struct {
	service Service
}

// NewPaymentEventConsumer creates a new instance of PaymentEventConsumer.
func NewPaymentEventConsumer(service Service) *PaymentEventConsumer {
	return &PaymentEventConsumer{service: service}
}

// HandlePaymentEvent processes one payment event. It returns true to
// acknowledge the message and false to requeue it for retry.
func (c *PaymentEventConsumer) HandlePaymentEvent(body []byte) bool {
	var event domain.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error unmarshaling payment event: %v", err)
		return true // Acknowledge malformed message.
	}
	if event.MemberID == 0 {
		log.Printf("payment event %s missing member id; acking", event.EventID)
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch event.Outcome {
	case "succeeded":
		amount, err := decimal.NewFromString(event.Amount)
		if err != nil {
			log.Printf("payment event %s has invalid amount %q; acking", event.EventID, event.Amount)
			return true
		}
		_, err = c.service.RecordPaymentSuccess(ctx, event.MemberID, event.ReferenceID, amount)
		return c.ackOrRetry(event, err)
	case "submitted":
		_, err := c.service.RecordPaymentSubmitted(ctx, event.MemberID, event.ReferenceID)
		return c.ackOrRetry(event, err)
	case "failed":
		// The record stays where it is; the applicant can retry checkout.
		log.Printf("payment failed for member %d (reference %s)", event.MemberID, event.ReferenceID)
		return true
	default:
		log.Printf("unknown payment outcome %q for member %d; acking", event.Outcome, event.MemberID)
		return true
	}
}

// ackOrRetry decides the acknowledgement for a transition attempt. State
// machine violations and unknown members are permanent and acked; everything
// else is assumed transient and requeued.
func (c *PaymentEventConsumer) ackOrRetry(event domain.PaymentEvent, err error) bool {
	if err == nil {
		return true
	}
	var transition *domain.InvalidStateTransitionError
	if errors.As(err, &transition) {
		log.Printf("payment event %s for member %d dropped: %v", event.EventID, event.MemberID, err)
		return true
	}
	if errors.Is(err, store.ErrMemberNotFound) {
		log.Printf("CRITICAL: payment event %s references unknown member %d. Acknowledging to avoid requeue loop.", event.EventID, event.MemberID)
		return true
	}
	log.Printf("ERROR: failed to apply payment event %s for member %d: %v", event.EventID, event.MemberID, err)
	return false // Retryable database error.
}
