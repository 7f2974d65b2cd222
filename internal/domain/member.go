/**
 * @description
 * This file defines the core domain models for the membership backend.
 * It contains the MemberApplication entity that maps to the `members` table
 * and the status lifecycle it moves through, from public submission to an
 * active (or rejected) membership.
 *
 * @notes
 * - The status machine is strictly forward-moving. The only exception path is
 *   rejection, which is reachable from `submitted` or `payment_submitted`.
 * - `active` and `rejected` are terminal.
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a member application.
type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusPendingPayment   Status = "pending_payment"
	StatusPaymentSubmitted Status = "payment_submitted"
	StatusActive           Status = "active"
	StatusRejected         Status = "rejected"
)

// allowedTransitions is the full transition table for the member lifecycle.
var allowedTransitions = map[Status][]Status{
	StatusSubmitted:        {StatusPendingPayment, StatusPaymentSubmitted, StatusActive, StatusRejected},
	StatusPendingPayment:   {StatusPaymentSubmitted, StatusActive},
	StatusPaymentSubmitted: {StatusActive, StatusRejected},
	StatusActive:           {},
	StatusRejected:         {},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// MemberApplication is the central entity tracked through the membership
// lifecycle. It maps directly to the `members` table.
type MemberApplication struct {
	ID             int64  `json:"id"`
	Status         Status `json:"status"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`

	// Registration identifiers, immutable after creation.
	GSTIN string `json:"gstin"`
	PAN   string `json:"pan"`
	TAN   string `json:"tan"`
	CIN   string `json:"cin"`

	ContactName        string `json:"contact_name"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	ContactDesignation string `json:"contact_designation"`

	HeadName  string `json:"head_name"`
	HeadEmail string `json:"head_email"`
	HeadPhone string `json:"head_phone"`

	MembershipType TierType `json:"membership_type"`

	FeeAmount          decimal.Decimal `json:"fee_amount"`
	PaymentReferenceID *string         `json:"payment_reference_id,omitempty"`
	PaymentVerifiedAt  *time.Time      `json:"payment_verified_at,omitempty"`
	ActivatedAt        *time.Time      `json:"activated_at,omitempty"`
	RejectionReason    *string         `json:"rejection_reason,omitempty"`
	RejectedAt         *time.Time      `json:"rejected_at,omitempty"`

	CertificateSent   bool       `json:"certificate_sent"`
	CertificateSentAt *time.Time `json:"certificate_sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicView is the DTO returned to applicants and admin responses. It hides
// nothing sensitive today but keeps the wire shape independent of the table.
type PublicView struct {
	ID              int64      `json:"id"`
	Status          Status     `json:"status"`
	CompanyName     string     `json:"company_name"`
	MembershipType  TierType   `json:"membership_type"`
	ActivatedAt     *time.Time `json:"activated_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CertificateSent bool       `json:"certificate_sent"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Public returns the applicant-facing view of the record.
func (m *MemberApplication) Public() PublicView {
	return PublicView{
		ID:              m.ID,
		Status:          m.Status,
		CompanyName:     m.CompanyName,
		MembershipType:  m.MembershipType,
		ActivatedAt:     m.ActivatedAt,
		RejectionReason: m.RejectionReason,
		CertificateSent: m.CertificateSent,
		CreatedAt:       m.CreatedAt,
	}
}
