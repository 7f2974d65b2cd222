/**
 * @description
 * This file contains the core business logic for the membership backend.
 * The Service layer owns the lifecycle state machine: it validates drafts,
 * guards every status transition, and orchestrates the repository, the
 * payment gateway adapter and the document generators.
 */
package app

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amang06/aim-backend/internal/billing"
	"github.com/amang06/aim-backend/internal/domain"
	"github.com/amang06/aim-backend/internal/pdf"
	"github.com/amang06/aim-backend/pkg/gatewayclient"
)

// Repository defines the interface for database operations that the service
// needs.
type Repository interface {
	ListTiers(ctx context.Context) ([]domain.MembershipTier, error)
	GetTierByType(ctx context.Context, t domain.TierType) (*domain.MembershipTier, error)
	CreateMember(ctx context.Context, m *domain.MemberApplication) (*domain.MemberApplication, error)
	GetMemberByID(ctx context.Context, id int64) (*domain.MemberApplication, error)
	MarkPendingPayment(ctx context.Context, id int64, fee decimal.Decimal) (*domain.MemberApplication, error)
	MarkPaymentSubmitted(ctx context.Context, id int64, referenceID string) (*domain.MemberApplication, error)
	ActivateMember(ctx context.Context, id int64, referenceID string, amount decimal.Decimal) (*domain.MemberApplication, error)
	RejectMember(ctx context.Context, id int64, reason string) (*domain.MemberApplication, error)
}

// PaymentGateway defines the interface for the external payment collaborator.
type PaymentGateway interface {
	CreateOrder(memberID int64, email string, amount decimal.Decimal) (*gatewayclient.PaymentOrder, error)
}

// InvoiceRenderer renders the GST invoice PDF.
type InvoiceRenderer interface {
	Generate(in pdf.InvoiceInput) ([]byte, error)
}

// Service provides the business logic for membership management.
type Service struct {
	repo     Repository
	gateway  PaymentGateway
	invoices InvoiceRenderer
	certs    CertificateRenderer
	logger   *slog.Logger
}

// NewService creates a new membership service.
func NewService(repo Repository, gateway PaymentGateway, invoices InvoiceRenderer, certs CertificateRenderer, logger *slog.Logger) Service {
	return Service{repo: repo, gateway: gateway, invoices: invoices, certs: certs, logger: logger}
}

// ListTiers returns the membership catalog.
func (s Service) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	return s.repo.ListTiers(ctx)
}

// SubmitApplication validates a draft and creates the member record in
// submitted status. Validation reports every invalid or missing field, not
// just the first; nothing is persisted on failure.
func (s Service) SubmitApplication(ctx context.Context, draft domain.ApplicationDraft) (*domain.MemberApplication, error) {
	if verr := draft.Validate(); verr != nil {
		return nil, verr
	}
	member, err := s.repo.CreateMember(ctx, draft.NewMemberApplication())
	if err != nil {
		return nil, err
	}
	s.logger.Info("application submitted", "member_id", member.ID, "company", member.CompanyName)
	return member, nil
}

// GetApplication returns one member record.
func (s Service) GetApplication(ctx context.Context, id int64) (*domain.MemberApplication, error) {
	return s.repo.GetMemberByID(ctx, id)
}

// InitiatePayment quotes the GST-inclusive fee for the chosen tier, moves a
// submitted application to pending_payment and returns the gateway redirect
// target with its signed form fields. Re-initiating from pending_payment is
// allowed so an abandoned checkout can be resumed.
func (s Service) InitiatePayment(ctx context.Context, id int64) (*gatewayclient.PaymentOrder, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.Status != domain.StatusSubmitted && member.Status != domain.StatusPendingPayment {
		return nil, &domain.InvalidStateTransitionError{Current: member.Status, Attempted: domain.StatusPendingPayment}
	}

	tier, err := s.repo.GetTierByType(ctx, member.MembershipType)
	if err != nil {
		return nil, err
	}
	total := billing.TotalWithGST(tier.Price)

	if member.Status == domain.StatusSubmitted {
		if member, err = s.repo.MarkPendingPayment(ctx, id, total); err != nil {
			return nil, err
		}
	}

	order, err := s.gateway.CreateOrder(member.ID, member.CompanyEmail, total)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "payment gateway", Err: err}
	}
	s.logger.Info("payment initiated", "member_id", member.ID, "amount", total.String())
	return order, nil
}

// RecordPaymentSubmitted records a gateway callback that still awaits
// verification.
func (s Service) RecordPaymentSubmitted(ctx context.Context, id int64, referenceID string) (*domain.MemberApplication, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.Status == domain.StatusPaymentSubmitted {
		return member, nil // replayed callback
	}
	if !member.Status.CanTransitionTo(domain.StatusPaymentSubmitted) {
		return nil, &domain.InvalidStateTransitionError{Current: member.Status, Attempted: domain.StatusPaymentSubmitted}
	}
	return s.repo.MarkPaymentSubmitted(ctx, id, referenceID)
}

// RecordPaymentSuccess transitions a member to active and stamps the payment
// fields. Replays for an already-active member are acknowledged without a
// second mutation.
func (s Service) RecordPaymentSuccess(ctx context.Context, id int64, referenceID string, amount decimal.Decimal) (*domain.MemberApplication, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.Status == domain.StatusActive {
		return member, nil
	}
	if !member.Status.CanTransitionTo(domain.StatusActive) {
		return nil, &domain.InvalidStateTransitionError{Current: member.Status, Attempted: domain.StatusActive}
	}
	member, err = s.repo.ActivateMember(ctx, id, referenceID, amount)
	if err != nil {
		return nil, err
	}
	s.logger.Info("member activated", "member_id", member.ID, "payment_reference", referenceID)
	return member, nil
}

// RejectApplication rejects an application that has not progressed past
// payment_submitted. The record is left untouched when the current status
// does not allow rejection.
func (s Service) RejectApplication(ctx context.Context, id int64, reason string) (*domain.MemberApplication, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.Status != domain.StatusSubmitted && member.Status != domain.StatusPaymentSubmitted {
		return nil, &domain.InvalidStateTransitionError{Current: member.Status, Attempted: domain.StatusRejected}
	}
	if strings.TrimSpace(reason) == "" {
		reason = domain.DefaultRejectionReason
	}
	member, err = s.repo.RejectMember(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	s.logger.Info("application rejected", "member_id", member.ID, "reason", reason)
	return member, nil
}

// BuildInvoice generates the GST invoice for a member's verified payment.
// The invoice is derived, not stored: it is regenerated from the record on
// every download.
func (s Service) BuildInvoice(ctx context.Context, id int64) (string, []byte, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if member.PaymentVerifiedAt == nil || member.FeeAmount.IsZero() {
		return "", nil, &domain.PreconditionError{MemberID: member.ID, Missing: "verified payment"}
	}

	now := time.Now()
	number := domain.InvoiceNumber(member.ID, now)
	in := pdf.InvoiceInput{
		InvoiceNumber: number,
		InvoiceDate:   domain.FormatLongDate(now),
		Customer: pdf.InvoiceCustomer{
			CompanyName: member.CompanyName,
			Address:     member.CompanyAddress,
			Email:       member.CompanyEmail,
			Phone:       member.CompanyPhone,
			GSTIN:       member.GSTIN,
			PAN:         member.PAN,
		},
		MembershipType: member.MembershipType,
		Amounts:        billing.CalculateGSTAmounts(member.FeeAmount),
	}
	if member.PaymentReferenceID != nil {
		in.PaymentReference = *member.PaymentReferenceID
		in.PaymentDate = domain.FormatLongDate(*member.PaymentVerifiedAt)
	}

	data, err := s.invoices.Generate(in)
	if err != nil {
		return "", nil, err
	}
	return InvoiceFilename(member.ID, number), data, nil
}

// BuildCertificate generates the membership certificate for an active
// member, for the admin download surface. The batch job uses the same
// renderer and derivations.
func (s Service) BuildCertificate(ctx context.Context, id int64) (string, []byte, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if member.Status != domain.StatusActive || member.ActivatedAt == nil {
		return "", nil, &domain.PreconditionError{MemberID: member.ID, Missing: "activated membership"}
	}

	now := time.Now()
	data, err := s.certs.Generate(pdf.CertificateInput{
		CompanyName:        member.CompanyName,
		MembershipType:     member.MembershipType,
		MembershipID:       domain.MembershipID(member.ID, member.MembershipType, now.Year()),
		MembershipDuration: domain.MembershipDuration(*member.ActivatedAt),
		IssueDate:          domain.FormatLongDate(now),
	})
	if err != nil {
		return "", nil, err
	}
	return CertificateFilename(member.CompanyName), data, nil
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// CertificateFilename builds the attachment name for a member's certificate.
func CertificateFilename(companyName string) string {
	return "AIM_Membership_Certificate_" + filenameSanitizer.ReplaceAllString(companyName, "_") + ".pdf"
}

// InvoiceFilename builds the download name for a member's invoice.
func InvoiceFilename(memberID int64, invoiceNumber string) string {
	return "AIM_Invoice_" + strconv.FormatInt(memberID, 10) + "_" + strings.ReplaceAll(invoiceNumber, "/", "_") + ".pdf"
}
