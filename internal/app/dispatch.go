/**
 * @description
 * Batch certificate dispatch. Finds active members whose certificate has not
 * been sent, renders each certificate and emails it, then marks the record.
 * The job is stateless and re-runnable: it only acts on records still
 * missing the sent flag, and the flag update is conditional, so overlapping
 * runs narrow to at-least-once delivery rather than duplicating freely.
 *
 * @notes
 * - Processing is strictly sequential, one member at a time. Mail-provider
 *   rate limits make fan-out pointless at tens to low hundreds per run.
 * - Per-item failures are logged, counted and never abort the batch. Only a
 *   failure of the candidate query itself is fatal to the run.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amang06/aim-backend/internal/domain"
	"github.com/amang06/aim-backend/internal/pdf"
)

// DispatchRepository defines the database operations the dispatch job needs.
type DispatchRepository interface {
	ListActiveUncertified(ctx context.Context, limit int) ([]domain.MemberApplication, error)
	MarkCertificateSent(ctx context.Context, id int64) (bool, error)
}

// CertificateRenderer renders the certificate PDF.
type CertificateRenderer interface {
	Generate(in pdf.CertificateInput) ([]byte, error)
}

// Mailer sends the certificate email with the PDF attached.
type Mailer interface {
	SendCertificate(ctx context.Context, member domain.MemberApplication, certificate []byte, filename string) error
}

// DispatchResult summarizes one batch run.
type DispatchResult struct {
	Processed  int      `json:"processed"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// CertificateDispatcher drives certificate generation and delivery for a
// batch of members.
type CertificateDispatcher struct {
	repo   DispatchRepository
	certs  CertificateRenderer
	mailer Mailer
	logger *slog.Logger
}

// NewCertificateDispatcher creates a new dispatcher.
func NewCertificateDispatcher(repo DispatchRepository, certs CertificateRenderer, mailer Mailer, logger *slog.Logger) *CertificateDispatcher {
	return &CertificateDispatcher{repo: repo, certs: certs, mailer: mailer, logger: logger}
}

// Run executes one batch of at most limit members. Per-item errors are
// collected in the result; only a failed candidate query returns an error.
func (d *CertificateDispatcher) Run(ctx context.Context, limit int) (*DispatchResult, error) {
	members, err := d.repo.ListActiveUncertified(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{}
	if len(members) == 0 {
		d.logger.Info("no members awaiting certificates")
		return result, nil
	}
	d.logger.Info("dispatching certificates", "count", len(members))

	now := time.Now()
	for _, member := range members {
		result.Processed++
		if err := d.dispatchOne(ctx, member, now); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("member %d: %v", member.ID, err))
			d.logger.Error("certificate dispatch failed", "member_id", member.ID, "error", err)
			continue
		}
		result.Successful++
	}

	d.logger.Info("certificate dispatch finished",
		"processed", result.Processed, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

// dispatchOne renders, mails and marks one member's certificate.
func (d *CertificateDispatcher) dispatchOne(ctx context.Context, member domain.MemberApplication, now time.Time) error {
	if member.ActivatedAt == nil {
		return &domain.PreconditionError{MemberID: member.ID, Missing: "activated_at"}
	}

	in := pdf.CertificateInput{
		CompanyName:        member.CompanyName,
		MembershipType:     member.MembershipType,
		MembershipID:       domain.MembershipID(member.ID, member.MembershipType, now.Year()),
		MembershipDuration: domain.MembershipDuration(*member.ActivatedAt),
		IssueDate:          domain.FormatLongDate(now),
	}
	certificate, err := d.certs.Generate(in)
	if err != nil {
		return fmt.Errorf("generate certificate: %w", err)
	}

	filename := CertificateFilename(member.CompanyName)
	if err := d.mailer.SendCertificate(ctx, member, certificate, filename); err != nil {
		return &domain.ExternalServiceError{Service: "mail", Err: err}
	}

	claimed, err := d.repo.MarkCertificateSent(ctx, member.ID)
	if err != nil {
		return fmt.Errorf("mark certificate sent: %w", err)
	}
	if !claimed {
		// A concurrent run already marked this member; the extra email is
		// the documented at-least-once cost.
		d.logger.Warn("certificate already marked sent", "member_id", member.ID)
	}
	return nil
}
