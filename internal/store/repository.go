/**
 * @description
 * This file implements the data access layer for the membership backend.
 * It contains all the SQL queries and logic for interacting with the
 * `members` and `memberships` tables.
 *
 * @notes
 * - Status guards are enforced in SQL as well as in the service layer: the
 *   mutating statements carry a status predicate so a concurrent transition
 *   cannot be overwritten.
 * - MarkCertificateSent is a conditional write (certificate_sent must still
 *   be false), which narrows the double-send window under overlapping batch
 *   runs. Delivery remains at-least-once, not exactly-once.
 */
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/amang06/aim-backend/internal/domain"
)

// ErrMemberNotFound is returned when no member row matches the query.
var ErrMemberNotFound = errors.New("member not found")

// ErrTierNotFound is returned when no membership tier matches the query.
var ErrTierNotFound = errors.New("membership tier not found")

// memberColumns is the canonical select list for member rows.
const memberColumns = `
	id, status, company_name, company_address, company_email, company_phone,
	gstin, pan, tan, cin,
	contact_name, contact_email, contact_phone, contact_designation,
	head_name, head_email, head_phone,
	membership_type, fee_amount, payment_reference_id, payment_verified_at,
	activated_at, rejection_reason, rejected_at,
	certificate_sent, certificate_sent_at, created_at, updated_at`

// Repository handles database operations for members and tiers.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*domain.MemberApplication, error) {
	var m domain.MemberApplication
	err := row.Scan(
		&m.ID, &m.Status, &m.CompanyName, &m.CompanyAddress, &m.CompanyEmail, &m.CompanyPhone,
		&m.GSTIN, &m.PAN, &m.TAN, &m.CIN,
		&m.ContactName, &m.ContactEmail, &m.ContactPhone, &m.ContactDesignation,
		&m.HeadName, &m.HeadEmail, &m.HeadPhone,
		&m.MembershipType, &m.FeeAmount, &m.PaymentReferenceID, &m.PaymentVerifiedAt,
		&m.ActivatedAt, &m.RejectionReason, &m.RejectedAt,
		&m.CertificateSent, &m.CertificateSentAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListTiers returns all membership tiers.
func (r *Repository) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	rows, err := r.db.Query(ctx, `SELECT type, price FROM memberships ORDER BY price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.MembershipTier
	for rows.Next() {
		var t domain.MembershipTier
		if err := rows.Scan(&t.Type, &t.Price); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// GetTierByType returns one membership tier.
func (r *Repository) GetTierByType(ctx context.Context, t domain.TierType) (*domain.MembershipTier, error) {
	var tier domain.MembershipTier
	err := r.db.QueryRow(ctx, `SELECT type, price FROM memberships WHERE type = $1`, t).
		Scan(&tier.Type, &tier.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	return &tier, nil
}

// CreateMember inserts a new application in submitted status.
func (r *Repository) CreateMember(ctx context.Context, m *domain.MemberApplication) (*domain.MemberApplication, error) {
	query := `
        INSERT INTO members (
            status, company_name, company_address, company_email, company_phone,
            gstin, pan, tan, cin,
            contact_name, contact_email, contact_phone, contact_designation,
            head_name, head_email, head_phone, membership_type
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING ` + memberColumns
	row := r.db.QueryRow(ctx, query,
		m.Status, m.CompanyName, m.CompanyAddress, m.CompanyEmail, m.CompanyPhone,
		m.GSTIN, m.PAN, m.TAN, m.CIN,
		m.ContactName, m.ContactEmail, m.ContactPhone, m.ContactDesignation,
		m.HeadName, m.HeadEmail, m.HeadPhone, m.MembershipType,
	)
	return scanMember(row)
}

// GetMemberByID retrieves one member record.
func (r *Repository) GetMemberByID(ctx context.Context, id int64) (*domain.MemberApplication, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.db.QueryRow(ctx, query, id))
}

// MarkPendingPayment moves a submitted application into pending_payment and
// records the quoted fee.
func (r *Repository) MarkPendingPayment(ctx context.Context, id int64, fee decimal.Decimal) (*domain.MemberApplication, error) {
	query := `
        UPDATE members
        SET status = $2, fee_amount = $3, updated_at = NOW()
        WHERE id = $1 AND status = $4
        RETURNING ` + memberColumns
	return scanMember(r.db.QueryRow(ctx, query, id, domain.StatusPendingPayment, fee, domain.StatusSubmitted))
}

// MarkPaymentSubmitted records a gateway callback that is pending
// verification.
func (r *Repository) MarkPaymentSubmitted(ctx context.Context, id int64, referenceID string) (*domain.MemberApplication, error) {
	query := `
        UPDATE members
        SET status = $2, payment_reference_id = $3, updated_at = NOW()
        WHERE id = $1 AND status IN ($4, $5)
        RETURNING ` + memberColumns
	return scanMember(r.db.QueryRow(ctx, query,
		id, domain.StatusPaymentSubmitted, referenceID,
		domain.StatusSubmitted, domain.StatusPendingPayment))
}

// ActivateMember transitions a member to active after a verified payment.
func (r *Repository) ActivateMember(ctx context.Context, id int64, referenceID string, amount decimal.Decimal) (*domain.MemberApplication, error) {
	query := `
        UPDATE members
        SET status = $2, payment_reference_id = $3, fee_amount = $4,
            payment_verified_at = NOW(), activated_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND status IN ($5, $6, $7)
        RETURNING ` + memberColumns
	return scanMember(r.db.QueryRow(ctx, query,
		id, domain.StatusActive, referenceID, amount,
		domain.StatusSubmitted, domain.StatusPendingPayment, domain.StatusPaymentSubmitted))
}

// RejectMember transitions an application to rejected with a reason.
func (r *Repository) RejectMember(ctx context.Context, id int64, reason string) (*domain.MemberApplication, error) {
	query := `
        UPDATE members
        SET status = $2, rejection_reason = $3, rejected_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND status IN ($4, $5)
        RETURNING ` + memberColumns
	return scanMember(r.db.QueryRow(ctx, query,
		id, domain.StatusRejected, reason,
		domain.StatusSubmitted, domain.StatusPaymentSubmitted))
}

// ListActiveUncertified returns active members that have not been sent their
// certificate yet, bounded to limit, in stable id order.
func (r *Repository) ListActiveUncertified(ctx context.Context, limit int) ([]domain.MemberApplication, error) {
	query := `SELECT ` + memberColumns + `
        FROM members
        WHERE status = $1 AND certificate_sent = FALSE
        ORDER BY id
        LIMIT $2`
	rows, err := r.db.Query(ctx, query, domain.StatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.MemberApplication
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// MarkCertificateSent flips the certificate flag, but only if it is still
// unset. It reports whether this call won the update.
func (r *Repository) MarkCertificateSent(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE members
        SET certificate_sent = TRUE, certificate_sent_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND certificate_sent = FALSE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
