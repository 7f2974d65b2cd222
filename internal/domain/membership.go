/**
 * @description
 * Derived membership fields: the printed membership ID, the validity window
 * text, and the long-form dates used on certificates and invoices.
 *
 * @notes
 * - MembershipID uses the year at generation time, not the application year.
 *   A long-pending member certified after a year boundary would get a
 *   different ID on regeneration; this mirrors the existing numbering scheme
 *   and is deliberately left as-is.
 */
package domain

import (
	"fmt"
	"time"
)

// longDateLayout is the textual date form printed on documents,
// e.g. "March 15, 2024".
const longDateLayout = "January 2, 2006"

// FormatLongDate renders t in the long textual form used on documents.
func FormatLongDate(t time.Time) string {
	return t.Format(longDateLayout)
}

// MembershipID derives the printed membership identifier:
// AIM-{TierInitial}{year}-{memberID zero-padded to 4 digits}.
func MembershipID(memberID int64, tier TierType, year int) string {
	return fmt.Sprintf("AIM-%s%d-%04d", tier.Initial(), year, memberID)
}

// MembershipDuration renders the one-year validity window starting at
// activatedAt, e.g. "March 15, 2024 - March 15, 2025". Membership is always
// exactly one calendar year; there is no leap-day special-casing.
func MembershipDuration(activatedAt time.Time) string {
	end := activatedAt.AddDate(1, 0, 0)
	return FormatLongDate(activatedAt) + " - " + FormatLongDate(end)
}

// InvoiceNumber derives the printed invoice identifier:
// AIM/{year}/{month zero-padded to 2 digits}/{memberID}. The date is the
// generation-time date, matching the membership ID scheme.
func InvoiceNumber(memberID int64, at time.Time) string {
	return fmt.Sprintf("AIM/%d/%02d/%d", at.Year(), int(at.Month()), memberID)
}
