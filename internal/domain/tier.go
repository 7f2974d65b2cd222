/**
 * @description
 * Membership tier model. Tiers are created and priced by an administrator
 * through the CMS and are read-only to this service.
 */
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TierType identifies one of the three membership categories.
type TierType string

const (
	TierAssociate TierType = "associate"
	TierAllied    TierType = "allied"
	TierPremier   TierType = "premier"
)

// Valid reports whether t is one of the known tiers.
func (t TierType) Valid() bool {
	switch t {
	case TierAssociate, TierAllied, TierPremier:
		return true
	}
	return false
}

// DisplayLabel maps the tier enum to the string printed on certificates.
func (t TierType) DisplayLabel() string {
	switch t {
	case TierAssociate:
		return "Associate Member"
	case TierAllied:
		return "Allied Member"
	case TierPremier:
		return "Premier Member"
	}
	return "Member"
}

// Initial returns the uppercase first letter of the tier name, used in
// membership ID derivation.
func (t TierType) Initial() string {
	if t == "" {
		return "M"
	}
	return strings.ToUpper(string(t[0]))
}

// MembershipTier represents one row of the `memberships` table.
type MembershipTier struct {
	Type  TierType        `json:"type"`
	Price decimal.Decimal `json:"price"`
}
