/**
 * @description
 * GST arithmetic for membership fee invoices. Membership fees are quoted
 * inclusive of 18% GST, split equally into CGST and SGST for display.
 *
 * @notes
 * - The base amount is recovered from the total by dividing by 1.18 and
 *   rounding to the nearest rupee; GST is the remainder, so base + gst always
 *   equals the total exactly.
 * - CGST and SGST are each rounded independently from gst/2. When gst is odd
 *   their displayed sum differs from gst by one rupee. This matches the
 *   issued-invoice format and is documented behavior, not a defect.
 */
package billing

import "github.com/shopspring/decimal"

// GSTRate is the inclusive tax rate applied to membership fees.
var GSTRate = decimal.NewFromFloat(0.18)

var divisor = decimal.NewFromFloat(1.18)

// Amounts holds the breakdown printed on an invoice.
type Amounts struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	CGSTDisplay decimal.Decimal `json:"cgst_display"`
	SGSTDisplay decimal.Decimal `json:"sgst_display"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CalculateGSTAmounts splits a GST-inclusive total into its invoice lines.
func CalculateGSTAmounts(total decimal.Decimal) Amounts {
	base := total.Div(divisor).Round(0)
	gst := total.Sub(base)
	half := gst.Div(decimal.NewFromInt(2)).Round(0)
	return Amounts{
		BaseAmount:  base,
		GSTAmount:   gst,
		CGSTDisplay: half,
		SGSTDisplay: half,
		TotalAmount: total,
	}
}

// TotalWithGST returns the GST-inclusive fee for a tier price.
func TotalWithGST(price decimal.Decimal) decimal.Decimal {
	return price.Add(price.Mul(GSTRate)).Round(0)
}
