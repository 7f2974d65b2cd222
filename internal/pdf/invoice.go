/**
 * @description
 * GST tax invoice generator. Renders a portrait A4 invoice for a membership
 * fee payment: issuer header, TAX INVOICE band, invoice number/date box,
 * BILL TO details, a three-line item table (membership fee, CGST, SGST), the
 * total with a PAID stamp, optional payment details, fixed terms and a
 * signatory footer.
 *
 * @notes
 * - Customer email and phone are truncated for display (25 and 15 characters)
 *   to keep the BILL TO box from overflowing. The truncation is lossy on
 *   purpose and covered by tests for visual compatibility.
 * - A missing logo shifts the issuer identity left; it is never an error.
 */
package pdf

import (
	"bytes"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/amang06/aim-backend/internal/billing"
	"github.com/amang06/aim-backend/internal/domain"
)

// Display truncation limits for the BILL TO box.
const (
	invoiceEmailMaxLen = 25
	invoicePhoneMaxLen = 15
)

// invoiceTerms is the fixed terms-and-conditions block printed on every
// invoice.
const invoiceTerms = "1. This is a system generated invoice for the membership fee received by the Association of Indian Manufacturers. " +
	"2. Membership is valid for one year from the date of activation and is non-transferable. " +
	"3. Fees once paid are non-refundable except as required under applicable law. " +
	"4. Any dispute is subject to the exclusive jurisdiction of the courts at New Delhi."

// Issuer identifies the invoicing organization.
type Issuer struct {
	Name    string
	Address string
	GSTIN   string
	Email   string
	Phone   string
}

// InvoiceCustomer is the billed party as printed in the BILL TO box.
type InvoiceCustomer struct {
	CompanyName string
	Address     string
	Email       string
	Phone       string
	GSTIN       string
	PAN         string
}

// InvoiceInput is everything an invoice is rendered from.
type InvoiceInput struct {
	InvoiceNumber  string
	InvoiceDate    string
	Customer       InvoiceCustomer
	MembershipType domain.TierType
	Amounts        billing.Amounts

	// Optional payment details; the payment band is omitted when the
	// reference is empty.
	PaymentReference string
	PaymentDate      string
}

// InvoiceGenerator renders GST tax invoices.
type InvoiceGenerator struct {
	issuer   Issuer
	logoPath string
	logger   *slog.Logger
}

// NewInvoiceGenerator creates a generator for the given issuer identity.
func NewInvoiceGenerator(issuer Issuer, logoPath string, logger *slog.Logger) *InvoiceGenerator {
	return &InvoiceGenerator{issuer: issuer, logoPath: logoPath, logger: logger}
}

// truncateForDisplay shortens s to max characters, marking the cut with an
// ellipsis. The cut counts runes, not bytes, so a multi-byte character is
// never split.
func truncateForDisplay(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Generate renders the invoice PDF for the given input.
func (g *InvoiceGenerator) Generate(in InvoiceInput) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	setDocumentDate(doc, in.InvoiceDate)
	doc.SetTitle("Tax Invoice "+in.InvoiceNumber, false)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	g.drawHeader(doc)

	// TAX INVOICE band.
	doc.SetFillColor(25, 52, 95)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 14)
	doc.SetXY(12, 44)
	doc.CellFormat(186, 10, "TAX INVOICE", "", 0, "C", true, 0, "")

	// Invoice number and date box.
	doc.SetDrawColor(120, 120, 120)
	doc.SetLineWidth(0.3)
	doc.Rect(130, 58, 68, 14, "D")
	doc.SetTextColor(20, 20, 20)
	doc.SetFont("Helvetica", "B", 9)
	doc.Text(133, 63.5, "Invoice No: "+in.InvoiceNumber)
	doc.SetFont("Helvetica", "", 9)
	doc.Text(133, 69, "Date: "+in.InvoiceDate)

	g.drawBillTo(doc, in.Customer)
	bottom := g.drawItemTable(doc, in)
	bottom = g.drawPaymentBand(doc, in, bottom)
	g.drawFooter(doc, bottom)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawHeader renders the logo and issuer identity band. Without a logo the
// identity block starts at the left margin.
func (g *InvoiceGenerator) drawHeader(doc *fpdf.Fpdf) {
	textX := 12.0
	logo, err := loadLogo(g.logoPath)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("invoice logo unavailable, omitting from layout", "path", g.logoPath, "error", err)
		}
	} else {
		logo.place(doc, "invoice-logo", 12, 12, 22)
		textX = 40
	}

	doc.SetTextColor(25, 52, 95)
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(textX, 18, g.issuer.Name)
	doc.SetTextColor(80, 80, 80)
	doc.SetFont("Helvetica", "", 9)
	doc.Text(textX, 24, g.issuer.Address)
	doc.Text(textX, 29, "GSTIN: "+g.issuer.GSTIN)
	doc.Text(textX, 34, g.issuer.Email+"  |  "+g.issuer.Phone)
}

// drawBillTo renders the customer details band.
func (g *InvoiceGenerator) drawBillTo(doc *fpdf.Fpdf, c InvoiceCustomer) {
	doc.SetFillColor(230, 233, 240)
	doc.SetTextColor(25, 52, 95)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetXY(12, 78)
	doc.CellFormat(110, 7, "BILL TO", "", 0, "L", true, 0, "")

	doc.SetTextColor(20, 20, 20)
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(12, 91, c.CompanyName)

	doc.SetFont("Helvetica", "", 9)
	lines := []string{
		c.Address,
		"Email: " + truncateForDisplay(c.Email, invoiceEmailMaxLen),
		"Phone: " + truncateForDisplay(c.Phone, invoicePhoneMaxLen),
		"GSTIN: " + c.GSTIN,
		"PAN: " + c.PAN,
	}
	y := 96.5
	for _, line := range lines {
		doc.Text(12, y, line)
		y += 5
	}
}

// drawItemTable renders the three fixed invoice lines and the total band,
// including the PAID stamp. It returns the y coordinate below the table.
func (g *InvoiceGenerator) drawItemTable(doc *fpdf.Fpdf, in InvoiceInput) float64 {
	const (
		tableX = 12.0
		descW  = 140.0
		amtW   = 46.0
		rowH   = 8.0
	)
	y := 130.0

	doc.SetFillColor(25, 52, 95)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetXY(tableX, y)
	doc.CellFormat(descW, rowH, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(amtW, rowH, "Amount (INR)", "1", 0, "R", true, 0, "")
	y += rowH

	rows := []struct {
		desc   string
		amount string
	}{
		{in.MembershipType.DisplayLabel() + "ship Fee (Annual)", in.Amounts.BaseAmount.StringFixed(2)},
		{"CGST @ 9%", in.Amounts.CGSTDisplay.StringFixed(2)},
		{"SGST @ 9%", in.Amounts.SGSTDisplay.StringFixed(2)},
	}
	doc.SetTextColor(20, 20, 20)
	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.SetXY(tableX, y)
		doc.CellFormat(descW, rowH, row.desc, "1", 0, "L", false, 0, "")
		doc.CellFormat(amtW, rowH, row.amount, "1", 0, "R", false, 0, "")
		y += rowH
	}

	// Total band with the PAID stamp beside it.
	doc.SetFillColor(230, 233, 240)
	doc.SetFont("Helvetica", "B", 11)
	doc.SetXY(tableX, y)
	doc.CellFormat(descW, rowH, "Total", "1", 0, "L", true, 0, "")
	doc.CellFormat(amtW, rowH, in.Amounts.TotalAmount.StringFixed(2), "1", 0, "R", true, 0, "")

	doc.SetTextColor(200, 30, 30)
	doc.SetDrawColor(200, 30, 30)
	doc.SetFont("Helvetica", "B", 14)
	stampW := doc.GetStringWidth("PAID") + 8
	doc.SetLineWidth(0.6)
	doc.Rect(tableX+descW-stampW-14, y+1, stampW, rowH-2, "D")
	doc.Text(tableX+descW-stampW-10, y+rowH-2.5, "PAID")

	return y + rowH
}

// drawPaymentBand renders the optional payment reference band. It returns
// the y coordinate to continue from.
func (g *InvoiceGenerator) drawPaymentBand(doc *fpdf.Fpdf, in InvoiceInput, y float64) float64 {
	if in.PaymentReference == "" {
		return y
	}
	y += 10
	doc.SetTextColor(80, 80, 80)
	doc.SetFont("Helvetica", "", 9)
	doc.Text(12, y, "Payment Reference: "+in.PaymentReference)
	if in.PaymentDate != "" {
		doc.Text(12, y+5, "Payment Date: "+in.PaymentDate)
		y += 5
	}
	return y
}

// drawFooter renders the terms block and the signatory footer.
func (g *InvoiceGenerator) drawFooter(doc *fpdf.Fpdf, y float64) {
	y += 14
	doc.SetTextColor(25, 52, 95)
	doc.SetFont("Helvetica", "B", 9)
	doc.Text(12, y, "Terms & Conditions")
	doc.SetTextColor(100, 100, 100)
	doc.SetFont("Helvetica", "", 8)
	doc.SetXY(12, y+2)
	doc.MultiCell(186, 4, invoiceTerms, "", "L", false)

	doc.SetTextColor(20, 20, 20)
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(198-doc.GetStringWidth("For "+g.issuer.Name), 262, "For "+g.issuer.Name)
	doc.SetFont("Helvetica", "", 9)
	doc.Text(198-doc.GetStringWidth("Authorised Signatory"), 280, "Authorised Signatory")
}
