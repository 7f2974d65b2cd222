/**
 * @description
 * Membership certificate generator. Produces a fixed-layout landscape A4
 * certificate as a byte buffer from an already-validated snapshot of a
 * member record plus the derived membership ID and validity window.
 *
 * @notes
 * - The generator does not re-validate its input; callers are responsible
 *   for the activation precondition.
 * - A missing logo asset degrades to rendered text and is never an error.
 */
package pdf

import (
	"bytes"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/amang06/aim-backend/internal/domain"
)

// CertificateInput is the snapshot a certificate is rendered from.
type CertificateInput struct {
	CompanyName        string
	MembershipType     domain.TierType
	MembershipID       string
	MembershipDuration string
	IssueDate          string
}

// Certificate page geometry, in millimeters on landscape A4 (297 x 210).
const (
	certPageW = 297.0
	certPageH = 210.0

	certOuterInset = 8.0
	certInnerInset = 12.0
	certCornerArm  = 9.0

	certTextMaxW     = 180.0
	certLineH        = 7.0
	certSignLineW    = 60.0
	certSignBaseline = 178.0
)

// CertificateGenerator renders membership certificates.
type CertificateGenerator struct {
	logoPath string
	logger   *slog.Logger
}

// NewCertificateGenerator creates a generator that reads its logo from
// logoPath. The path may point at a missing file; generation falls back to
// text in that case.
func NewCertificateGenerator(logoPath string, logger *slog.Logger) *CertificateGenerator {
	return &CertificateGenerator{logoPath: logoPath, logger: logger}
}

// Generate renders the certificate PDF for the given input.
func (g *CertificateGenerator) Generate(in CertificateInput) ([]byte, error) {
	doc := fpdf.New("L", "mm", "A4", "")
	setDocumentDate(doc, in.IssueDate)
	doc.SetTitle("Certificate of Membership", false)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	g.drawBorders(doc)
	g.drawHeader(doc)

	centerX := certPageW / 2

	// Certificate title.
	doc.SetTextColor(25, 52, 95)
	doc.SetFont("Times", "B", 30)
	doc.Text(centerX-doc.GetStringWidth("Certificate of Membership")/2, 74, "Certificate of Membership")

	doc.SetTextColor(60, 60, 60)
	doc.SetFont("Helvetica", "", 13)
	doc.Text(centerX-doc.GetStringWidth("This is to certify that")/2, 88, "This is to certify that")

	// Certified company name.
	doc.SetTextColor(20, 20, 20)
	doc.SetFont("Times", "B", 24)
	doc.Text(centerX-doc.GetStringWidth(in.CompanyName)/2, 102, in.CompanyName)

	// Membership grade line.
	grade := "has been admitted as an " + in.MembershipType.DisplayLabel() + " of the Association"
	doc.SetTextColor(60, 60, 60)
	doc.SetFont("Helvetica", "", 14)
	doc.Text(centerX-doc.GetStringWidth(grade)/2, 114, grade)

	// Membership number.
	idLine := "Membership No: " + in.MembershipID
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(centerX-doc.GetStringWidth(idLine)/2, 126, idLine)

	// Validity window, wrapped to the text column.
	doc.SetFont("Helvetica", "", 12)
	validFor := "Valid for the period " + in.MembershipDuration
	lines := wrapText(validFor, certTextMaxW, doc.GetStringWidth)
	y := 138.0
	for _, line := range lines {
		doc.Text(centerX-doc.GetStringWidth(line)/2, y, line)
		y += certLineH
	}

	g.drawSignatures(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawBorders renders the double frame and its corner decorations.
func (g *CertificateGenerator) drawBorders(doc *fpdf.Fpdf) {
	doc.SetDrawColor(25, 52, 95)

	doc.SetLineWidth(1.2)
	doc.Rect(certOuterInset, certOuterInset, certPageW-2*certOuterInset, certPageH-2*certOuterInset, "D")

	doc.SetLineWidth(0.4)
	doc.Rect(certInnerInset, certInnerInset, certPageW-2*certInnerInset, certPageH-2*certInnerInset, "D")

	// Corner decorations: short arms bridging the two frames at each corner.
	doc.SetLineWidth(0.8)
	corners := [][2]float64{
		{certInnerInset, certInnerInset},
		{certPageW - certInnerInset, certInnerInset},
		{certInnerInset, certPageH - certInnerInset},
		{certPageW - certInnerInset, certPageH - certInnerInset},
	}
	for _, c := range corners {
		dx := certCornerArm
		if c[0] > certPageW/2 {
			dx = -certCornerArm
		}
		dy := certCornerArm
		if c[1] > certPageH/2 {
			dy = -certCornerArm
		}
		doc.Line(c[0], c[1], c[0]+dx, c[1])
		doc.Line(c[0], c[1], c[0], c[1]+dy)
	}
}

// drawHeader renders the logo (or its text fallback) and the organization
// name band.
func (g *CertificateGenerator) drawHeader(doc *fpdf.Fpdf) {
	centerX := certPageW / 2
	logo, err := loadLogo(g.logoPath)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("certificate logo unavailable, using text fallback", "path", g.logoPath, "error", err)
		}
		doc.SetTextColor(25, 52, 95)
		doc.SetFont("Helvetica", "B", 28)
		doc.Text(centerX-doc.GetStringWidth("AIM")/2, 34, "AIM")
	} else {
		logo.place(doc, "cert-logo", centerX-11, 20, 22)
	}

	doc.SetTextColor(25, 52, 95)
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(centerX-doc.GetStringWidth(OrganizationName)/2, 56, OrganizationName)
}

// drawSignatures renders the President and Secretary General signature
// blocks: fixed-width rule lines with centered captions underneath.
func (g *CertificateGenerator) drawSignatures(doc *fpdf.Fpdf) {
	doc.SetDrawColor(60, 60, 60)
	doc.SetTextColor(60, 60, 60)
	doc.SetLineWidth(0.3)
	doc.SetFont("Helvetica", "", 11)

	blocks := []struct {
		centerX float64
		caption string
	}{
		{70, "President"},
		{certPageW - 70, "Secretary General"},
	}
	for _, b := range blocks {
		doc.Line(b.centerX-certSignLineW/2, certSignBaseline, b.centerX+certSignLineW/2, certSignBaseline)
		doc.Text(b.centerX-doc.GetStringWidth(b.caption)/2, certSignBaseline+6, b.caption)
	}
}
