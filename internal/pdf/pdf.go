/**
 * @description
 * Shared plumbing for the document generators: logo loading with a non-fatal
 * fallback and deterministic document metadata so identical inputs produce
 * byte-identical PDFs.
 */
package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// OrganizationName is the issuer identity printed on every document.
const OrganizationName = "Association of Indian Manufacturers"

// logoAsset is a logo image read into memory, ready to be placed on a page.
type logoAsset struct {
	data      []byte
	imageType string
}

// loadLogo reads the logo file at path. A missing or unreadable file returns
// an error so callers can fall back to rendered text; it must never abort
// document generation.
func loadLogo(path string) (*logoAsset, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	imageType := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if imageType == "jpeg" {
		imageType = "jpg"
	}
	return &logoAsset{data: data, imageType: imageType}, nil
}

// place draws the logo at the given position. Registration reads from the
// in-memory copy, so the file is touched only once per generator.
func (l *logoAsset) place(doc *fpdf.Fpdf, name string, x, y, w float64) {
	opts := fpdf.ImageOptions{ImageType: l.imageType, ReadDpi: true}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(l.data))
	doc.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
}

// setDocumentDate pins the PDF creation and modification timestamps to the
// printed issue date so regenerating a document from the same inputs yields
// identical bytes. Both must be pinned: fpdf otherwise stamps /ModDate with
// wall-clock time. An unparseable date falls back to the epoch.
func setDocumentDate(doc *fpdf.Fpdf, issueDate string) {
	t, err := time.Parse("January 2, 2006", issueDate)
	if err != nil {
		t = time.Unix(0, 0).UTC()
	}
	doc.SetCreationDate(t.UTC())
	doc.SetModificationDate(t.UTC())
}
