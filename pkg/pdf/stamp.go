package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// Placement constants (PDF points, measured from the page edges). The
// signature block anchors near the bottom-left, the seal near the
// bottom-right.
const (
	pageMargin = 50.0

	signatureImageScale = 0.08
	signatureBoxWidth   = 180.0
	signatureBoxHeight  = 60.0

	sealImageScale   = 0.25
	sealRotationDeg  = -45.0
	sealImageOpacity = 0.8
	sealBoxWidth     = 150.0
	sealBoxHeight    = 80.0
)

// Stamp describes the attestation content overlaid onto the first page.
type Stamp struct {
	SignerName string
	NotaryID   int
	SignedAt   time.Time
}

// Stamper applies a visual signature block and notary seal to existing PDF
// documents. Both image assets are optional; a missing asset switches that
// block to a drawn placeholder.
type Stamper struct {
	signatureImage string
	sealImage      string
}

// NewStamper probes assetsDir for the optional signature and seal images.
func NewStamper(assetsDir string) *Stamper {
	st := &Stamper{}
	if path, ok := OptionalAsset(assetsDir, SignatureAssetName); ok {
		st.signatureImage = path
	}
	if path, ok := OptionalAsset(assetsDir, SealAssetName); ok {
		st.sealImage = path
	}
	return st
}

// HasSignatureImage reports whether the signature image asset was found.
func (st *Stamper) HasSignatureImage() bool { return st.signatureImage != "" }

// HasSealImage reports whether the seal image asset was found.
func (st *Stamper) HasSealImage() bool { return st.sealImage != "" }

// Apply loads the document at sourcePath, overlays the stamp onto the
// first page and returns the re-serialized bytes. The source file is never
// modified. Unparseable or empty input yields ErrInvalidDocument.
func (st *Stamper) Apply(sourcePath string, stamp Stamp) ([]byte, error) {
	pages, err := PageCount(sourcePath)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidDocument)
	}
	return st.render(sourcePath, pages, stamp)
}

func (st *Stamper) render(sourcePath string, pages int, stamp Stamp) (out []byte, err error) {
	// The page importer panics on content it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrInvalidDocument, r)
		}
	}()

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	importer := gofpdi.NewImporter()
	for page := 1; page <= pages; page++ {
		tpl := importer.ImportPage(doc, sourcePath, page, "/MediaBox")
		sizes := importer.GetPageSizes()
		box := sizes[page]["/MediaBox"]
		pageW, pageH := box["w"], box["h"]

		orientation := "P"
		if pageW > pageH {
			orientation = "L"
		}
		doc.AddPageFormat(orientation, gofpdf.SizeType{Wd: pageW, Ht: pageH})
		importer.UseImportedTemplate(doc, tpl, 0, 0, pageW, pageH)

		if page == 1 {
			st.drawSignatureBlock(doc, pageH, stamp)
			st.drawSealBlock(doc, pageW, pageH, stamp)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize stamped document: %w", err)
	}
	return buf.Bytes(), nil
}

// drawSignatureBlock renders the signer name, date and notary id near the
// bottom-left corner, with the signature image above them when available.
func (st *Stamper) drawSignatureBlock(doc *gofpdf.Fpdf, pageH float64, stamp Stamp) {
	x := pageMargin + 30
	baseY := pageMargin

	signatureText := fmt.Sprintf("Digitally signed by: %s", stamp.SignerName)
	dateText := fmt.Sprintf("Date: %s", stamp.SignedAt.Format("1/2/2006"))
	notaryText := fmt.Sprintf("Notary ID: %d", stamp.NotaryID)

	doc.SetTextColor(0, 0, 0)

	if st.signatureImage != "" {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		info := doc.RegisterImageOptions(st.signatureImage, opts)
		imgW := info.Width() * signatureImageScale
		imgH := info.Height() * signatureImageScale

		doc.SetAlpha(0.9, "Normal")
		doc.ImageOptions(st.signatureImage, x, pageH-(baseY+40)-imgH, imgW, imgH, false, opts, 0, "")
		doc.SetAlpha(1, "Normal")

		doc.SetFont("Helvetica", "", 10)
		doc.Text(x, pageH-(baseY+25), signatureText)
		doc.SetFont("Helvetica", "", 8)
		doc.Text(x, pageH-(baseY+10), dateText)
		doc.Text(x, pageH-(baseY-5), notaryText)
		return
	}

	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(1)
	doc.Rect(x, pageH-(baseY+signatureBoxHeight), signatureBoxWidth, signatureBoxHeight, "D")

	doc.SetFont("Helvetica", "", 10)
	doc.Text(x+10, pageH-(baseY+40), signatureText)
	doc.SetFont("Helvetica", "", 8)
	doc.Text(x+10, pageH-(baseY+25), dateText)
	doc.Text(x+10, pageH-(baseY+10), notaryText)
}

// drawSealBlock renders the rotated seal image near the bottom-right
// corner, or a bordered "NOTARY STAMP" placeholder when the asset is
// missing.
func (st *Stamper) drawSealBlock(doc *gofpdf.Fpdf, pageW, pageH float64, stamp Stamp) {
	x := pageW - 200
	baseY := pageMargin

	if st.sealImage != "" {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		info := doc.RegisterImageOptions(st.sealImage, opts)
		imgW := info.Width() * sealImageScale
		imgH := info.Height() * sealImageScale
		top := pageH - (baseY + 50) - imgH

		doc.SetAlpha(sealImageOpacity, "Normal")
		doc.TransformBegin()
		doc.TransformRotate(sealRotationDeg, x, top+imgH)
		doc.ImageOptions(st.sealImage, x, top, imgW, imgH, false, opts, 0, "")
		doc.TransformEnd()
		doc.SetAlpha(1, "Normal")
		return
	}

	doc.SetDrawColor(204, 51, 51)
	doc.SetTextColor(204, 51, 51)
	doc.SetLineWidth(2)
	doc.Rect(x, pageH-(baseY+sealBoxHeight), sealBoxWidth, sealBoxHeight, "D")

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(x+10, pageH-(baseY+50), "NOTARY STAMP")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(x+10, pageH-(baseY+30), "State Certified")
	doc.SetFont("Helvetica", "", 8)
	doc.Text(x+10, pageH-(baseY+15), fmt.Sprintf("License: %d", stamp.NotaryID))

	doc.SetTextColor(0, 0, 0)
}
