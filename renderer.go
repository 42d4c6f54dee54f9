package attestation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/covidcert/go-attestation/internal/pdftpl"
)

// Fixed document metadata carried on every certificate. These are
// presentation details of the official document, not business logic.
const (
	docSubject  = "Attestation de déplacement dérogatoire"
	docAuthor   = "Ministère de l'intérieur"
	docProducer = "DNUM/SDIT"

	docKeywords = "covid19 covid-19 attestation déclaration déplacement officielle gouvernement"

	titleTimeLayout = "2006-01-02_15-04"
)

// qrImageName registers the verification raster inside the document.
const qrImageName = "verification-qr"

// Renderer produces one finished certificate per profile by overlaying the
// profile's data and the verification QR code onto the template. A Renderer
// is read-only after construction and safe to reuse across a batch.
type Renderer struct {
	layout   *Layout
	template []byte
	now      func() time.Time
	log      *zap.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithClock sets the generation timestamp source. Tests inject a fixed clock
// to make payloads and metadata deterministic.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer creates a Renderer for one template and its layout.
func NewRenderer(layout *Layout, template []byte, log *zap.Logger, opts ...RendererOption) *Renderer {
	r := &Renderer{
		layout:   layout,
		template: template,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the finished certificate for one profile. The profile must
// already carry its departure date and time. Any failure is scoped to this
// profile; the caller decides whether to continue with others.
func (r *Renderer) Render(ctx context.Context, p Profile, reasons Reasons) ([]byte, error) {
	now := r.now()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: r.layout.Page.Width, Ht: r.layout.Page.Height},
	})
	setMetadata(pdf, now)

	imp := pdftpl.NewImporter()
	tpl, pageW, pageH, err := importTemplatePage(imp, pdf, r.template)
	if err != nil {
		return nil, err
	}

	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})
	imp.UseTemplate(pdf, tpl, 0, 0, pageW, pageH)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.layout.placeFields(pdf, pageH, p, reasons, r.log); err != nil {
		return nil, err
	}

	png, err := encodeQR(BuildPayload(p, reasons, now))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))

	// Small corner mark on the certificate page.
	box := r.layout.QR.Page1
	x, y := box.topLeft(pageW, pageH)
	pdf.ImageOptions(qrImageName, x, y, box.Size, box.Size, false, opts, 0, "")

	// Full-size duplicate on its own page.
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})
	box = r.layout.QR.Page2
	x, y = box.topLeft(pageW, pageH)
	pdf.ImageOptions(qrImageName, x, y, box.Size, box.Size, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// importTemplatePage imports the template's first page and reports its size.
// The importer panics on malformed sources; recover so a broken template
// fails this render instead of the whole batch.
func importTemplatePage(imp *pdftpl.Importer, pdf *gofpdf.Fpdf, template []byte) (tpl int, w, h float64, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrTemplateImport, rec)
		}
	}()

	tpl = imp.ImportPage(pdf, bytes.NewReader(template), 1, pdftpl.MediaBox)
	w, h = imp.PageSize(1, pdftpl.MediaBox)
	if w <= 0 || h <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: source page has no size", ErrTemplateImport)
	}
	return tpl, w, h, nil
}

func setMetadata(pdf *gofpdf.Fpdf, now time.Time) {
	pdf.SetTitle("attestation-"+now.Format(titleTimeLayout), true)
	pdf.SetSubject(docSubject, true)
	pdf.SetAuthor(docAuthor, true)
	pdf.SetCreator("", true)
	pdf.SetProducer(docProducer, true)
	pdf.SetKeywords(docKeywords, true)
	pdf.SetCreationDate(now)
}
