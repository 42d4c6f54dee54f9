package attestation

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/covidcert/go-attestation/internal/assets"
)

// layoutFont is the base-14 font the template overlay is calibrated with.
const layoutFont = "Helvetica"

// defaultCheckmarkGlyph marks a selected reason checkbox.
const defaultCheckmarkGlyph = "x"

// Point is a position in the template's PDF user space: origin at the
// bottom-left corner of the page, units in points.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PageSize is the template page size in points.
type PageSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FieldPositions places the fixed identity fields on the template.
type FieldPositions struct {
	Size          float64 `yaml:"size"` // font size shared by all fields except city
	FullName      Point   `yaml:"fullname"`
	Birthday      Point   `yaml:"birthday"`
	PlaceOfBirth  Point   `yaml:"placeofbirth"`
	Address       Point   `yaml:"address"`
	City          Point   `yaml:"city"`
	DepartureDate Point   `yaml:"departureDate"`
	DepartureTime Point   `yaml:"departureTime"`
}

// CheckmarkSpec describes the reason checkbox mark. Only the vertical
// position varies per reason; the column and glyph are shared.
type CheckmarkSpec struct {
	Glyph string  `yaml:"glyph"`
	X     float64 `yaml:"x"`
	Size  float64 `yaml:"size"`
}

// FitSpec bounds the dynamic font-size search for the city field.
type FitSpec struct {
	MaxWidth    float64 `yaml:"maxWidth"`
	MinSize     float64 `yaml:"minSize"`
	DefaultSize float64 `yaml:"defaultSize"`
}

// QRBox positions one QR image. FromRight measures X from the right page
// edge; FromTop measures Y down from the top edge to the image bottom.
// Otherwise X and Y locate the image's bottom-left corner in user space.
type QRBox struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Size      float64 `yaml:"size"`
	FromRight bool    `yaml:"fromRight"`
	FromTop   bool    `yaml:"fromTop"`
}

// topLeft resolves the box to gofpdf's top-down coordinate space.
func (b QRBox) topLeft(pageW, pageH float64) (x, y float64) {
	x = b.X
	if b.FromRight {
		x = pageW - b.X
	}
	if b.FromTop {
		y = b.Y - b.Size
	} else {
		y = pageH - b.Y - b.Size
	}
	return x, y
}

// QRPlacement positions the verification image on both pages.
type QRPlacement struct {
	Page1 QRBox `yaml:"page1"`
	Page2 QRBox `yaml:"page2"`
}

// Layout is the versioned coordinate contract between the renderer and a
// specific certificate template. Coordinates are hand-tuned against the
// template's printed labels, not derived.
type Layout struct {
	Page      PageSize           `yaml:"page"`
	Fields    FieldPositions     `yaml:"fields"`
	Checkmark CheckmarkSpec      `yaml:"checkmark"`
	CityFit   FitSpec            `yaml:"cityFit"`
	Reasons   map[Reason]float64 `yaml:"reasons"`
	QR        QRPlacement        `yaml:"qr"`
}

// ParseLayout decodes and validates a YAML layout document.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutParse, err)
	}
	if l.Checkmark.Glyph == "" {
		l.Checkmark.Glyph = defaultCheckmarkGlyph
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads the layout document through the given asset loader.
func LoadLayout(loader assets.Loader) (*Layout, error) {
	data, err := loader.Layout()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutParse, err)
	}
	return ParseLayout(data)
}

// Validate checks structural soundness of the layout data. Reason keys must
// come from the closed reason enumeration; an unknown key means the layout
// file does not match this build.
func (l *Layout) Validate() error {
	if l.Page.Width <= 0 || l.Page.Height <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrLayoutInvalid)
	}
	if l.Fields.Size <= 0 {
		return fmt.Errorf("%w: field font size must be positive", ErrLayoutInvalid)
	}
	if len(l.Reasons) == 0 {
		return fmt.Errorf("%w: reason position table is empty", ErrLayoutInvalid)
	}
	for code := range l.Reasons {
		if !code.Valid() {
			return fmt.Errorf("%w: unknown reason key %q in position table", ErrLayoutInvalid, code)
		}
	}
	fit := l.CityFit
	if fit.MaxWidth <= 0 || fit.MinSize <= 0 || fit.DefaultSize < fit.MinSize {
		return fmt.Errorf("%w: city fit bounds minSize=%g defaultSize=%g maxWidth=%g",
			ErrLayoutInvalid, fit.MinSize, fit.DefaultSize, fit.MaxWidth)
	}
	if l.QR.Page1.Size <= 0 || l.QR.Page2.Size <= 0 {
		return fmt.Errorf("%w: QR sizes must be positive", ErrLayoutInvalid)
	}
	return nil
}

// ReasonY looks up the checkbox position for a reason code. Unknown codes
// fail fast rather than drawing nothing.
func (l *Layout) ReasonY(code Reason) (float64, error) {
	y, ok := l.Reasons[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownReason, code)
	}
	return y, nil
}

// cityFontSize runs a bounded linear search from the default size down to
// the minimum, returning the first size at which the measured width fits the
// column. When even the minimum overflows it returns the minimum together
// with ErrCityOverflow, so callers can tell a fit from the best-effort floor.
func (l *Layout) cityFontSize(measure func(text string, size float64) float64, city string) (float64, error) {
	fit := l.CityFit
	for size := fit.DefaultSize; size >= fit.MinSize; size-- {
		if measure(city, size) <= fit.MaxWidth {
			return size, nil
		}
	}
	return fit.MinSize, fmt.Errorf("%w: %q", ErrCityOverflow, city)
}

// placeFields overlays the identity fields, the reason checkmarks, and the
// departure date and time onto the current page. pageH is the imported
// template's height, used to flip the layout's bottom-up coordinates into
// gofpdf's top-down space.
func (l *Layout) placeFields(pdf *gofpdf.Fpdf, pageH float64, p Profile, reasons Reasons, log *zap.Logger) error {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	draw := func(text string, at Point, size float64) {
		pdf.SetFont(layoutFont, "", size)
		pdf.Text(at.X, pageH-at.Y, tr(text))
	}

	f := l.Fields
	draw(p.FullName(), f.FullName, f.Size)
	draw(p.Birthday, f.Birthday, f.Size)
	draw(p.PlaceOfBirth, f.PlaceOfBirth, f.Size)
	draw(p.FullAddress(), f.Address, f.Size)

	for _, r := range reasons {
		y, err := l.ReasonY(r)
		if err != nil {
			return err
		}
		draw(l.Checkmark.Glyph, Point{X: l.Checkmark.X, Y: y}, l.Checkmark.Size)
	}

	citySize, err := l.cityFontSize(func(text string, size float64) float64 {
		pdf.SetFont(layoutFont, "", size)
		return pdf.GetStringWidth(tr(text))
	}, p.City)
	if err != nil {
		// Accepted degradation: draw at the floor size and warn the operator.
		log.Warn("city name may not fit its column; use abbreviations where possible (\"Saint\" -> \"St.\")",
			zap.String("city", p.City))
	}
	draw(p.City, f.City, citySize)

	draw(p.DepartureDate, f.DepartureDate, f.Size)
	draw(p.DepartureTime, f.DepartureTime, f.Size)
	return nil
}
