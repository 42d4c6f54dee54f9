package attestation

import (
	"errors"
	"testing"

	"github.com/covidcert/go-attestation/internal/assets"
)

// Notes:
// - embedded layout: the versioned coordinate data must cover all nine reasons
// - ReasonY: unknown codes fail fast instead of drawing nothing
// - cityFontSize: bounded search in [minSize, defaultSize] with explicit
//   overflow signal at the floor

func loadEmbeddedLayout(t *testing.T) *Layout {
	t.Helper()
	l, err := LoadLayout(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("loading embedded layout: %v", err)
	}
	return l
}

func TestLoadLayout_Embedded(t *testing.T) {
	t.Parallel()

	l := loadEmbeddedLayout(t)

	wantYs := map[Reason]float64{
		ReasonTravail:      553,
		ReasonAchats:       482,
		ReasonSante:        434,
		ReasonFamille:      410,
		ReasonHandicap:     373,
		ReasonSportAnimaux: 349,
		ReasonConvocation:  276,
		ReasonMissions:     252,
		ReasonEnfants:      228,
	}
	if len(l.Reasons) != len(wantYs) {
		t.Fatalf("reason table has %d entries, want %d", len(l.Reasons), len(wantYs))
	}
	for code, want := range wantYs {
		got, err := l.ReasonY(code)
		if err != nil {
			t.Errorf("ReasonY(%q) unexpected error: %v", code, err)
			continue
		}
		if got != want {
			t.Errorf("ReasonY(%q) = %g, want %g", code, got, want)
		}
	}

	if l.Page.Width <= 0 || l.Page.Height <= 0 {
		t.Errorf("page size not set: %+v", l.Page)
	}
	if l.CityFit.MinSize != 7 || l.CityFit.DefaultSize != 11 {
		t.Errorf("city fit bounds = %+v, want min 7 default 11", l.CityFit)
	}
}

func TestLayout_ReasonY_Unknown(t *testing.T) {
	t.Parallel()

	l := loadEmbeddedLayout(t)
	if _, err := l.ReasonY(Reason("teletravail")); !errors.Is(err, ErrUnknownReason) {
		t.Errorf("ReasonY(unknown) error = %v, want ErrUnknownReason", err)
	}
}

func TestParseLayout_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "not yaml",
			yaml:    "{{{",
			wantErr: ErrLayoutParse,
		},
		{
			name: "unknown reason key",
			yaml: `
page: {width: 595, height: 842}
fields: {size: 11}
checkmark: {x: 47, size: 12}
cityFit: {maxWidth: 83, minSize: 7, defaultSize: 11}
reasons: {teletravail: 100}
qr:
  page1: {x: 156, fromRight: true, y: 25, size: 92}
  page2: {x: 50, y: 390, fromTop: true, size: 300}
`,
			wantErr: ErrLayoutInvalid,
		},
		{
			name: "empty reason table",
			yaml: `
page: {width: 595, height: 842}
fields: {size: 11}
cityFit: {maxWidth: 83, minSize: 7, defaultSize: 11}
`,
			wantErr: ErrLayoutInvalid,
		},
		{
			name: "fit floor above default",
			yaml: `
page: {width: 595, height: 842}
fields: {size: 11}
cityFit: {maxWidth: 83, minSize: 12, defaultSize: 11}
reasons: {travail: 553}
qr:
  page1: {x: 156, y: 25, size: 92}
  page2: {x: 50, y: 390, size: 300}
`,
			wantErr: ErrLayoutInvalid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseLayout([]byte(tt.yaml)); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseLayout() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLayout_CityFontSize drives the fit search with a synthetic width
// function: width = 6 points per character scaled by size/default.
func TestLayout_CityFontSize(t *testing.T) {
	t.Parallel()

	l := loadEmbeddedLayout(t)
	measure := func(text string, size float64) float64 {
		return float64(len(text)) * 6 * size / l.CityFit.DefaultSize
	}

	tests := []struct {
		name     string
		city     string
		wantSize float64
		overflow bool
	}{
		{
			name:     "short city fits at default",
			city:     "Paris", // 30pt at size 11
			wantSize: 11,
		},
		{
			name: "long city shrinks",
			// 96pt at size 11, fits at the first size where 96*s/11 <= 83.
			city:     "Castelnaudary II",
			wantSize: 9,
		},
		{
			name: "very long city hits floor",
			// 216pt at size 11, still 137pt at size 7.
			city:     "Saint-Remy-en-Bouzemont-Saint-Genest",
			wantSize: 7,
			overflow: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			size, err := l.cityFontSize(measure, tt.city)
			if tt.overflow {
				if !errors.Is(err, ErrCityOverflow) {
					t.Fatalf("cityFontSize(%q) error = %v, want ErrCityOverflow", tt.city, err)
				}
			} else if err != nil {
				t.Fatalf("cityFontSize(%q) unexpected error: %v", tt.city, err)
			}
			if size != tt.wantSize {
				t.Errorf("cityFontSize(%q) = %g, want %g", tt.city, size, tt.wantSize)
			}
			if size < l.CityFit.MinSize || size > l.CityFit.DefaultSize {
				t.Errorf("cityFontSize(%q) = %g outside [%g, %g]",
					tt.city, size, l.CityFit.MinSize, l.CityFit.DefaultSize)
			}
		})
	}
}
