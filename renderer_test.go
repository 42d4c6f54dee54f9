package attestation

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/covidcert/go-attestation/internal/assets"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	layout := loadEmbeddedLayout(t)
	template, err := assets.NewEmbeddedLoader().Template()
	if err != nil {
		t.Fatalf("loading embedded template: %v", err)
	}
	at := fixedTime(t)
	return NewRenderer(layout, template, zap.NewNop(),
		WithClock(func() time.Time { return at }))
}

func departingProfile() Profile {
	p := validProfile()
	p.DepartureDate = "01/04/2020"
	p.DepartureTime = "12h00"
	return p
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	out, err := r.Render(context.Background(), departingProfile(), Reasons{ReasonTravail, ReasonAchats})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Errorf("output has no PDF trailer")
	}
	// The QR raster is embedded twice; even compressed the document is far
	// larger than the blank template.
	if len(out) < 2000 {
		t.Errorf("output suspiciously small: %d bytes", len(out))
	}
}

func TestRenderer_Render_UnknownReason(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	_, err := r.Render(context.Background(), departingProfile(), Reasons{Reason("teletravail")})
	if !errors.Is(err, ErrUnknownReason) {
		t.Fatalf("Render() error = %v, want ErrUnknownReason", err)
	}
}

func TestRenderer_Render_BrokenTemplate(t *testing.T) {
	t.Parallel()

	layout := loadEmbeddedLayout(t)
	r := NewRenderer(layout, []byte("not a pdf"), zap.NewNop())

	_, err := r.Render(context.Background(), departingProfile(), Reasons{ReasonTravail})
	if !errors.Is(err, ErrTemplateImport) {
		t.Fatalf("Render() error = %v, want ErrTemplateImport", err)
	}
}

func TestRenderer_Render_Canceled(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, departingProfile(), Reasons{ReasonTravail}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() error = %v, want context.Canceled", err)
	}
}
