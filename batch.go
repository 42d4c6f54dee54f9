package attestation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/covidcert/go-attestation/internal/dateutil"
)

// DocumentRenderer renders one certificate. *Renderer implements it; tests
// substitute fakes.
type DocumentRenderer interface {
	Render(ctx context.Context, p Profile, reasons Reasons) ([]byte, error)
}

// Result reports the outcome for one profile. A run returns one Result per
// input profile, in input order.
type Result struct {
	Profile Profile
	Path    string // written file, empty when the profile failed
	Sent    bool   // certificate emailed successfully
	Err     error  // render or write failure; delivery failures are logged only
}

// defaultProfileTimeout bounds one profile's render, write, and delivery so
// a hung encoder or transport cannot stall the rest of the batch.
const defaultProfileTimeout = 30 * time.Second

// Batch processes profiles sequentially under shared reason and departure
// parameters. Sequential processing keeps each failure attributable in the
// log; batches are operator-sized, not throughput-bound.
type Batch struct {
	renderer  DocumentRenderer
	mailer    Mailer
	outputDir string
	timeout   time.Duration
	now       func() time.Time
	write     func(path string, data []byte) error
	log       *zap.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithMailer enables delivery for profiles carrying an email address.
func WithMailer(m Mailer) BatchOption {
	return func(b *Batch) { b.mailer = m }
}

// WithOutputDir sets where certificates are written. Defaults to the current
// working directory.
func WithOutputDir(dir string) BatchOption {
	return func(b *Batch) {
		if dir != "" {
			b.outputDir = dir
		}
	}
}

// WithProfileTimeout overrides the per-profile processing deadline.
func WithProfileTimeout(d time.Duration) BatchOption {
	return func(b *Batch) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithBatchClock sets the source of the run-wide default departure date and
// time. Tests inject a fixed clock.
func WithBatchClock(now func() time.Time) BatchOption {
	return func(b *Batch) { b.now = now }
}

// NewBatch creates a batch orchestrator around a renderer.
func NewBatch(r DocumentRenderer, log *zap.Logger, opts ...BatchOption) *Batch {
	b := &Batch{
		renderer:  r,
		outputDir: ".",
		timeout:   defaultProfileTimeout,
		now:       time.Now,
		write: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
		log: log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run renders every profile in input order. dateOverride (dd/mm/yyyy) and
// timeOverride (HHhMM) replace the run-wide defaults computed once from the
// clock; all profiles in a run share the same departure date and time. One
// failing profile never stops the others.
func (b *Batch) Run(ctx context.Context, profiles []Profile, reasons Reasons, dateOverride, timeOverride string) []Result {
	now := b.now()
	departDate := dateOverride
	if departDate == "" {
		departDate = dateutil.FormatDate(now)
	}
	departTime := timeOverride
	if departTime == "" {
		departTime = dateutil.FormatTime(now)
	}

	results := make([]Result, 0, len(profiles))
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Profile: p, Err: err})
			continue
		}
		results = append(results, b.processOne(ctx, p, reasons, departDate, departTime))
	}
	return results
}

func (b *Batch) processOne(ctx context.Context, p Profile, reasons Reasons, departDate, departTime string) Result {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	// The only mutation a profile ever sees: the batch assigns the shared
	// departure fields exactly once before rendering.
	p.DepartureDate = departDate
	p.DepartureTime = departTime

	res := Result{Profile: p}

	data, err := b.renderer.Render(ctx, p, reasons)
	if err != nil {
		b.log.Error("certificate render failed",
			zap.String("lastname", p.Lastname),
			zap.Error(err))
		res.Err = err
		return res
	}

	name := Filename(p.Lastname, departTime, reasons)
	path := filepath.Join(b.outputDir, name)
	if err := b.write(path, data); err != nil {
		b.log.Error("certificate write failed",
			zap.String("path", path),
			zap.Error(err))
		res.Err = err
		return res
	}
	res.Path = path
	b.log.Info("certificate ready", zap.String("path", path))

	if p.Email == "" || b.mailer == nil {
		return res
	}

	if err := b.mailer.Send(ctx, p.Email, Attachment{
		Name:        name,
		ContentType: "application/pdf",
		Data:        data,
	}); err != nil {
		// The written file stays; delivery is best-effort and not retried.
		b.log.Error("certificate delivery failed",
			zap.String("to", p.Email),
			zap.String("path", path),
			zap.Error(err))
		return res
	}
	res.Sent = true
	return res
}

// Filename derives the output file name for one certificate. Within one run
// every name shares the departure time token; profiles differing in lastname
// get distinct names.
func Filename(lastname, departTime string, reasons Reasons) string {
	return fmt.Sprintf("certificate-%s-%s-%s.pdf", lastname, departTime, reasons)
}
