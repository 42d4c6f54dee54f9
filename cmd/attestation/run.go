package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	attestation "github.com/covidcert/go-attestation"
	"github.com/covidcert/go-attestation/internal/assets"
	"github.com/covidcert/go-attestation/internal/dateutil"
)

// Sentinel errors for CLI argument handling.
var (
	ErrBadFlags = errors.New("invalid flags")
	ErrBadArgs  = errors.New("expected exactly two arguments: <reasons> <profiles>")

	// ErrBatchFailed reports that at least one profile did not produce a
	// certificate. Successful profiles keep their written files.
	ErrBatchFailed = errors.New("some certificates failed")
)

func run(flags *cliFlags, args []string, env *Environment) error {
	if len(args) != 2 {
		return fmt.Errorf("%w (got %d)", ErrBadArgs, len(args))
	}
	reasonToken, profilesPath := args[0], args[1]

	if flags.date != "" {
		if err := dateutil.ValidateDate(flags.date); err != nil {
			return err
		}
	}
	if flags.time != "" {
		if err := dateutil.ValidateTime(flags.time); err != nil {
			return err
		}
	}

	reasons, err := attestation.ParseReasons(reasonToken)
	if err != nil {
		return err
	}

	cfg := attestation.DefaultConfig()
	if flags.config != "" {
		if cfg, err = attestation.LoadConfig(flags.config); err != nil {
			return err
		}
	}

	profiles, err := attestation.LoadProfiles(profilesPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	layoutPath := flags.layout
	if layoutPath == "" {
		layoutPath = cfg.Template.LayoutPath
	}
	templatePath := flags.template
	if templatePath == "" {
		templatePath = cfg.Template.Path
	}
	loader := assets.NewFilesystemLoader(layoutPath, templatePath)

	layout, err := attestation.LoadLayout(loader)
	if err != nil {
		return err
	}
	template, err := loader.Template()
	if err != nil {
		return err
	}

	renderer := attestation.NewRenderer(layout, template, logger,
		attestation.WithClock(env.Now))

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	batchOpts := []attestation.BatchOption{
		attestation.WithOutputDir(outputDir),
		attestation.WithBatchClock(env.Now),
		attestation.WithProfileTimeout(flags.timeout),
	}
	if cfg.Email.Enabled() {
		batchOpts = append(batchOpts,
			attestation.WithMailer(attestation.NewSMTPMailer(cfg.Email, logger)))
	}
	batch := attestation.NewBatch(renderer, logger, batchOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := batch.Run(ctx, profiles, reasons, flags.date, flags.time)

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(env.Stdout, "%d certificate(s) generated, %d failed\n",
		len(results)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d profiles", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// newLogger builds the operator-facing logger. Verbose mode switches to the
// human-readable development encoder with debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
