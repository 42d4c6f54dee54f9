package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	date     string
	time     string
	config   string
	output   string
	template string
	layout   string
	timeout  time.Duration
	verbose  bool
	help     bool
	version  bool
}

// parseFlags parses argv and returns the flags plus positional arguments
// (<reasons> <profiles>).
func parseFlags(argv []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("attestation", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {} // usage is printed by the caller

	fs.StringVar(&flags.date, "date", "", "departure date, format dd/mm/yyyy (default: today)")
	fs.StringVar(&flags.time, "time", "", "departure time, format HHhMM (default: now)")
	fs.StringVarP(&flags.config, "config", "c", "", "path to the YAML config file")
	fs.StringVarP(&flags.output, "output", "o", "", "output directory for certificates")
	fs.StringVar(&flags.template, "template", "", "path to the certificate template PDF")
	fs.StringVar(&flags.layout, "layout", "", "path to the layout YAML document")
	fs.DurationVar(&flags.timeout, "timeout", 0, "per-profile processing timeout (default 30s)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVarP(&flags.help, "help", "h", false, "show help")
	fs.BoolVar(&flags.version, "version", false, "show version")

	if err := fs.Parse(argv[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadFlags, err)
	}

	return flags, fs.Args(), nil
}
