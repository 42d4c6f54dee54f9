package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, args, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.help {
		printUsage(os.Stdout)
		os.Exit(ExitSuccess)
	}
	if flags.version {
		fmt.Fprintf(os.Stdout, "attestation %s\n", Version)
		os.Exit(ExitSuccess)
	}

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env
	// value, in which case the runtime defaults apply and we continue.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	env := DefaultEnv()
	if err := run(flags, args, env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
