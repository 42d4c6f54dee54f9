package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: attestation [flags] <reasons> <profiles>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one derogatory-travel certificate PDF per profile.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  reasons     Hyphen-joined reason codes, e.g. travail-achats")
	fmt.Fprintln(w, "  profiles    Path to a JSON file containing an array of profiles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --date <s>        Departure date, format dd/mm/yyyy (default: today)")
	fmt.Fprintln(w, "      --time <s>        Departure time, format HHhMM (default: now)")
	fmt.Fprintln(w, "  -c, --config <path>   YAML config file (SMTP delivery, defaults)")
	fmt.Fprintln(w, "  -o, --output <path>   Output directory (default: current directory)")
	fmt.Fprintln(w, "      --template <path> Certificate template PDF")
	fmt.Fprintln(w, "      --layout <path>   Layout YAML overriding the embedded coordinates")
	fmt.Fprintln(w, "      --timeout <d>     Per-profile processing timeout (default 30s)")
	fmt.Fprintln(w, "  -v, --verbose         Verbose logging")
	fmt.Fprintln(w, "  -h, --help            Show this help")
	fmt.Fprintln(w, "      --version         Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reason codes:")
	fmt.Fprintln(w, "  travail, achats, sante, famille, handicap, sport_animaux,")
	fmt.Fprintln(w, "  convocation, missions, enfants")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profiles with an email field are additionally sent their certificate")
	fmt.Fprintln(w, "as an attachment when the config enables an SMTP transport.")
}
