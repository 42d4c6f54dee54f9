package main

import (
	"errors"
	"os"

	attestation "github.com/covidcert/go-attestation"
	"github.com/covidcert/go-attestation/internal/dateutil"
)

// Exit codes for the attestation CLI.
// Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All certificates generated
	ExitGeneral = 1 // Unexpected error
	ExitUsage   = 2 // Invalid flags, reasons, overrides, config, or layout
	ExitIO      = 3 // Profiles file unreadable or malformed
	ExitRender  = 4 // One or more profiles failed to render
)

// exitCodeFor maps an error to the process exit code. Callers must wrap
// sentinel errors with fmt.Errorf("%w", err) for errors.Is to match.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrBatchFailed) {
		return ExitRender
	}

	if errors.Is(err, attestation.ErrProfilesRead) ||
		errors.Is(err, attestation.ErrProfilesParse) ||
		errors.Is(err, attestation.ErrNoProfiles) ||
		errors.Is(err, attestation.ErrMissingField) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, ErrBadFlags) ||
		errors.Is(err, ErrBadArgs) ||
		errors.Is(err, attestation.ErrNoReasons) ||
		errors.Is(err, attestation.ErrUnknownReason) ||
		errors.Is(err, attestation.ErrConfigNotFound) ||
		errors.Is(err, attestation.ErrConfigParse) ||
		errors.Is(err, attestation.ErrLayoutParse) ||
		errors.Is(err, attestation.ErrLayoutInvalid) ||
		errors.Is(err, dateutil.ErrInvalidDate) ||
		errors.Is(err, dateutil.ErrInvalidTime) {
		return ExitUsage
	}

	return ExitGeneral
}
