package attestation

import "errors"

// Sentinel errors for library operations.
var (
	// Reason selection errors.
	ErrNoReasons     = errors.New("at least one reason is required")
	ErrUnknownReason = errors.New("unknown reason code")

	// Profile input errors.
	ErrProfilesRead  = errors.New("failed to read profiles file")
	ErrProfilesParse = errors.New("failed to parse profiles file")
	ErrNoProfiles    = errors.New("profiles file contains no profiles")
	ErrMissingField  = errors.New("profile is missing a required field")

	// Rendering errors.
	ErrTemplateImport = errors.New("template import failed")
	ErrQREncode       = errors.New("QR code encoding failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Layout data errors.
	ErrLayoutParse   = errors.New("failed to parse layout data")
	ErrLayoutInvalid = errors.New("invalid layout data")

	// ErrCityOverflow reports that the city name does not fit the template
	// column even at the minimum font size. Rendering still proceeds at the
	// minimum size; callers should surface a warning.
	ErrCityOverflow = errors.New("city name wider than column at minimum font size")

	// Config errors.
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")

	// Delivery errors.
	ErrMailSend = errors.New("failed to send certificate by email")
)
