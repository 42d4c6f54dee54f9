package attestation

import (
	"fmt"
	"strings"
)

// Reason is one of the fixed travel reason codes printed on the certificate.
type Reason string

// The nine reason codes recognized by the certificate template.
const (
	ReasonTravail      Reason = "travail"
	ReasonAchats       Reason = "achats"
	ReasonSante        Reason = "sante"
	ReasonFamille      Reason = "famille"
	ReasonHandicap     Reason = "handicap"
	ReasonSportAnimaux Reason = "sport_animaux"
	ReasonConvocation  Reason = "convocation"
	ReasonMissions     Reason = "missions"
	ReasonEnfants      Reason = "enfants"
)

// knownReasons is the closed set of valid reason codes.
var knownReasons = map[Reason]struct{}{
	ReasonTravail:      {},
	ReasonAchats:       {},
	ReasonSante:        {},
	ReasonFamille:      {},
	ReasonHandicap:     {},
	ReasonSportAnimaux: {},
	ReasonConvocation:  {},
	ReasonMissions:     {},
	ReasonEnfants:      {},
}

// Valid reports whether r is a known reason code.
func (r Reason) Valid() bool {
	_, ok := knownReasons[r]
	return ok
}

// Reasons is the ordered reason selection shared by a whole batch run.
type Reasons []Reason

// ParseReasons parses a hyphen-joined reason token such as "travail-achats".
// Order is preserved. An unknown code is a configuration error, not something
// to ignore silently.
func ParseReasons(token string) (Reasons, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoReasons
	}

	parts := strings.Split(token, "-")
	reasons := make(Reasons, 0, len(parts))
	for _, part := range parts {
		r := Reason(strings.TrimSpace(part))
		if r == "" {
			continue
		}
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReason, part)
		}
		reasons = append(reasons, r)
	}

	if len(reasons) == 0 {
		return nil, ErrNoReasons
	}
	return reasons, nil
}

// String returns the comma-joined display form used on the certificate and in
// output filenames, e.g. "travail, achats".
func (rs Reasons) String() string {
	codes := make([]string, len(rs))
	for i, r := range rs {
		codes[i] = string(r)
	}
	return strings.Join(codes, ", ")
}

// Profile holds one person's identity and movement data, read from the
// profiles JSON file. The two departure fields are not input: the batch
// assigns them exactly once before rendering.
type Profile struct {
	Lastname     string `json:"lastname"`
	Firstname    string `json:"firstname"`
	Birthday     string `json:"birthday"`
	PlaceOfBirth string `json:"placeofbirth"`
	Address      string `json:"address"`
	ZipCode      string `json:"zipcode"`
	City         string `json:"city"`
	Email        string `json:"email,omitempty"`

	// Assigned by the batch from the run-wide departure date and time.
	DepartureDate string `json:"-"`
	DepartureTime string `json:"-"`
}

// FullName returns the display name drawn on the certificate.
func (p Profile) FullName() string {
	return p.Firstname + " " + p.Lastname
}

// FullAddress returns the single-line address drawn on the certificate.
func (p Profile) FullAddress() string {
	return fmt.Sprintf("%s %s %s", p.Address, p.ZipCode, p.City)
}

// Validate checks that all required identity fields are present. Field values
// are not checked for correctness; the certificate prints them as given.
func (p Profile) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"lastname", p.Lastname},
		{"firstname", p.Firstname},
		{"birthday", p.Birthday},
		{"placeofbirth", p.PlaceOfBirth},
		{"address", p.Address},
		{"zipcode", p.ZipCode},
		{"city", p.City},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}
