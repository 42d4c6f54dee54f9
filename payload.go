package attestation

import (
	"strings"
	"time"

	"github.com/covidcert/go-attestation/internal/dateutil"
)

// payloadSeparator joins the payload fields. Scanners used by control
// authorities expect this exact joiner, so it is part of the wire format.
const payloadSeparator = ";\n "

// BuildPayload builds the canonical verification text embedded in the QR
// code. Field order is fixed; for identical inputs and generation time the
// output is byte-identical. Free-text fields are embedded as-is, without
// escaping: the payload is a plain-text summary, not a structured format.
func BuildPayload(p Profile, reasons Reasons, generated time.Time) string {
	fields := []string{
		"Cree le: " + dateutil.FormatDate(generated) + " a " + dateutil.FormatTime(generated),
		"Nom: " + p.Lastname,
		"Prenom: " + p.Firstname,
		"Naissance: " + p.Birthday + " a " + p.PlaceOfBirth,
		"Adresse: " + p.FullAddress(),
		"Sortie: " + p.DepartureDate + " a " + p.DepartureTime,
		"Motifs: " + reasons.String(),
	}
	return strings.Join(fields, payloadSeparator)
}
