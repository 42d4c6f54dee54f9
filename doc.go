// Package attestation generates French derogatory-travel certificates.
//
// # Quick Start
//
// Load the layout and template, create a renderer, and run a batch:
//
//	loader := assets.NewEmbeddedLoader()
//	layout, err := attestation.LoadLayout(loader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tpl, err := loader.Template()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	renderer := attestation.NewRenderer(layout, tpl, logger)
//	batch := attestation.NewBatch(renderer, logger,
//	    attestation.WithOutputDir("out"),
//	    attestation.WithMailer(mailer),
//	)
//
//	profiles, err := attestation.LoadProfiles("profiles.json")
//	reasons, err := attestation.ParseReasons("travail-achats")
//	results := batch.Run(ctx, profiles, reasons, "", "")
//
// Each profile produces one PDF named
// certificate-<lastname>-<time>-<reasons>.pdf. A failing profile is reported
// in its Result and does not stop the rest of the batch.
//
// # Generation Pipeline
//
// For each profile the renderer:
//
//  1. Imports the first page of the official certificate template
//  2. Sets document metadata (title, subject, author, keywords)
//  3. Overlays identity fields and reason checkmarks at calibrated coordinates
//  4. Encodes the verification payload as a QR code
//  5. Draws the QR small on page one and full-size on an appended second page
//
// Field and checkmark coordinates live in a versioned YAML layout document
// (see internal/assets), expressed in the template's bottom-up PDF user
// space, so a template revision only needs new layout data, not a rebuild.
//
// # Delivery
//
// Profiles carrying an email address have their certificate sent as a PDF
// attachment through the configured SMTP transport after the file is written.
// Delivery failures are logged and never undo the written file.
package attestation
