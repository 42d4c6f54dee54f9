// Package pdftpl imports pages from an existing PDF into a gofpdf document.
//
// It wraps the gofpdi importer behind an explicit per-document value: each
// render owns its importer, so no package-level importer state is shared
// between certificates.
package pdftpl

import (
	"io"

	"github.com/phpdave11/gofpdi"
)

// MediaBox selects the full page box of the source document.
const MediaBox = "/MediaBox"

// Document is the subset of gofpdf's import surface needed to transfer the
// imported template objects into a destination document. *gofpdf.Fpdf
// satisfies it.
type Document interface {
	ImportObjects(objs map[string][]byte)
	ImportObjPos(dups map[string]map[int]string)
	ImportTemplates(tpls map[string]string)
	UseImportedTemplate(tplName string, scaleX, scaleY, tX, tY float64)
}

// Importer imports template pages into one destination document.
type Importer struct {
	fpdi *gofpdi.Importer
}

// NewImporter returns an importer with fresh state. Create one per render.
func NewImporter() *Importer {
	return &Importer{fpdi: gofpdi.NewImporter()}
}

// ImportPage reads page pageno from rs, registers it in doc, and returns the
// template id for UseTemplate. box is usually MediaBox.
func (imp *Importer) ImportPage(doc Document, rs io.ReadSeeker, pageno int, box string) int {
	imp.fpdi.SetSourceStream(&rs)
	tpl := imp.fpdi.ImportPage(pageno, box)

	doc.ImportTemplates(imp.fpdi.PutFormXobjectsUnordered())
	doc.ImportObjects(imp.fpdi.GetImportedObjectsUnordered())
	doc.ImportObjPos(imp.fpdi.GetImportedObjHashPos())

	return tpl
}

// UseTemplate draws an imported template into doc at x, y scaled to w by h
// points.
func (imp *Importer) UseTemplate(doc Document, tplid int, x, y, w, h float64) {
	tplName, scaleX, scaleY, tX, tY := imp.fpdi.UseTemplate(tplid, x, y, w, h)
	doc.UseImportedTemplate(tplName, scaleX, scaleY, tX, tY)
}

// PageSize returns the width and height in points of the given source page's
// box, as declared by the source document. Valid after ImportPage.
func (imp *Importer) PageSize(pageno int, box string) (w, h float64) {
	size := imp.fpdi.GetPageSizes()[pageno][box]
	return size["w"], size["h"]
}
