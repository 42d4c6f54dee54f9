package attestation

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// QR raster parameters. Module width 8px at a one-module quiet zone scans
// reliably at both printed sizes (92pt corner mark and 300pt full page).
const (
	qrModuleWidth = 8
	qrBorderWidth = 8
)

// encodeQR encodes text as a PNG QR image with medium error correction, the
// level the certificate verification apps are calibrated for.
func encodeQR(text string) ([]byte, error) {
	qrc, err := qrcode.NewWith(text,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQREncode, err)
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopWriteCloser{&buf},
		standard.WithQRWidth(qrModuleWidth),
		standard.WithBorderWidth(qrBorderWidth),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQREncode, err)
	}
	return buf.Bytes(), nil
}

// nopWriteCloser adapts an in-memory buffer to the writer's WriteCloser
// requirement. Close flushes nothing; the buffer owns the bytes.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
