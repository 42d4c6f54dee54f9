package attestation

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
)

func TestEncodeQR(t *testing.T) {
	t.Parallel()

	p := validProfile()
	p.DepartureDate = "01/04/2020"
	p.DepartureTime = "12h00"
	payload := BuildPayload(p, Reasons{ReasonTravail, ReasonAchats}, fixedTime(t))

	data, err := encodeQR(payload)
	if err != nil {
		t.Fatalf("encodeQR() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != bounds.Dy() {
		t.Errorf("QR image not square: %dx%d", bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() == 0 {
		t.Error("QR image is empty")
	}
}

func TestEncodeQR_EmptyText(t *testing.T) {
	t.Parallel()

	if _, err := encodeQR(""); !errors.Is(err, ErrQREncode) {
		t.Errorf("encodeQR(\"\") error = %v, want ErrQREncode", err)
	}
}
