package attestation

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"go.uber.org/zap"
)

// Attachment is a rendered certificate attached to a delivery message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Mailer delivers a rendered certificate to one recipient. Implementations
// report failure to the caller; delivery never affects the already-written
// file and is not retried.
type Mailer interface {
	Send(ctx context.Context, to string, attachment Attachment) error
}

// SMTPMailer sends certificates through a plain SMTP transport.
type SMTPMailer struct {
	cfg EmailConfig
	log *zap.Logger
}

// NewSMTPMailer creates a mailer from the email config block.
func NewSMTPMailer(cfg EmailConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// Send emails the attachment. The context is checked before dialing; the
// SMTP exchange itself is bounded by the server, not the context.
func (m *SMTPMailer) Send(ctx context.Context, to string, attachment Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(m.cfg, to, attachment)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMailSend, err)
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMailSend, err)
	}

	m.log.Info("certificate emailed",
		zap.String("to", to),
		zap.String("attachment", attachment.Name))
	return nil
}

// buildMessage assembles a multipart MIME message with a text body and the
// certificate as a base64 attachment.
func buildMessage(cfg EmailConfig, to string, attachment Attachment) ([]byte, error) {
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", cfg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mp.Boundary())

	body, err := mp.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := body.Write([]byte(cfg.Body)); err != nil {
		return nil, err
	}

	part, err := mp.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {attachment.ContentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", attachment.Name)},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64(part, attachment.Data); err != nil {
		return nil, err
	}

	if err := mp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64 encodes data in RFC 2045 lines of 76 characters.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	const lineLen = 76
	for len(encoded) > 0 {
		n := lineLen
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := io.WriteString(w, encoded[:n]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
