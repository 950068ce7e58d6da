// Package eml extracts headers and body text from RFC 822 email messages.
package eml

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/extractors/html"
	"github.com/custodia-labs/studydeck/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles .eml messages. The result is a Text source.
type Extractor struct{}

// New creates a new email extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindText
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".eml"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"message/rfc822"}
}

// Extract returns the From, To, Date and Subject headers followed by the
// body. Plain text parts are preferred over HTML parts.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}

	var content strings.Builder
	for _, h := range []string{"From", "To", "Date", "Subject"} {
		if v := decodeHeader(msg.Header.Get(h)); v != "" {
			fmt.Fprintf(&content, "%s: %s\n", h, v)
		}
	}

	body, err := extractBody(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return nil, err
	}
	if body != "" {
		content.WriteString("\n")
		content.WriteString(body)
	}

	return &driven.ExtractResult{Text: strings.TrimSpace(content.String())}, nil
}

func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

// extractBody decodes a single-part or multipart body.
func extractBody(contentType, encoding string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return extractMultipart(r, params["boundary"])
	}

	body, err := io.ReadAll(decodeTransfer(encoding, r))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	switch mediaType {
	case "text/html":
		return html.StripTags(plaintext.Decode(body)), nil
	case "text/plain":
		return strings.TrimSpace(plaintext.Decode(body)), nil
	default:
		return "", nil
	}
}

// extractMultipart collects text/plain parts, falling back to text/html.
// Attachments and other media are skipped.
func extractMultipart(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", nil
	}

	mr := multipart.NewReader(r, boundary)
	var textParts, htmlParts []string

	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}

		mediaType, params, parseErr := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if parseErr != nil {
			mediaType = "text/plain"
		}
		if isAttachment(part) {
			part.Close()
			continue
		}

		// NextPart already decodes quoted-printable; base64 is left to us.
		encoding := part.Header.Get("Content-Transfer-Encoding")
		var text string
		switch {
		case strings.HasPrefix(mediaType, "multipart/"):
			text, _ = extractMultipart(part, params["boundary"])
			if text != "" {
				textParts = append(textParts, text)
			}
		case mediaType == "text/plain":
			text, _ = extractBody(mediaType, encoding, part)
			if text != "" {
				textParts = append(textParts, text)
			}
		case mediaType == "text/html":
			text, _ = extractBody(mediaType, encoding, part)
			if text != "" {
				htmlParts = append(htmlParts, text)
			}
		}
		part.Close()
	}

	if len(textParts) > 0 {
		return strings.Join(textParts, "\n"), nil
	}
	return strings.Join(htmlParts, "\n"), nil
}

func isAttachment(part *multipart.Part) bool {
	disposition, _, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	return err == nil && strings.EqualFold(disposition, "attachment")
}

func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}
