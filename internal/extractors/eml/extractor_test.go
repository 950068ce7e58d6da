package eml

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func extract(t *testing.T, message string) string {
	t.Helper()
	res, err := New().Extract(context.Background(), &domain.RawFile{Name: "m.eml", Content: crlf(message)})
	require.NoError(t, err)
	return res.Text
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()

	assert.Equal(t, domain.SourceKindText, e.Kind())
	assert.Equal(t, []string{".eml"}, e.Extensions())
	assert.Equal(t, []string{"message/rfc822"}, e.MIMETypes())
}

func TestExtract_PlainMessage(t *testing.T) {
	text := extract(t, `From: Prof Ada <ada@example.edu>
To: class@example.edu
Subject: =?UTF-8?Q?Reading_=E2=80=93_week_2?=
Content-Type: text/plain; charset=utf-8

Please read chapter 2.
`)

	assert.Equal(t, "From: Prof Ada <ada@example.edu>\nTo: class@example.edu\nSubject: Reading – week 2\n\nPlease read chapter 2.", text)
}

func TestExtract_MultipartPrefersPlainAndSkipsAttachments(t *testing.T) {
	text := extract(t, `Subject: Notes
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: multipart/alternative; boundary="inner"

--inner
Content-Type: text/plain

Plain body
--inner
Content-Type: text/html

<p>HTML body</p>
--inner--
--outer
Content-Type: text/plain
Content-Disposition: attachment; filename="secret.txt"

attached text
--outer--
`)

	assert.Contains(t, text, "Plain body")
	assert.NotContains(t, text, "HTML body")
	assert.NotContains(t, text, "attached text")
}

func TestExtract_HTMLOnly(t *testing.T) {
	text := extract(t, `Subject: Update
Content-Type: text/html

<div>Exam moved to <b>Friday</b></div>
`)

	assert.Equal(t, "Subject: Update\n\nExam moved to Friday", text)
}

func TestExtract_Base64Body(t *testing.T) {
	text := extract(t, `Subject: Encoded
Content-Type: text/plain
Content-Transfer-Encoding: base64

SGVsbG8g
c3R1ZGVudHM=
`)

	assert.Equal(t, "Subject: Encoded\n\nHello students", text)
}

func TestExtract_Errors(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New().Extract(context.Background(), &domain.RawFile{Name: "m.eml", Content: []byte("no headers here")})
	assert.Error(t, err)
}
