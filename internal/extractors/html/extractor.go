// Package html extracts readable text from HTML pages.
package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML documents. The result is a Text source.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindText
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Extract strips markup and returns the page title, if any, followed by the body text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := plaintext.Decode(raw.Content)
	body := StripTags(content)

	if title := Title(content); title != "" && !strings.HasPrefix(body, title) {
		body = strings.TrimSpace(title + "\n\n" + body)
	}
	return &driven.ExtractResult{Text: body}, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag          = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|td|th|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	breakTags         = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
)

// Title returns the decoded <title> text, or "".
func Title(content string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(matches[1]))
}

// StripTags removes markup and returns one trimmed line per block of text.
func StripTags(content string) string {
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, noscriptTag, headTag, svgTag, htmlComments} {
		content = re.ReplaceAllString(content, "")
	}

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = breakTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	result := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
