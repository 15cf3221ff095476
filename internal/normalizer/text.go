// Package normalizer turns raw vacancy descriptions into canonical text and
// assembles processed vacancy records.
package normalizer

import (
	stdhtml "html"
	"strings"

	"golang.org/x/net/html"

	"vacradar/pkg/textutil"
)

// TextNormalizer strips markup and whitespace noise from raw descriptions.
type TextNormalizer struct{}

// NewTextNormalizer creates a new text normalizer instance.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize produces a lowercase string with markup removed and whitespace
// collapsed. Malformed markup is dropped rather than reported: the result is
// always best-effort, never an error.
func (n *TextNormalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := stripMarkup(raw)
	text = stdhtml.UnescapeString(text)
	text = dropAngleBrackets(text)
	text = strings.ToLower(text)

	return textutil.CollapseWhitespace(text)
}

// stripMarkup extracts the text content of an HTML fragment. The tokenizer is
// tolerant of broken markup, so any unparseable fragment simply contributes
// nothing to the output.
func stripMarkup(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// html.Parse only fails on reader errors, but keep the raw text
		// rather than losing the record.
		return s
	}

	var b strings.Builder

	collectText(doc, &b)

	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')

		return
	}

	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// dropAngleBrackets removes stray markup delimiters that survive parsing,
// e.g. a bare "<" inside running text.
func dropAngleBrackets(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return ' '
		}

		return r
	}, s)
}
