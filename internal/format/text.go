// Package format extracts readable text from HTML email bodies.
package format

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Elements whose text content is never part of the readable body.
var skippedElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"head":   {},
	"title":  {},
}

// Elements that imply a line break around their content.
var blockElements = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "tr": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"table": {}, "ul": {}, "ol": {}, "blockquote": {},
}

// HTMLToText renders an HTML fragment as plain text, collapsing layout
// noise. Unparseable input is returned as-is.
func HTMLToText(raw []byte) string {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}

	var b strings.Builder
	walkText(doc, &b)

	return collapseBlankLines(b.String())
}

func walkText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		if _, skip := skippedElements[n.Data]; skip {
			return
		}
	}

	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			if b.Len() > 0 && !endsWithSpace(b) {
				b.WriteByte(' ')
			}
			b.WriteString(text)
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, b)
	}

	if n.Type == html.ElementNode {
		if _, block := blockElements[n.Data]; block {
			b.WriteByte('\n')
		}
	}
}

func endsWithSpace(b *strings.Builder) bool {
	s := b.String()
	return s[len(s)-1] == ' ' || s[len(s)-1] == '\n'
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
