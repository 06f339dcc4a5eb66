package renderer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var converter = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML converts a markdown report to an HTML fragment.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// HTMLDocument converts a markdown report to a standalone HTML page.
func HTMLDocument(title, markdown string) (string, error) {
	body, err := HTML(markdown)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
