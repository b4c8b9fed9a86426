package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in post bodies is dropped: goldmark's renderer is not put in
// unsafe mode.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Render converts a post body to HTML that is safe to embed in a page.
func Render(text string) (template.HTML, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// MustRender is Render for templates: on failure the escaped source text is
// shown instead.
func MustRender(text string) template.HTML {
	out, err := Render(text)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return out
}
