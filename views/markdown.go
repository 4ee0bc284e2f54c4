package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders CommonMark plus autolinks and strikethrough. Raw HTML in the
// source is omitted and dangerous link schemes are dropped.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown renders a description as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if content == "" {
			return nil
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			// Fall back to the escaped source rather than failing the page.
			_, err = io.WriteString(w, "<p>"+templ.EscapeString(content)+"</p>")
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}
