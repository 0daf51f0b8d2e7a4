// Package markdown renders markdown files to HTML for the preview endpoint,
// with GFM extensions and chroma syntax highlighting.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Document is a rendered markdown file.
type Document struct {
	HTML    string    `json:"html"`
	Outline []Heading `json:"outline"`
	Title   string    `json:"title"`
}

// Renderer converts markdown source to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM and highlighting enabled.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Render converts source to a Document. The title is the first heading, if
// any.
func (r *Renderer) Render(source []byte) (*Document, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, err
	}

	outline := r.outline(source)
	title := ""
	if len(outline) > 0 {
		title = outline[0].Title
	}

	return &Document{
		HTML:    buf.String(),
		Outline: outline,
		Title:   title,
	}, nil
}

// outline walks the parsed AST collecting headings.
func (r *Renderer) outline(source []byte) []Heading {
	doc := r.md.Parser().Parse(text.NewReader(source))

	var headings []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			title := headingText(h, source)
			headings = append(headings, Heading{
				Level:  h.Level,
				Title:  title,
				Anchor: anchorFor(title),
			})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil
	}
	return headings
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

var (
	anchorStrip    = regexp.MustCompile(`[^a-z0-9\-]`)
	anchorCollapse = regexp.MustCompile(`-+`)
)

// anchorFor derives a URL-safe anchor from a heading title.
func anchorFor(title string) string {
	anchor := strings.ToLower(title)
	anchor = strings.ReplaceAll(anchor, " ", "-")
	anchor = anchorStrip.ReplaceAllString(anchor, "")
	anchor = anchorCollapse.ReplaceAllString(anchor, "-")
	return strings.Trim(anchor, "-")
}
