package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBFormat extracts text by walking the spine in reading order and
// stripping the XHTML markup from each content document.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "epub" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Extract(ctx context.Context, path string) (*Document, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		if isEncryptedErr(err) {
			return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
		}
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	var out strings.Builder
	for _, ref := range book.Spine.Itemrefs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		out.WriteString(htmlToText(string(data)))
		out.WriteString("\n\n")
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoText, path)
	}
	return &Document{Text: text, Format: f.Name()}, nil
}

// blockElements end a line in the text rendering, so headings and
// paragraphs keep the line structure TOC detection relies on.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"title": true, "blockquote": true, "section": true,
}

// htmlToText strips markup, keeping text nodes and block boundaries.
func htmlToText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			out.WriteString("\n")
		}
	}
	walk(doc)
	return out.String()
}
