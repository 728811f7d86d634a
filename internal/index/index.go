package index

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Entry is one page link in an llms.txt index file.
type Entry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Parse extracts the page links from an llms.txt markdown index. The file
// is a bulleted list of "[Title](url): description" entries grouped under
// headings; anything that is not an http(s) link is ignored.
func Parse(src []byte) ([]Entry, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var entries []Entry
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if !strings.HasPrefix(dest, "http://") && !strings.HasPrefix(dest, "https://") {
			return ast.WalkSkipChildren, nil
		}
		entries = append(entries, Entry{
			Title: linkText(link, src),
			URL:   dest,
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// linkText collects the plain text of a link's inline children.
func linkText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.WriteString(linkText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
