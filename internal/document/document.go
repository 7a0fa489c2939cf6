// Package document exposes the small set of tree queries the extractors need.
//
// Extractors depend on the Node interface rather than on goquery directly so the
// row-level parsing can be exercised against any tree that answers the same queries.
// The goquery-backed implementation is the only one the binary uses.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is an element (or document root) that can be queried with CSS selectors.
type Node interface {
	// Find returns the first descendant matching selector, or nil.
	Find(selector string) Node
	// FindAll returns every descendant matching selector in document order.
	FindAll(selector string) []Node
	// Text returns the combined text of the node and its descendants, trimmed.
	Text() string
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}

// Document is a parsed HTML page.
type Document struct {
	sel *goquery.Selection
}

// Parse reads HTML from r and builds a Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{sel: goquery.NewDocumentFromNode(root).Selection}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Find implements Node.
func (d *Document) Find(selector string) Node {
	return selection{d.sel}.Find(selector)
}

// FindAll implements Node.
func (d *Document) FindAll(selector string) []Node {
	return selection{d.sel}.FindAll(selector)
}

// Text implements Node.
func (d *Document) Text() string {
	return selection{d.sel}.Text()
}

// Attr implements Node. A document root has no attributes.
func (d *Document) Attr(string) (string, bool) {
	return "", false
}

// selection adapts a single-element goquery selection to Node.
type selection struct {
	s *goquery.Selection
}

func (n selection) Find(selector string) Node {
	found := n.s.Find(selector).First()
	if found.Length() == 0 {
		return nil
	}
	return selection{found}
}

func (n selection) FindAll(selector string) []Node {
	found := n.s.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, selection{s})
	})
	return nodes
}

func (n selection) Text() string {
	return strings.TrimSpace(n.s.Text())
}

func (n selection) Attr(name string) (string, bool) {
	return n.s.Attr(name)
}
