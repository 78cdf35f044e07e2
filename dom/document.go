// Package dom parses HTML into an immutable document tree and exposes
// lightweight node handles over it.
package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document owns one parsed HTML tree. It is immutable after Parse and safe
// for concurrent reads. Node handles keep the tree reachable, so a handle
// never outlives its Document.
type Document struct {
	root *html.Node
}

// Parse builds a Document from markup. Malformed input never fails: the
// HTML5 recovery rules close unclosed tags, drop stray closers and decode
// character references, so the only error path is a reader failure, which
// cannot happen for an in-memory string.
func Parse(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseBytes decodes raw bytes (BOM / meta charset aware) and parses the
// result. Input already in UTF-8 passes through untouched.
func ParseBytes(b []byte) (*Document, error) {
	r, err := charset.NewReader(bytes.NewReader(b), "")
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Root returns a handle on the document node itself (the parent of <html>).
func (d *Document) Root() Node {
	return Node{n: d.root}
}
