package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Kind tags the node union.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindComment
	KindDoctype
)

// Node is a non-owning handle into a Document's tree. The zero value is
// invalid; results that may be empty carry an ok bool instead.
type Node struct {
	n *html.Node
}

// Kind reports which variant of the node union this handle points at.
func (n Node) Kind() Kind {
	switch n.n.Type {
	case html.ElementNode:
		return KindElement
	case html.TextNode:
		return KindText
	case html.CommentNode:
		return KindComment
	case html.DoctypeNode:
		return KindDoctype
	default:
		return KindDocument
	}
}

// Tag returns the lower-cased tag name for element nodes, "" otherwise.
func (n Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Attr looks up an attribute by case-insensitive name. The bool reports
// presence, so an attribute stored as the empty string is distinguishable
// from a missing one.
func (n Node) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text concatenates every descendant text node in document order. Character
// references are already decoded by the parser; whitespace is kept verbatim.
func (n Node) Text() string {
	var sb strings.Builder
	n.Walk(func(c Node) {
		if c.n.Type == html.TextNode {
			sb.WriteString(c.n.Data)
		}
	})
	return sb.String()
}

// Parent returns the parent handle, ok=false at the tree root.
func (n Node) Parent() (Node, bool) {
	if n.n.Parent == nil {
		return Node{}, false
	}
	return Node{n: n.n.Parent}, true
}

// FirstChild returns the first child handle, ok=false for leaves.
func (n Node) FirstChild() (Node, bool) {
	if n.n.FirstChild == nil {
		return Node{}, false
	}
	return Node{n: n.n.FirstChild}, true
}

// NextSibling returns the following sibling handle, ok=false at the end.
func (n Node) NextSibling() (Node, bool) {
	if n.n.NextSibling == nil {
		return Node{}, false
	}
	return Node{n: n.n.NextSibling}, true
}

// Children collects the direct children in source order.
func (n Node) Children() []Node {
	var kids []Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, Node{n: c})
	}
	return kids
}

// Walk visits n and every descendant in document order (pre-order).
func (n Node) Walk(visit func(Node)) {
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		visit(Node{n: h})
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
}

// WalkElements visits n (if it is an element) and every descendant element
// in document order.
func (n Node) WalkElements(visit func(Node)) {
	n.Walk(func(c Node) {
		if c.n.Type == html.ElementNode {
			visit(c)
		}
	})
}
