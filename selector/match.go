package selector

import (
	"strings"

	"scraper-go/dom"
)

// MatchAll evaluates the selector against scope, returning matching elements
// in document order with no duplicates. The scope element itself is a
// candidate; combinator walks never ascend above it, so a match is always
// fully contained in the scope subtree.
func (s *Selector) MatchAll(scope dom.Node) []dom.Node {
	var out []dom.Node
	scope.WalkElements(func(el dom.Node) {
		if s.matchUp(len(s.groups)-1, el, scope) {
			out = append(out, el)
		}
	})
	return out
}

// MatchFirst returns the first match in document order, ok=false when the
// selector matches nothing in scope.
func (s *Selector) MatchFirst(scope dom.Node) (dom.Node, bool) {
	all := s.MatchAll(scope)
	if len(all) == 0 {
		return dom.Node{}, false
	}
	return all[0], true
}

// matchUp reports whether groups[0..gi] are satisfiable with groups[gi]
// matching n and the remaining groups matching ancestors inside scope.
func (s *Selector) matchUp(gi int, n, scope dom.Node) bool {
	if !s.groups[gi].matches(n) {
		return false
	}
	if gi == 0 {
		return true
	}
	if n == scope {
		return false // nothing left above to satisfy groups[0..gi-1]
	}
	switch s.groups[gi].comb {
	case combChild:
		p, ok := n.Parent()
		if !ok {
			return false
		}
		return s.matchUp(gi-1, p, scope)
	default: // descendant
		for p, ok := n.Parent(); ok; p, ok = p.Parent() {
			if s.matchUp(gi-1, p, scope) {
				return true
			}
			if p == scope {
				break
			}
		}
		return false
	}
}

func (g *compound) matches(n dom.Node) bool {
	if n.Kind() != dom.KindElement {
		return false
	}
	if g.tag != "" && n.Tag() != g.tag {
		return false
	}
	if len(g.classes) > 0 {
		cls, _ := n.Attr("class")
		have := strings.Fields(cls)
		for _, want := range g.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, a := range g.attrs {
		v, ok := n.Attr(a.key)
		switch a.op {
		case opPresent:
			if !ok {
				return false
			}
		case opEquals:
			if !ok || v != a.val {
				return false
			}
		case opContains:
			if !ok || !strings.Contains(v, a.val) {
				return false
			}
		}
	}
	return true
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

// Select compiles sel and matches it against scope in one step. Callers
// issuing the same selector repeatedly should use a Cache instead.
func Select(scope dom.Node, sel string) ([]dom.Node, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return s.MatchAll(scope), nil
}

// SelectOne returns the first match for sel in scope, ok=false when nothing
// matches.
func SelectOne(scope dom.Node, sel string) (dom.Node, bool, error) {
	s, err := Compile(sel)
	if err != nil {
		return dom.Node{}, false, err
	}
	n, ok := s.MatchFirst(scope)
	return n, ok, nil
}
