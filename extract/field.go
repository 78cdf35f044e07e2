// Package extract turns parsed HTML into structured records: an item
// selector picks the repeating elements, a field mapping names what to pull
// out of each one.
package extract

import (
	"fmt"
	"strings"

	"scraper-go/dom"
	"scraper-go/selector"
)

// Record maps field names to extracted values. A nil value is the absence
// marker — the field selector matched nothing, or the attribute was missing
// — and is distinct from a pointer to the empty string.
type Record map[string]*string

// FieldSpec is one compiled field mapping entry. An empty Attr means text
// extraction; otherwise the named attribute of the first match is taken.
type FieldSpec struct {
	Selector *selector.Selector
	Attr     string
}

// SplitAttrSuffix splits the "<selector>@<attr>" convention at the
// rightmost '@' that sits outside attribute brackets, so a predicate like
// [data-x="a@b"] is never mistaken for a suffix. The attr result is ""
// when the spec has no suffix.
func SplitAttrSuffix(spec string) (sel, attr string, err error) {
	at := -1
	depth := 0
	var quote byte
	for i := 0; i < len(spec); i++ {
		ch := spec[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			if depth > 0 {
				depth--
			}
		case ch == '@' && depth == 0:
			at = i
		}
	}
	if at < 0 {
		return spec, "", nil
	}
	sel, attr = spec[:at], spec[at+1:]
	if attr == "" {
		return "", "", fmt.Errorf("empty attribute name in field spec %q", spec)
	}
	return sel, attr, nil
}

// extractField resolves one field within the subtree rooted at item. Only
// the first match in document order is used; zero matches yield nil, never
// an error. Text values are trimmed of leading and trailing whitespace,
// attribute values are returned exactly as stored.
func extractField(item dom.Node, fs FieldSpec) *string {
	n, ok := fs.Selector.MatchFirst(item)
	if !ok {
		return nil
	}
	if fs.Attr != "" {
		v, present := n.Attr(fs.Attr)
		if !present {
			return nil
		}
		return &v
	}
	t := strings.TrimSpace(n.Text())
	return &t
}
