package dom

import (
	"sort"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// String serializes the subtree rooted at n to HTML. Attributes and styles
// are written in sorted key order so output is deterministic; listeners and
// properties have no textual form and are omitted.
func (n *Node) String() string {
	var buf strings.Builder
	n.writeHTML(&buf)
	return buf.String()
}

func (n *Node) writeHTML(buf *strings.Builder) {
	if n.Kind == KindText {
		buf.WriteString(escapeHTML(n.Text))
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.Tag)

	if len(n.Attrs) > 0 {
		for _, key := range sortedKeys(n.Attrs) {
			buf.WriteByte(' ')
			buf.WriteString(key)
			buf.WriteString(`="`)
			buf.WriteString(escapeAttr(n.Attrs[key]))
			buf.WriteByte('"')
		}
	}
	if len(n.AttrsNS) > 0 {
		keys := make([]string, 0, len(n.AttrsNS))
		for key := range n.AttrsNS {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			buf.WriteByte(' ')
			buf.WriteString(key)
			buf.WriteString(`="`)
			buf.WriteString(escapeAttr(n.AttrsNS[key].Value))
			buf.WriteByte('"')
		}
	}
	if len(n.Styles) > 0 {
		buf.WriteString(` style="`)
		for i, key := range sortedKeys(n.Styles) {
			if i > 0 {
				buf.WriteString("; ")
			}
			buf.WriteString(key)
			buf.WriteString(": ")
			buf.WriteString(escapeAttr(n.Styles[key]))
		}
		buf.WriteByte('"')
	}

	if voidElements[n.Tag] {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')

	for _, child := range n.children {
		child.writeHTML(buf)
	}

	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities, it also escapes whitespace
// characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
