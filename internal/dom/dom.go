// Package dom holds small helpers around golang.org/x/net/html trees: CSS
// queries, attribute and class manipulation, and inner HTML access.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// IsElement reports whether n is an element with the given tag name.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// Query returns the first element under root (root included) matching
// selector, or nil. An invalid selector matches nothing.
func Query(root *html.Node, selector string) *html.Node {
	if root == nil {
		return nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return sel.MatchFirst(root)
}

// QueryAll returns every element under root matching selector in document order.
func QueryAll(root *html.Node, selector string) []*html.Node {
	if root == nil {
		return nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return sel.MatchAll(root)
}

// Attr returns the value of attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces attribute key.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr drops attribute key if present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// DataKey converts a dataset name such as "backgroundColor" into its
// attribute form "data-background-color".
func DataKey(name string) string {
	var b strings.Builder
	b.WriteString("data-")
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Data reads a data-* attribute by its dataset name.
func Data(n *html.Node, name string) (string, bool) {
	return Attr(n, DataKey(name))
}

// SetData writes a data-* attribute by its dataset name.
func SetData(n *html.Node, name, val string) {
	SetAttr(n, DataKey(name), val)
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, have := range Classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds class c unless it is already present.
func AddClass(n *html.Node, c string) {
	if HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.Join(append(Classes(n), c), " "))
}

// RemoveClass drops class c. The class attribute is removed once empty.
func RemoveClass(n *html.Node, c string) {
	if !HasClass(n, c) {
		return
	}
	var keep []string
	for _, have := range Classes(n) {
		if have != c {
			keep = append(keep, have)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// ToggleClass flips class c and reports whether it is now present.
func ToggleClass(n *html.Node, c string) bool {
	if HasClass(n, c) {
		RemoveClass(n, c)
		return false
	}
	AddClass(n, c)
	return true
}

// Style returns the value of an inline style property.
func Style(n *html.Node, prop string) string {
	for _, decl := range styleDecls(n) {
		if decl[0] == prop {
			return decl[1]
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it, the
// same way assigning "" to element.style does in a browser.
func SetStyle(n *html.Node, prop, val string) {
	decls := styleDecls(n)
	out := decls[:0]
	found := false
	for _, decl := range decls {
		if decl[0] == prop {
			found = true
			if val == "" {
				continue
			}
			decl[1] = val
		}
		out = append(out, decl)
	}
	if !found && val != "" {
		out = append(out, [2]string{prop, val})
	}
	if len(out) == 0 {
		RemoveAttr(n, "style")
		return
	}
	parts := make([]string, len(out))
	for i, decl := range out {
		parts[i] = decl[0] + ": " + decl[1]
	}
	SetAttr(n, "style", strings.Join(parts, "; ")+";")
}

func styleDecls(n *html.Node) [][2]string {
	raw, _ := Attr(n, "style")
	var decls [][2]string
	for _, part := range strings.Split(raw, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		decls = append(decls, [2]string{prop, val})
	}
	return decls
}

// TextContent concatenates all descendant text, trimmed.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// SetText replaces all children of n with a single text node.
func SetText(n *html.Node, s string) {
	RemoveChildren(n)
	if s != "" {
		n.AppendChild(Text(s))
	}
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// SetInnerHTML parses s in the context of n and replaces its children.
func SetInnerHTML(n *html.Node, s string) error {
	nodes, err := ParseFragment(s, n)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// AppendHTML parses s in the context of n and appends the result after the
// existing children.
func AppendHTML(n *html.Node, s string) error {
	nodes, err := ParseFragment(s, n)
	if err != nil {
		return err
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// ParseFragment parses s as the content of context. A nil context parses
// as body content.
func ParseFragment(s string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = Element("body")
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// Render serializes n and its descendants.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// Element creates a detached element. attrs are key/value pairs.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Prepend inserts child as the first child of parent.
func Prepend(parent, child *html.Node) {
	if parent.FirstChild == nil {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, parent.FirstChild)
}

// Clone returns a detached deep copy of n.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// CopyChildren replaces the children of dst with deep copies of the
// children of src.
func CopyChildren(dst, src *html.Node) {
	var copies []*html.Node
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		copies = append(copies, Clone(c))
	}
	RemoveChildren(dst)
	for _, c := range copies {
		dst.AppendChild(c)
	}
}
