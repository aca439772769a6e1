package xsdnorm

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// SchemaNamespace is the XML Schema namespace URI. Only elements in this
// namespace are name-significant to the rewrite rules; everything else is
// passed through structurally.
const SchemaNamespace = "http://www.w3.org/2001/XMLSchema"

// Rule rewrites a single element in place. Rules never fail on a
// well-formed tree and do not recurse; recursion is the pipeline's job.
type Rule func(*etree.Element)

// DefaultRules returns the node-level rule list, in application order.
// The whole-tree tag sort ([SortByTag]) runs as a separate pass after
// this list has been applied to every node — see Normalize.
func DefaultRules() []Rule {
	return []Rule{RemoveAnnotations, StripText, SortByNameAttr, SortAttributes}
}

// RemoveAnnotations removes every direct xsd:annotation child of el.
// Nested annotations are left alone; the recursive walk reaches them.
func RemoveAnnotations(el *etree.Element) {
	for _, child := range el.ChildElements() {
		if isSchemaElement(child, "annotation") {
			el.RemoveChild(child)
		}
	}
}

// StripText trims leading and trailing whitespace from el's text (the
// character data preceding the first child). Empty text stays empty.
func StripText(el *etree.Element) {
	if text := el.Text(); text != "" {
		el.SetText(strings.TrimSpace(text))
	}
}

// sortableTags are the xsd compositor elements whose children carry
// semantic sibling grouping and are ordered by their name attribute.
var sortableTags = map[string]bool{
	"all":      true,
	"choice":   true,
	"sequence": true,
}

// SortByNameAttr stable-sorts the children of xsd all/choice/sequence
// elements by their name attribute, treating a missing attribute as the
// empty string (so unnamed children sort first). No-op for other tags.
func SortByNameAttr(el *etree.Element) {
	if !sortableTags[el.Tag] || el.NamespaceURI() != SchemaNamespace {
		return
	}
	children := el.ChildElements()
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].SelectAttrValue("name", "") < children[j].SelectAttrValue("name", "")
	})
	replaceChildren(el, children)
}

// SortAttributes reorders el's attributes into ascending lexicographic
// order of qualified name, which is the order they serialize in.
func SortAttributes(el *etree.Element) {
	if len(el.Attr) > 0 {
		el.SortAttrs()
	}
}

// SortByTag stable-sorts el's child elements by qualified tag name.
// Applied recursively as the final structural pass, after the per-node
// rules, so it is the dominant sibling ordering in the output.
func SortByTag(el *etree.Element) {
	children := el.ChildElements()
	sort.SliceStable(children, func(i, j int) bool {
		return qualifiedTag(children[i]) < qualifiedTag(children[j])
	})
	replaceChildren(el, children)
}

// isSchemaElement reports whether el is the named element in the XML
// Schema namespace.
func isSchemaElement(el *etree.Element, local string) bool {
	return el.Tag == local && el.NamespaceURI() == SchemaNamespace
}

// qualifiedTag returns el's tag in Clark notation ({uri}local) when the
// element is namespaced, or the bare local name otherwise. Used as the
// sort key so ordering is independent of prefix spelling.
func qualifiedTag(el *etree.Element) string {
	if uri := el.NamespaceURI(); uri != "" {
		return "{" + uri + "}" + el.Tag
	}
	return el.Tag
}

// replaceChildren rebuilds el's child list as its trimmed leading text
// followed by elems. Whitespace between children is dropped here and
// reconstructed by the indentation pass at serialization time.
func replaceChildren(el *etree.Element, elems []*etree.Element) {
	text := strings.TrimSpace(el.Text())
	for len(el.Child) > 0 {
		el.RemoveChildAt(0)
	}
	if text != "" {
		el.SetText(text)
	}
	for _, child := range elems {
		el.AddChild(child)
	}
}
