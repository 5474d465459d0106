// Package schematree flattens IATI schema documents in place and provides
// read-only navigation over the flattened tree.
//
// A schema arrives as a markup tree whose root may carry a single bare
// inclusion directive (xsd:include). Flattening rewrites the directive into
// an XInclude reference, substitutes the referenced document, hoists the
// contents of any nested schema wrappers to the top level, and strips the
// now-empty markers. The resulting tree contains every element definition of
// the schema as if it had been written in one file.
package schematree

import "github.com/beevik/etree"

const (
	// XMLSchemaNamespace is the W3C XML Schema definition namespace.
	XMLSchemaNamespace = "http://www.w3.org/2001/XMLSchema"
	// XIncludeNamespace is the W3C XInclude namespace.
	XIncludeNamespace = "http://www.w3.org/2001/XInclude"
)

// NSMap maps the short prefixes used throughout the engine to the namespace
// URIs they denote.
var NSMap = map[string]string{
	"xsd": XMLSchemaNamespace,
	"xi":  XIncludeNamespace,
}

// hasQName reports whether el's qualified name is exactly {ns}local.
func hasQName(el *etree.Element, ns, local string) bool {
	return el.Tag == local && el.NamespaceURI() == ns
}

// directChildren returns the direct child elements of parent named {ns}local,
// in document order.
func directChildren(parent *etree.Element, ns, local string) []*etree.Element {
	var out []*etree.Element
	for _, child := range parent.ChildElements() {
		if hasQName(child, ns, local) {
			out = append(out, child)
		}
	}
	return out
}

// findAll returns every descendant of parent named {ns}local, in document
// order.
func findAll(parent *etree.Element, ns, local string) []*etree.Element {
	var out []*etree.Element
	for _, child := range parent.ChildElements() {
		if hasQName(child, ns, local) {
			out = append(out, child)
		}
		out = append(out, findAll(child, ns, local)...)
	}
	return out
}

// stripElements removes every descendant of parent named {ns}local. The
// parent itself is never removed.
func stripElements(parent *etree.Element, ns, local string) {
	for _, child := range parent.ChildElements() {
		if hasQName(child, ns, local) {
			parent.RemoveChild(child)
			continue
		}
		stripElements(child, ns, local)
	}
}
