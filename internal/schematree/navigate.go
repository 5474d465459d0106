package schematree

import "github.com/beevik/etree"

// FindElementByName returns the first element definition in document order,
// anywhere in the tree, whose name attribute equals name. Returns nil when
// no definition matches; absence is not an error.
func FindElementByName(doc *etree.Document, name string) *etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	return findElementByName(root, name)
}

func findElementByName(parent *etree.Element, name string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if hasQName(child, XMLSchemaNamespace, "element") && child.SelectAttrValue("name", "") == name {
			return child
		}
		if found := findElementByName(child, name); found != nil {
			return found
		}
	}
	return nil
}

// ChildElements returns the element definitions that form parent's content
// model, in order. A definition made by reference is replaced with the
// referenced top-level element definition; a definition made inline is
// included as-is. References that resolve to nothing are omitted, so the
// result never contains reference stubs.
func ChildElements(doc *etree.Document, parent *etree.Element) []*etree.Element {
	out := []*etree.Element{}
	for _, el := range contentModelElements(parent) {
		if ref := el.SelectAttrValue("ref", ""); ref != "" {
			if resolved := FindElementByName(doc, ref); resolved != nil {
				out = append(out, resolved)
			}
			continue
		}
		if el.SelectAttr("name") != nil {
			out = append(out, el)
		}
	}
	return out
}

// contentModelElements returns the xsd:complexType/xsd:sequence/xsd:element
// definitions directly under parent.
func contentModelElements(parent *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, complexType := range directChildren(parent, XMLSchemaNamespace, "complexType") {
		for _, sequence := range directChildren(complexType, XMLSchemaNamespace, "sequence") {
			out = append(out, directChildren(sequence, XMLSchemaNamespace, "element")...)
		}
	}
	return out
}

// AttributeElements returns the attribute definitions nested directly within
// parent's type definition, in order. Empty when parent defines none.
func AttributeElements(parent *etree.Element) []*etree.Element {
	out := []*etree.Element{}
	for _, complexType := range directChildren(parent, XMLSchemaNamespace, "complexType") {
		out = append(out, directChildren(complexType, XMLSchemaNamespace, "attribute")...)
	}
	return out
}

// ElementName returns the value of the definition's name attribute, with
// explicit absence when the attribute is unset.
func ElementName(el *etree.Element) (string, bool) {
	attr := el.SelectAttr("name")
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}
