package schematree

import (
	"github.com/beevik/etree"

	"github.com/IATI/iati.core/errors"
)

const (
	// SchemaFileExtension is the file extension of schema documents.
	SchemaFileExtension = ".xsd"
	// XMLBaseSchemaName names the shared base-definitions schema (xml.xsd)
	// that every IATI schema imports.
	XMLBaseSchemaName = "xml"
)

// PathResolver maps a schema name, without its file extension, to the
// canonical location the name resolves to.
type PathResolver func(name string) string

// RewriteInclude converts the bare inclusion directive at the root of doc
// into an XInclude reference that the flattener can resolve.
//
// The rewritten tree declares the XInclude namespace on its root, carries an
// xi:include element immediately after the sibling import directive, has the
// import's schemaLocation redirected to the base-definitions schema, and
// contains no xsd:include elements anywhere.
//
// Returns false with the tree unmodified when the root has no inclusion
// directive. More than one inclusion at the root, an inclusion without a
// usable schemaLocation, or an inclusion without a sibling import directive
// is a malformed-inclusion error.
func RewriteInclude(doc *etree.Document, resolve PathResolver) (bool, error) {
	root := doc.Root()
	if root == nil {
		return false, errors.NewSchema(errors.ErrXMLParse, "schema document has no root element", "")
	}

	includes := directChildren(root, XMLSchemaNamespace, "include")
	if len(includes) == 0 {
		return false, nil
	}
	if len(includes) > 1 {
		return false, errors.NewSchemaf(errors.ErrMalformedInclusion, "",
			"schema root has %d inclusion directives, want at most 1", len(includes))
	}
	if resolve == nil {
		return false, errors.NewSchema(errors.ErrMalformedInclusion, "nil path resolver", "")
	}

	include := includes[0]
	location := include.SelectAttrValue("schemaLocation", "")
	if len(location) <= len(SchemaFileExtension) {
		return false, errors.NewSchemaf(errors.ErrMalformedInclusion, "",
			"inclusion directive has unusable schemaLocation %q", location)
	}
	name := location[:len(location)-len(SchemaFileExtension)]

	importEl := firstDirectChild(root, XMLSchemaNamespace, "import")
	if importEl == nil {
		return false, errors.NewSchema(errors.ErrMalformedInclusion,
			"inclusion directive has no sibling import directive", location)
	}

	// Merge the XInclude declaration into the root's namespace declarations
	// without disturbing the existing ones.
	root.CreateAttr("xmlns:xi", XIncludeNamespace)

	xinclude := etree.NewElement("xi:include")
	xinclude.CreateAttr("href", resolve(name))
	xinclude.CreateAttr("parse", "xml")

	importEl.CreateAttr("schemaLocation", resolve(XMLBaseSchemaName))
	root.InsertChildAt(importEl.Index()+1, xinclude)

	stripElements(root, XMLSchemaNamespace, "include")

	return true, nil
}

func firstDirectChild(parent *etree.Element, ns, local string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if hasQName(child, ns, local) {
			return child
		}
	}
	return nil
}
