package schematree

import (
	"github.com/beevik/etree"

	"github.com/IATI/iati.core/errors"
)

// Includer loads a referenced schema document by location.
type Includer interface {
	LoadTree(location string) (*etree.Document, error)
}

// Flatten rewrites and resolves the inclusion directive at the root of doc,
// then hoists the contents of nested schema wrappers to the top level.
//
// On return the tree contains no inclusion directives and no nested schema
// wrappers. A schema with no inclusion directive is left untouched, which
// also makes Flatten idempotent: running it on an already-flattened tree is
// a no-op.
func Flatten(doc *etree.Document, includer Includer, resolve PathResolver) error {
	rewritten, err := RewriteInclude(doc, resolve)
	if err != nil {
		return err
	}
	if !rewritten {
		return nil
	}

	if err := resolveIncludes(doc, includer); err != nil {
		return err
	}

	root := doc.Root()
	hoistNestedSchemas(root)
	stripElements(root, XMLSchemaNamespace, "schema")

	return nil
}

// resolveIncludes substitutes each XInclude reference at the root of doc
// with the root element of the document it refers to, in place.
func resolveIncludes(doc *etree.Document, includer Includer) error {
	root := doc.Root()
	for _, el := range directChildren(root, XIncludeNamespace, "include") {
		href := el.SelectAttrValue("href", "")
		if includer == nil {
			return errors.NewSchema(errors.ErrMalformedInclusion, "nil includer", href)
		}

		included, err := includer.LoadTree(href)
		if err != nil {
			return errors.NewSchema(errors.ErrSchemaLoad, "failed to load included schema", href).WithCause(err)
		}
		includedRoot := included.Root()
		if includedRoot == nil {
			return errors.NewSchema(errors.ErrXMLParse, "included schema has no root element", href)
		}
		if len(findAll(includedRoot, XMLSchemaNamespace, "include")) > 0 {
			return errors.NewSchema(errors.ErrMalformedInclusion,
				"included schema contains a nested inclusion directive", href)
		}

		at := el.Index()
		root.RemoveChild(el)
		included.RemoveChild(includedRoot)
		root.InsertChildAt(at, includedRoot)
	}
	return nil
}

// hoistNestedSchemas moves the children of each nested schema wrapper to the
// position immediately after the wrapper, preserving their relative order.
// Children carrying a schemaLocation attribute are skipped so an import
// already present at the top level is not duplicated. The emptied wrappers
// are left in place for the caller to strip.
func hoistNestedSchemas(root *etree.Element) {
	for _, wrapper := range directChildren(root, XMLSchemaNamespace, "schema") {
		at := wrapper.Index() + 1
		for _, child := range wrapper.ChildElements() {
			if child.SelectAttr("schemaLocation") != nil {
				continue
			}
			wrapper.RemoveChild(child)
			root.InsertChildAt(at, child)
			at++
		}
	}
}
