// Package iati provides a flattened, queryable in-memory representation of
// IATI Standard schemas.
//
// A schema is loaded from a filesystem path, its file-inclusion directive is
// rewritten and resolved, and nested schema wrappers are merged into a single
// root. Callers then navigate the schema's structure without needing to know
// the original file layout or reference mechanics.
package iati

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/IATI/iati.core/errors"
	"github.com/IATI/iati.core/internal/loader"
	"github.com/IATI/iati.core/internal/schematree"
)

const (
	// RootElementNameActivity is the document root element declared by an
	// activity schema.
	RootElementNameActivity = "iati-activities"
	// RootElementNameOrganisation is the document root element declared by an
	// organisation schema.
	RootElementNameOrganisation = "iati-organisations"

	// ActivitySchemaName is the standard file name, without extension, of the
	// activity schema.
	ActivitySchemaName = "iati-activities-schema"
	// OrganisationSchemaName is the standard file name, without extension, of
	// the organisation schema.
	OrganisationSchemaName = "iati-organisations-schema"

	// SchemaFileExtension is the expected extension of a schema file.
	SchemaFileExtension = schematree.SchemaFileExtension
)

// Schema is a flattened IATI schema. It owns its markup tree exclusively;
// after construction the tree is read-only, so query methods are safe to
// call from multiple goroutines. The codelist set is the only mutable state
// and carries its own lock.
//
// The activity and organisation variants are the same type configured with a
// different root element name.
type Schema struct {
	rootElementName string
	doc             *etree.Document
	codelists       *CodelistSet
}

// LoadOptions configures schema loading.
type LoadOptions struct {
	logger *slog.Logger
}

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// WithLogger returns options that report construction failures to logger.
func (o LoadOptions) WithLogger(logger *slog.Logger) LoadOptions {
	o.logger = logger
	return o
}

func (o LoadOptions) resolvedLogger() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

// Load loads and flattens the schema at location within fsys. The schema's
// inclusion directive, if present, is resolved against location's directory.
func Load(fsys fs.FS, location, rootElementName string) (*Schema, error) {
	return LoadWithOptions(fsys, location, rootElementName, NewLoadOptions())
}

// LoadWithOptions loads and flattens a schema with explicit configuration.
// On any failure no schema object is returned: construction is atomic.
func LoadWithOptions(fsys fs.FS, location, rootElementName string, opts LoadOptions) (*Schema, error) {
	l := loader.NewLoader(loader.Config{FS: fsys})

	doc, err := l.LoadTree(location)
	if err != nil {
		opts.resolvedLogger().Error("failed to load schema tree", "path", location, "error", err)
		return nil, errors.NewSchema(errors.ErrSchemaLoad, "failed to load schema tree", location).WithCause(err)
	}

	dir := path.Dir(location)
	resolve := func(name string) string {
		return path.Join(dir, name+schematree.SchemaFileExtension)
	}
	if err := schematree.Flatten(doc, l, resolve); err != nil {
		opts.resolvedLogger().Error("failed to flatten schema", "path", location, "error", err)
		return nil, err
	}

	return &Schema{
		rootElementName: rootElementName,
		doc:             doc,
		codelists:       NewCodelistSet(),
	}, nil
}

// LoadFile loads and flattens a schema from a file path.
func LoadFile(schemaPath, rootElementName string) (*Schema, error) {
	dir := filepath.Dir(schemaPath)
	base := filepath.Base(schemaPath)

	return Load(os.DirFS(dir), base, rootElementName)
}

// LoadActivityFile loads and flattens an activity schema from a file path.
func LoadActivityFile(schemaPath string) (*Schema, error) {
	return LoadFile(schemaPath, RootElementNameActivity)
}

// LoadOrganisationFile loads and flattens an organisation schema from a file
// path.
func LoadOrganisationFile(schemaPath string) (*Schema, error) {
	return LoadFile(schemaPath, RootElementNameOrganisation)
}

// RootElementName returns the document root element name this schema
// describes, such as "iati-activities".
func (s *Schema) RootElementName() string {
	return s.rootElementName
}

// FindElementByName returns the first element definition in document order
// whose name matches. Returns nil when the schema defines no such element.
func (s *Schema) FindElementByName(name string) *etree.Element {
	return schematree.FindElementByName(s.doc, name)
}

// ChildElements returns the element definitions forming parent's content
// model, with by-reference definitions resolved to the referenced top-level
// definition.
func (s *Schema) ChildElements(parent *etree.Element) []*etree.Element {
	return schematree.ChildElements(s.doc, parent)
}

// AttributeElements returns the attribute definitions nested within parent's
// type definition.
func (s *Schema) AttributeElements(parent *etree.Element) []*etree.Element {
	return schematree.AttributeElements(parent)
}

// ElementName returns an element definition's declared name, with explicit
// absence when the definition carries none.
func (s *Schema) ElementName(el *etree.Element) (string, bool) {
	return schematree.ElementName(el)
}

// Codelists returns the set of codelists attached to this schema.
func (s *Schema) Codelists() *CodelistSet {
	return s.codelists
}

// WriteToString serialises the flattened schema document.
func (s *Schema) WriteToString() (string, error) {
	return s.doc.WriteToString()
}
