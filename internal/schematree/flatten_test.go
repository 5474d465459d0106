package schematree_test

import (
	"testing"
	"testing/fstest"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "github.com/IATI/iati.core/errors"
	"github.com/IATI/iati.core/internal/loader"
	"github.com/IATI/iati.core/internal/schematree"
)

const activitySchemaXML = `<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:import namespace="http://www.w3.org/XML/1998/namespace" schemaLocation="xml.xsd"/>
  <xsd:include schemaLocation="iati-common.xsd"/>
  <xsd:element name="iati-activities" type="xsd:string"/>
</xsd:schema>`

const commonSchemaXML = `<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:import namespace="http://www.w3.org/XML/1998/namespace" schemaLocation="xml.xsd"/>
  <xsd:element name="reporting-org" type="xsd:string"/>
  <xsd:element name="narrative" type="xsd:string"/>
  <xsd:element name="total-budget" type="xsd:string"/>
</xsd:schema>`

func schemaFS() fstest.MapFS {
	return fstest.MapFS{
		"schemas/iati-activities-schema.xsd": &fstest.MapFile{Data: []byte(activitySchemaXML)},
		"schemas/iati-common.xsd":            &fstest.MapFile{Data: []byte(commonSchemaXML)},
	}
}

func loadAndFlatten(t *testing.T, fsys fstest.MapFS, location string) *etree.Document {
	t.Helper()
	l := loader.NewLoader(loader.Config{FS: fsys})
	doc, err := l.LoadTree(location)
	require.NoError(t, err)
	require.NoError(t, schematree.Flatten(doc, l, schemasDirResolver))
	return doc
}

func TestFlattenMergesIncludedSchema(t *testing.T) {
	doc := loadAndFlatten(t, schemaFS(), "schemas/iati-activities-schema.xsd")
	root := doc.Root()

	assert.Empty(t, descendantsNamed(root, schematree.XMLSchemaNamespace, "include"),
		"no bare inclusion directives may remain")
	assert.Empty(t, descendantsNamed(root, schematree.XIncludeNamespace, "include"),
		"no resolved inclusion directives may remain")
	assert.Empty(t, descendantsNamed(root, schematree.XMLSchemaNamespace, "schema"),
		"no nested schema wrappers may remain")

	el := schematree.FindElementByName(doc, "reporting-org")
	require.NotNil(t, el, "included element definitions must be reachable")

	// The included file's own import is skipped during hoisting, so exactly
	// one import directive survives.
	assert.Len(t, childrenNamed(root, schematree.XMLSchemaNamespace, "import"), 1)
}

func TestFlattenPreservesHoistedOrder(t *testing.T) {
	doc := loadAndFlatten(t, schemaFS(), "schemas/iati-activities-schema.xsd")
	root := doc.Root()

	var names []string
	for _, el := range childrenNamed(root, schematree.XMLSchemaNamespace, "element") {
		names = append(names, el.SelectAttrValue("name", ""))
	}
	// The wrapper sat before the iati-activities definition, so the hoisted
	// definitions keep their relative order ahead of it.
	assert.Equal(t, []string{"reporting-org", "narrative", "total-budget", "iati-activities"}, names)
}

func TestFlattenIdempotent(t *testing.T) {
	fsys := schemaFS()
	l := loader.NewLoader(loader.Config{FS: fsys})
	doc := loadAndFlatten(t, fsys, "schemas/iati-activities-schema.xsd")

	once, err := doc.WriteToString()
	require.NoError(t, err)

	require.NoError(t, schematree.Flatten(doc, l, schemasDirResolver))

	twice, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, once, twice, "flattening an already-flattened tree must be a no-op")
}

func TestFlattenNoIncludeLeavesTreeIdentical(t *testing.T) {
	schemaXML := `<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="note" type="xsd:string"/>
  <xsd:element name="to" type="xsd:string"/>
</xsd:schema>`
	fsys := fstest.MapFS{
		"schema.xsd": &fstest.MapFile{Data: []byte(schemaXML)},
	}

	l := loader.NewLoader(loader.Config{FS: fsys})
	doc, err := l.LoadTree("schema.xsd")
	require.NoError(t, err)

	before, err := doc.WriteToString()
	require.NoError(t, err)

	require.NoError(t, schematree.Flatten(doc, l, schemasDirResolver))

	after, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFlattenMissingIncludedFile(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/iati-activities-schema.xsd": &fstest.MapFile{Data: []byte(activitySchemaXML)},
	}
	l := loader.NewLoader(loader.Config{FS: fsys})
	doc, err := l.LoadTree("schemas/iati-activities-schema.xsd")
	require.NoError(t, err)

	err = schematree.Flatten(doc, l, schemasDirResolver)
	require.Error(t, err)

	schemaErr, ok := ierrors.AsSchema(err)
	require.True(t, ok, "want *errors.SchemaError, got %T", err)
	assert.Equal(t, ierrors.ErrSchemaLoad, schemaErr.Code)
	assert.Equal(t, "schemas/iati-common.xsd", schemaErr.Path)
}

func TestFlattenRejectsNestedInclude(t *testing.T) {
	nestedXML := `<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:include schemaLocation="deeper.xsd"/>
  <xsd:element name="reporting-org" type="xsd:string"/>
</xsd:schema>`
	fsys := schemaFS()
	fsys["schemas/iati-common.xsd"] = &fstest.MapFile{Data: []byte(nestedXML)}

	l := loader.NewLoader(loader.Config{FS: fsys})
	doc, err := l.LoadTree("schemas/iati-activities-schema.xsd")
	require.NoError(t, err)

	err = schematree.Flatten(doc, l, schemasDirResolver)
	require.Error(t, err)

	schemaErr, ok := ierrors.AsSchema(err)
	require.True(t, ok, "want *errors.SchemaError, got %T", err)
	assert.Equal(t, ierrors.ErrMalformedInclusion, schemaErr.Code)
}
