// Package loader reads schema documents from a filesystem into markup trees.
package loader

import (
	"fmt"
	"io/fs"

	"github.com/beevik/etree"
)

// Config holds configuration for the schema loader.
type Config struct {
	FS fs.FS
}

// Loader reads schema documents from a configured filesystem. Document
// order, attributes, and namespace declarations are preserved exactly as
// written.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader for the filesystem in cfg.
func NewLoader(cfg Config) *Loader {
	return &Loader{fsys: cfg.FS}
}

// LoadTree parses the document at location into a markup tree. Missing or
// unreadable files surface the underlying filesystem error; unparsable
// content surfaces the parse error.
func (l *Loader) LoadTree(location string) (doc *etree.Document, err error) {
	if l == nil || l.fsys == nil {
		return nil, fmt.Errorf("load tree %s: nil fs", location)
	}

	f, err := l.fsys.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open schema %s: %w", location, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			doc, err = nil, fmt.Errorf("close schema %s: %w", location, closeErr)
		}
	}()

	d := etree.NewDocument()
	if _, err := d.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", location, err)
	}
	return d, nil
}
