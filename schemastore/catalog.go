package schemastore

import "github.com/bmatcuk/doublestar/v4"

// Catalog is a schemastore catalog document: a flat list of schema
// entries, each claiming one or more fileMatch globs, per spec §6
// "Catalogue format".
type Catalog struct {
	Schemas []CatalogEntry `json:"schemas"`
}

// CatalogEntry is one schema's catalog registration.
type CatalogEntry struct {
	URL       string   `json:"url"`
	FileMatch []string `json:"fileMatch"`
	Name      string   `json:"name,omitempty"`
}

// match finds the first entry whose FileMatch globs accept documentURI.
// Grounded on bennypowers-cem's use of doublestar for manifest file
// matching (SPEC_FULL.md §C).
func (c *Catalog) match(documentURI string) (CatalogEntry, bool) {
	for _, entry := range c.Schemas {
		for _, pattern := range entry.FileMatch {
			if ok, _ := doublestar.Match(pattern, documentURI); ok {
				return entry, true
			}
			if ok, _ := doublestar.Match(pattern, baseName(documentURI)); ok {
				return entry, true
			}
		}
	}
	return CatalogEntry{}, false
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
