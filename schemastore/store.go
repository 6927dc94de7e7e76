package schemastore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Config is the plain struct schemastore.Store is configured from.
// SPEC_FULL.md §B: no config file format is mandated; cmd/tombi-lsp
// fills this from cobra flags.
type Config struct {
	RootSchemaURL string
	SubSchemas    map[string]string // doctree path prefix ("tool.foo") -> schema URL
	CatalogURLs   []string
	Offline       bool
}

// Error is a schemastore-local failure: the URL that failed and a
// message. Unlike tombi.ParseError/doctree.Diagnostic it has no Range.
type Error struct {
	URL     string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.URL, e.Message) }

// Store is the schema cache and resolver described in spec §4.5: a
// single-writer-per-URL cache (golang-lru) guarded by an at-most-one-
// inflight-fetch group (singleflight). Schemas are cached as decoded;
// the Store does not resolve `$ref`s inside them.
type Store struct {
	cfg     Config
	cache   *lru.Cache[string, *ValueSchema]
	fetcher *fetcher
	group   singleflight.Group

	mu      sync.RWMutex
	catalog *Catalog
}

// NewStore constructs a Store with a bounded LRU cache of schemas.
// cacheSize follows the pack convention (playbymail-ottomap sizes its
// lookup caches in the low hundreds) rather than being unbounded.
func NewStore(cacheSize int) (*Store, error) {
	cache, err := lru.New[string, *ValueSchema](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache, fetcher: newFetcher()}, nil
}

// LoadConfig installs cfg and, if set, eagerly loads its catalog URLs.
func (s *Store) LoadConfig(cfg Config) error {
	s.mu.Lock()
	s.cfg = cfg
	s.fetcher.offline = cfg.Offline
	s.mu.Unlock()

	if len(cfg.CatalogURLs) == 0 {
		return nil
	}
	return s.LoadSchemas(cfg.CatalogURLs)
}

// LoadSchemas fetches and merges one or more catalog documents.
func (s *Store) LoadSchemas(catalogURLs []string) error {
	merged := &Catalog{}
	for _, url := range catalogURLs {
		raw, err := s.fetcher.fetch(url)
		if err != nil {
			return &Error{URL: url, Message: err.Error()}
		}
		var c Catalog
		if err := json.Unmarshal(raw, &c); err != nil {
			return &Error{URL: url, Message: "invalid catalog JSON: " + err.Error()}
		}
		merged.Schemas = append(merged.Schemas, c.Schemas...)
	}
	s.mu.Lock()
	s.catalog = merged
	s.mu.Unlock()
	return nil
}

// fetchSchema resolves and parses the schema at url, using the
// singleflight group so concurrent callers asking for the same URL
// share one HTTP/file round trip (spec §4.5 "at most one inflight
// fetch per URL").
func (s *Store) fetchSchema(url string) (*ValueSchema, error) {
	if v, ok := s.cache.Get(url); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(url, func() (any, error) {
		if cached, ok := s.cache.Get(url); ok {
			return cached, nil
		}
		raw, err := s.fetcher.fetch(url)
		if err != nil {
			return nil, &Error{URL: url, Message: err.Error()}
		}
		var schema jsonschema.Schema
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, &Error{URL: url, Message: "invalid schema JSON: " + err.Error()}
		}
		vs := decodeExtensions(&schema, raw, url)
		s.cache.Add(url, vs)
		return vs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ValueSchema), nil
}

// UpdateSchema forces a cache refresh for url on its next resolution,
// used when an editor reports the schema document itself changed.
func (s *Store) UpdateSchema(url string) {
	s.cache.Remove(url)
}

// TryGetDocumentSchema returns the schema that applies to documentURI,
// per the catalog's fileMatch globs. If no entry matches (or its schema
// cannot be fetched) it falls back to Config.RootSchemaURL, and returns
// (nil, false) only when that is unset or cannot be fetched either
// (spec §4.5 "schema selection").
func (s *Store) TryGetDocumentSchema(documentURI string) (*ValueSchema, bool) {
	s.mu.RLock()
	cfg := s.cfg
	catalog := s.catalog
	s.mu.RUnlock()

	if catalog != nil {
		if entry, ok := catalog.match(documentURI); ok {
			schema, err := s.fetchSchema(entry.URL)
			if err == nil {
				return schema, true
			}
		}
	}
	if cfg.RootSchemaURL == "" {
		return nil, false
	}
	schema, err := s.fetchSchema(cfg.RootSchemaURL)
	if err != nil {
		return nil, false
	}
	return schema, true
}

// ResolveSourceSchemaFromAST walks path (a dotted accessor like
// "tool.foo") against the configured sub-schema map, letting a single
// TOML document host independently schema'd sub-trees — the pattern
// cargo's `[tool.*]` extension tables use, restored from
// original_source/extensions/tombi-cargo-extension.
func (s *Store) ResolveSourceSchemaFromAST(path []string) (*ValueSchema, bool) {
	s.mu.RLock()
	sub := s.cfg.SubSchemas
	s.mu.RUnlock()

	key := joinPath(path)
	for prefix, url := range sub {
		if key == prefix || hasPrefixPath(key, prefix) {
			schema, err := s.fetchSchema(url)
			if err == nil {
				return schema, true
			}
		}
	}
	return nil, false
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

func hasPrefixPath(key, prefix string) bool {
	if len(key) <= len(prefix) {
		return false
	}
	return key[:len(prefix)] == prefix && key[len(prefix)] == '.'
}

func decodeExtensions(schema *jsonschema.Schema, raw []byte, url string) *ValueSchema {
	var ext struct {
		TOMLVersion      string `json:"x-tombi-toml-version"`
		ArrayValuesOrder string `json:"x-tombi-array-values-order"`
	}
	_ = json.Unmarshal(raw, &ext) // best-effort; absent extensions leave zero values

	order := ArrayValuesUnordered
	switch ext.ArrayValuesOrder {
	case "ascending":
		order = ArrayValuesAscending
	case "descending":
		order = ArrayValuesDescending
	}

	return &ValueSchema{
		Schema:           schema,
		SourceURL:        url,
		TOMLVersion:      ext.TOMLVersion,
		ArrayValuesOrder: order,
	}
}
