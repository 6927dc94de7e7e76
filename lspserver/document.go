package lspserver

import (
	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/schemastore"
)

// document is everything the server keeps about one open TOML file,
// recomputed in full on every change — spec §6 treats incremental
// reparse as an optimization the LSP frontend may add later, not a
// correctness requirement.
type document struct {
	uri    string
	text   string
	parsed *tombi.ParseResult
	tree   *doctree.Document
	schema *schemastore.ValueSchema
}

func (s *Server) analyze(uri, text string) *document {
	parsed := tombi.Parse(text)
	tree := doctree.Build(parsed.Root)

	schema, _ := s.store.TryGetDocumentSchema(uri)

	doc := &document{uri: uri, text: text, parsed: parsed, tree: tree, schema: schema}

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

func (s *Server) document(uri string) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *Server) forget(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}
