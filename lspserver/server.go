// Package lspserver wires tombi's parser, document tree, schema store,
// validator, completion, and hover packages to the Language Server
// Protocol, grounded on the glsp.Context/protocol.Handler shape used by
// the pack's redpanda-data/benthos LSP frontend (internal/cli/lsp) and
// restored per SPEC_FULL.md §6.
package lspserver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/completion"
	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/hover"
	"github.com/maurice/tombi/schemastore"
	"github.com/maurice/tombi/validator"
)

// Server is the LSP frontend's request handler state: one document
// cache shared across every request, per spec §6 (no per-request
// reparse caching beyond the document's own latest text/tree).
type Server struct {
	store *schemastore.Store
	log   *logrus.Logger

	mu   sync.RWMutex
	docs map[string]*document
}

// NewServer builds a Server backed by store. Schema resolution (catalog
// matching, $ref fetches) is store's responsibility; Server only calls
// into it.
func NewServer(store *schemastore.Store, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{store: store, log: log, docs: make(map[string]*document)}
}

// Handler builds the glsp protocol.Handler wired to Server's methods.
func (s *Server) Handler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentCompletion: s.completionHandler,
		TextDocumentHover:      s.hoverHandler,
	}
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncKindFull,
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: []string{".", "="},
		},
		HoverProvider: true,
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "tombi-lsp",
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.log.Debug("tombi-lsp initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.analyze(uri, params.TextDocument.Text)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	whole, ok := params.ContentChanges[0].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	uri := string(params.TextDocument.URI)
	doc := s.analyze(uri, whole.Text)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.forget(uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// publishDiagnostics merges parse errors, document-tree merge
// diagnostics, and schema-validation diagnostics into one LSP
// publication, per spec §6 "one publishDiagnostics call per analysis".
func (s *Server) publishDiagnostics(ctx *glsp.Context, doc *document) {
	var out []protocol.Diagnostic

	for _, e := range doc.parsed.Errors {
		out = append(out, protocol.Diagnostic{
			Range:    toProtocolRange(e.Range),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Message:  e.Message,
			Source:   stringPtr("tombi"),
		})
	}
	for _, d := range doc.tree.Diagnostics {
		out = append(out, protocol.Diagnostic{
			Range:    toProtocolRange(d.Range),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Message:  d.Message,
			Source:   stringPtr("tombi"),
		})
	}
	if doc.schema != nil {
		root := doctree.Value{Kind: doctree.ValueTable, Table: doc.tree.Root}
		for _, d := range validator.Validate(root, doc.schema, nil) {
			sev := protocol.DiagnosticSeverityError
			if d.Severity == validator.SeverityWarning {
				sev = protocol.DiagnosticSeverityWarning
			}
			out = append(out, protocol.Diagnostic{
				Range:    toProtocolRange(d.Range),
				Severity: &sev,
				Message:  d.Message,
				Source:   stringPtr("tombi-schema"),
			})
		}
	}

	if out == nil {
		out = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Diagnostics: out,
	})
}

func (s *Server) completionHandler(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := s.document(string(params.TextDocument.URI))
	if !ok || doc.schema == nil {
		return nil, nil
	}

	pos := tombi.Position{Line: int(params.Position.Line) + 1, Col: int(params.Position.Character) + 1}
	path, _, found := findPath(doc.tree.Root, pos, nil)

	parentPath := path
	prefix := ""
	if found && len(path) > 0 {
		parentPath = path[:len(path)-1]
		prefix = path[len(path)-1]
	}

	parentSchema := schemaAt(doc.schema.Schema, parentPath)
	if parentSchema == nil {
		return nil, nil
	}

	items := completion.Complete(&schemastore.ValueSchema{Schema: parentSchema}, completion.Context{
		Path:   parentPath,
		Prefix: prefix,
	})

	out := make([]protocol.CompletionItem, 0, len(items))
	for _, item := range items {
		item := item
		kind := protocol.CompletionItemKindProperty
		out = append(out, protocol.CompletionItem{
			Label:      item.Label,
			SortText:   &item.SortKey,
			Detail:     &item.Detail,
			InsertText: &item.InsertText,
			Deprecated: &item.Deprecated,
			Kind:       &kind,
		})
	}
	return out, nil
}

func (s *Server) hoverHandler(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.document(string(params.TextDocument.URI))
	if !ok || doc.schema == nil {
		return nil, nil
	}

	pos := tombi.Position{Line: int(params.Position.Line) + 1, Col: int(params.Position.Character) + 1}
	path, value, found := findPath(doc.tree.Root, pos, nil)
	if !found {
		return nil, nil
	}

	fieldSchema := schemaAt(doc.schema.Schema, path)
	if fieldSchema == nil {
		return nil, nil
	}

	content := hover.Hover(value, &schemastore.ValueSchema{Schema: fieldSchema}, path)
	if content == nil {
		return nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", strings.Join(path, "."))
	if content.ValueType.Names != nil || content.ValueType.Nullable {
		fmt.Fprintf(&b, "  `%s`", content.ValueType.String())
	}
	if content.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", content.Description)
	}
	if content.Deprecated {
		b.WriteString("\n\n**deprecated**")
	}

	r := toProtocolRange(content.Range)
	return &protocol.Hover{Contents: b.String(), Range: &r}, nil
}

func stringPtr(s string) *string { return &s }

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
