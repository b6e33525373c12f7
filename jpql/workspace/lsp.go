package workspace

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/hermes/jpql/assist"
	"github.com/dhamidi/hermes/jpql/parser"
)

const lsName = "hermes"

// LSPServer serves completion, hover and diagnostics for .jpql files over
// the language server protocol.
type LSPServer struct {
	workspace *Workspace
	watcher   *FileWatcher
	handler   protocol.Handler
	server    *server.Server
	version   string
	opts      []parser.Option
}

func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    opts,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
		TextDocumentHover:      ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	log.Infof("initializing workspace %s", rootDir)

	ls.workspace = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{" ", "("},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.watcher = NewFileWatcher(ls.workspace, 2*time.Second)
	ls.watcher.OnChange(func(path string, doc *Document) {
		ls.publishDiagnostics(ctx, path, doc)
	})
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, path, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			doc := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, path, doc)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if filepath.Ext(path) != Extension {
		ls.workspace.RemoveFile(path)
		ls.publishDiagnostics(ctx, path, nil)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.workspace.ScanFile(path); err != nil {
		log.Errorf("saving %s: %s", path, err)
		return nil
	}
	ls.publishDiagnostics(ctx, path, ls.workspace.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := int(params.Position.Character)
	proposals := ls.workspace.CompletionsAt(path, line, col)
	if len(proposals) == 0 {
		return nil, nil
	}
	return completionItems(doc.Content, proposals), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil {
		return nil, nil
	}

	hover := ls.workspace.HoverAt(path, int(params.Position.Line)+1, int(params.Position.Character))
	if hover == nil {
		return nil, nil
	}
	r := toRange(doc.Content, hover.Offset, hover.Length)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hover.Markdown(),
		},
		Range: &r,
	}, nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, path string, doc *Document) {
	diagnostics := []protocol.Diagnostic{}
	if doc != nil {
		diagnostics = toDiagnostics(doc.Content, doc.Problems)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics,
	})
}

func completionItems(content []byte, proposals []assist.Proposal) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, p := range proposals {
		kind := toProtocolKind(p.Kind)
		detail := p.Kind.String()
		items = append(items, protocol.CompletionItem{
			Label:  p.Label,
			Kind:   &kind,
			Detail: &detail,
			TextEdit: protocol.TextEdit{
				Range:   toRange(content, p.Offset, p.Length),
				NewText: p.Label,
			},
		})
	}
	return items
}

func toDiagnostics(content []byte, problems []assist.Problem) []protocol.Diagnostic {
	source := lsName
	severity := protocol.DiagnosticSeverityError
	diagnostics := make([]protocol.Diagnostic, 0, len(problems))
	for _, p := range problems {
		message := p.Message
		if p.Suggestion != "" {
			message += " (did you mean '" + p.Suggestion + "'?)"
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    toRange(content, p.Offset, p.Length),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: p.Code},
			Source:   &source,
			Message:  message,
		})
	}
	return diagnostics
}

func toProtocolKind(kind assist.ProposalKind) protocol.CompletionItemKind {
	switch kind {
	case assist.ProposalClause:
		return protocol.CompletionItemKindKeyword
	case assist.ProposalVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindFunction
	}
}

func toRange(content []byte, offset, length int) protocol.Range {
	startLine, startCol := PositionOf(content, offset)
	endLine, endCol := PositionOf(content, offset+length)
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(startLine - 1), Character: protocol.UInteger(startCol)},
		End:   protocol.Position{Line: protocol.UInteger(endLine - 1), Character: protocol.UInteger(endCol)},
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
