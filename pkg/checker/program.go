// Package checker provides the static-analysis facade the extractor is
// built against: a Program is the compiled unit (parsed trees plus sources
// for a set of files) and a Checker bound to it resolves symbols, renders
// declared types, computes signatures, and reads JSDoc comments.
//
// The traversal logic in pkg/docs only talks to this package, never to
// tree-sitter directly for resolution concerns, so the checker could be
// swapped for a richer type engine without touching the extractor.
package checker

import (
	"fmt"
	"log/slog"
	"os"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsdocgen/pkg/parser"
	"github.com/gnana997/tsdocgen/pkg/util"
)

// CompilerOptions configures program construction.
type CompilerOptions struct {
	// IncludeDeclarations includes .d.ts files in extraction. Off by
	// default: declaration files carry no implementation.
	IncludeDeclarations bool
}

// SourceInput is an in-memory source file, used by tests and the MCP
// server for code that never touches disk.
type SourceInput struct {
	Path   string
	Source []byte
}

// SourceFile is one parsed file of a program.
type SourceFile struct {
	Path   string
	Source []byte
	Lang   parser.Language
	tree   *ts.Tree
}

// Root returns the root node of the file's syntax tree.
func (sf *SourceFile) Root() *ts.Node {
	return sf.tree.RootNode()
}

// IsDeclaration reports whether this is a pure type-declaration file.
func (sf *SourceFile) IsDeclaration() bool {
	return parser.IsDeclarationFile(sf.Path)
}

// Text returns the source text covered by a node.
func (sf *SourceFile) Text(n *ts.Node) string {
	return n.Utf8Text(sf.Source)
}

// Program is a compiled, analyzable unit built from a set of source files
// plus options. It owns the parse trees; Close must be called when the
// program is no longer needed.
type Program struct {
	files  []*SourceFile
	opts   CompilerOptions
	logger *slog.Logger
}

// NewProgram reads and parses the given files, in order.
//
// Sources are read through the FileCache when one is provided (mmap-backed,
// shared across rebuilds); a nil cache falls back to os.ReadFile. Any read
// or parse failure aborts the whole program construction.
func NewProgram(filePaths []string, opts CompilerOptions, pm *parser.ParserManager, fc util.FileCache, logger *slog.Logger) (*Program, error) {
	inputs := make([]SourceInput, 0, len(filePaths))
	for _, path := range filePaths {
		var source []byte
		var err error
		if fc != nil {
			source, err = fc.Get(path)
		} else {
			source, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		inputs = append(inputs, SourceInput{Path: path, Source: source})
	}
	return NewProgramFromSources(inputs, opts, pm, logger)
}

// NewProgramFromSources parses in-memory sources into a program.
func NewProgramFromSources(inputs []SourceInput, opts CompilerOptions, pm *parser.ParserManager, logger *slog.Logger) (*Program, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Program{opts: opts, logger: logger}
	for _, in := range inputs {
		tree, err := pm.ParseFile(in.Source, in.Path)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to parse %q: %w", in.Path, err)
		}
		p.files = append(p.files, &SourceFile{
			Path:   in.Path,
			Source: in.Source,
			Lang:   parser.DetectLanguage(in.Path),
			tree:   tree,
		})
	}

	logger.Debug("program built", "files", len(p.files))
	return p, nil
}

// SourceFiles returns the program's files in construction order.
func (p *Program) SourceFiles() []*SourceFile {
	return p.files
}

// Options returns the options the program was built with.
func (p *Program) Options() CompilerOptions {
	return p.opts
}

// Checker returns a type-resolution service bound to this program.
// The checker borrows the program's trees and must not outlive it.
func (p *Program) Checker() *Checker {
	return &Checker{program: p}
}

// Close releases all parse trees. The program and any checker bound to it
// cannot be used afterwards.
func (p *Program) Close() {
	for _, f := range p.files {
		if f.tree != nil {
			f.tree.Close()
			f.tree = nil
		}
	}
}
