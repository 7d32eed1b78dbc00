// Package docs implements documentation extraction: a single traversal
// pass over a compiled program that serializes every exported or public
// declaration into a self-contained DocEntry record.
package docs

import "github.com/gnana997/tsdocgen/pkg/checker"

// EntryKind is the declaration-kind discriminant the renderer groups on.
type EntryKind string

const (
	KindFunction EntryKind = "function"
	KindClass    EntryKind = "class"
	KindConst    EntryKind = "const"
	KindMethod   EntryKind = "method"
)

// DocEntry is the documentation record produced per declaration.
//
// Entries are value snapshots computed once at extraction time; they hold
// no reference back to the program or checker and are safe to keep after
// the program is closed.
//
// Name is always present. Every other field is present only when the
// declaration kind supplies it: Constructors only on classes, ReturnType
// only on callables, and so on. FileName is stamped on top-level entries
// only — nested method records do not carry the enclosing file's path.
type DocEntry struct {
	Name          string            `json:"name"`
	Kind          EntryKind         `json:"kind,omitempty"`
	FileName      string            `json:"fileName,omitempty"`
	Documentation string            `json:"documentation,omitempty"`
	Type          string            `json:"type,omitempty"`
	Constructors  []SignatureDoc    `json:"constructors,omitempty"`
	Parameters    []DocEntry        `json:"parameters,omitempty"`
	Methods       []DocEntry        `json:"methods,omitempty"`
	ReturnType    string            `json:"returnType,omitempty"`
	JSDocs        []checker.JSDocTag `json:"jsDocs,omitempty"`
}

// SignatureDoc is the reduced record describing one call or construct
// signature: parameters, return type, and the signature's own doc comment.
type SignatureDoc struct {
	Parameters    []DocEntry `json:"parameters"`
	ReturnType    string     `json:"returnType,omitempty"`
	Documentation string     `json:"documentation,omitempty"`
}
