package model

import (
	"path/filepath"
	"strings"
)

// SourceKind identifies the format family of an input source
type SourceKind string

const (
	KindDelimitedText  SourceKind = "delimited-text"
	KindSpreadsheet    SourceKind = "spreadsheet"
	KindDocumentText   SourceKind = "document-text"
	KindRelationalRows SourceKind = "relational-rows"
	KindUnknown        SourceKind = "unknown"
)

// Source is a single input unit: the raw payload plus a declared kind.
// The pipeline holds no reference to the payload after parsing.
type Source struct {
	Name    string     `json:"name"`
	Kind    SourceKind `json:"kind"`
	Payload []byte     `json:"-"`
}

// extensionKinds maps file extensions to source kinds
var extensionKinds = map[string]SourceKind{
	".csv":  KindDelimitedText,
	".xlsx": KindSpreadsheet,
	".pdf":  KindDocumentText,
}

// KindForFilename derives a source kind from a filename extension.
// Unrecognized extensions map to KindUnknown.
func KindForFilename(name string) SourceKind {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extensionKinds[ext]; ok {
		return kind
	}
	return KindUnknown
}

// NewFileSource creates a Source from an uploaded file, deriving the kind
// from the filename.
func NewFileSource(name string, payload []byte) Source {
	return Source{
		Name:    name,
		Kind:    KindForFilename(name),
		Payload: payload,
	}
}
