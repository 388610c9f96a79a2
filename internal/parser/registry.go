package parser

import (
	"fmt"
	"sync"

	"integrity-gateway/internal/model"
)

// Registry manages parser instances keyed by source kind
type Registry struct {
	parsers map[model.SourceKind]func() Parser
	mutex   sync.RWMutex
}

// NewRegistry creates a registry with all built-in parsers registered
func NewRegistry() *Registry {
	registry := &Registry{
		parsers: make(map[model.SourceKind]func() Parser),
	}
	registry.registerParsers()
	return registry
}

// registerParsers registers all available parsers
func (r *Registry) registerParsers() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.parsers[model.KindDelimitedText] = func() Parser {
		return NewDelimitedTextParser()
	}
	r.parsers[model.KindSpreadsheet] = func() Parser {
		return NewSpreadsheetParser()
	}
	r.parsers[model.KindDocumentText] = func() Parser {
		return NewDocumentTextParser()
	}
}

// GetParser returns a parser for the given kind
func (r *Registry) GetParser(kind model.SourceKind) (Parser, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	factory, exists := r.parsers[kind]
	if !exists {
		return nil, fmt.Errorf("unsupported source kind: %s", kind)
	}
	return factory(), nil
}

// IsSupported reports whether a parser is registered for the kind
func (r *Registry) IsSupported(kind model.SourceKind) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.parsers[kind]
	return exists
}

// SupportedKinds returns all registered kinds
func (r *Registry) SupportedKinds() []model.SourceKind {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	kinds := make([]model.SourceKind, 0, len(r.parsers))
	for kind := range r.parsers {
		kinds = append(kinds, kind)
	}
	return kinds
}
