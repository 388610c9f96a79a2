package parser

import (
	"testing"

	"integrity-gateway/internal/model"
)

func TestRegistrySupportsBuiltinKinds(t *testing.T) {
	registry := NewRegistry()

	for _, kind := range []model.SourceKind{
		model.KindDelimitedText,
		model.KindSpreadsheet,
		model.KindDocumentText,
	} {
		if !registry.IsSupported(kind) {
			t.Errorf("Expected kind %s to be supported", kind)
			continue
		}
		p, err := registry.GetParser(kind)
		if err != nil {
			t.Errorf("Failed to get parser for %s: %v", kind, err)
			continue
		}
		if p.Kind() != kind {
			t.Errorf("Expected parser kind %s, got %s", kind, p.Kind())
		}
	}
}

func TestRegistryRejectsUnknownKind(t *testing.T) {
	registry := NewRegistry()

	if registry.IsSupported(model.KindUnknown) {
		t.Errorf("Did not expect %s to be supported", model.KindUnknown)
	}
	if registry.IsSupported(model.KindRelationalRows) {
		t.Errorf("Relational rows arrive pre-parsed and must not have a parser")
	}
	if _, err := registry.GetParser(model.KindUnknown); err == nil {
		t.Errorf("Expected an error for an unsupported kind")
	}
}

func TestSupportedKindsCount(t *testing.T) {
	kinds := NewRegistry().SupportedKinds()
	if len(kinds) != 3 {
		t.Errorf("Expected 3 supported kinds, got %d: %v", len(kinds), kinds)
	}
}
