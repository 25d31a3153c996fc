package langtoken

import "testing"

func TestPatternsAndTypesAreAligned(t *testing.T) {
	if len(Patterns) != int(TagIdentifier)+1 {
		t.Fatalf("Patterns has %d entries, want %d", len(Patterns), int(TagIdentifier)+1)
	}
}

func TestKeywordShaderPrecedesIdentifier(t *testing.T) {
	if KeywordShader >= Identifier {
		t.Fatalf("KeywordShader (%d) must sort before Identifier (%d) so it wins lexer tie-breaks", KeywordShader, Identifier)
	}
}

func TestTypeStringUnknown(t *testing.T) {
	if got := Type(-1).String(); got != "Unknown" {
		t.Errorf("String() for out-of-range type = %q, want Unknown", got)
	}
	if got := Type(len(Patterns)).String(); got != "Unknown" {
		t.Errorf("String() for out-of-range type = %q, want Unknown", got)
	}
}
