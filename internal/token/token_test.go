package token

import (
	"strings"
	"testing"
)

func TestKeywordsCoverReservedWords(t *testing.T) {
	want := []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil", "or",
		"print", "return", "super", "this", "true", "var", "while",
	}
	for _, w := range want {
		if _, ok := Keywords[w]; !ok {
			t.Errorf("Keywords is missing reserved word %q", w)
		}
	}
}

func TestTokenStringIncludesLexemeAndLine(t *testing.T) {
	tok := Token{Type: Identifier, Lexeme: "x", Line: 3}
	s := tok.String()
	if s == "" {
		t.Fatal("String() should not be empty")
	}
	if !strings.Contains(s, `"x"`) || !strings.Contains(s, "line:3") {
		t.Fatalf("String() = %q, want it to include the lexeme and line", s)
	}
}
