package scanner

import (
	"testing"

	"loxvm/internal/token"
)

func collect(source string) []token.Token {
	s := New(source)
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestScansOperatorsAndKeywords(t *testing.T) {
	toks := collect("var x = 1 + 2; // comment\nprint x >= 3;")
	want := []token.Type{
		token.Var, token.Identifier, token.Equal, token.Number, token.Plus,
		token.Number, token.Semicolon,
		token.Print, token.Identifier, token.GreaterEqual, token.Number, token.Semicolon,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v (%q)", i, toks[i].Type, tt, toks[i].Lexeme)
		}
	}
}

func TestTracksLineNumbers(t *testing.T) {
	toks := collect("1\n2\n3")
	if toks[0].Line != 1 || toks[1].Line != 2 || toks[2].Line != 3 {
		t.Fatalf("unexpected line numbers: %+v", toks)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := collect(`"abc`)
	if toks[0].Type != token.Error {
		t.Fatalf("expected an error token, got %v", toks[0].Type)
	}
}

func TestNumberRequiresDigitAfterDot(t *testing.T) {
	toks := collect("1.")
	// "1" then "." as a bare token would be unexpected; since '.' isn't a
	// recognized single-char token in this grammar, the scanner should
	// treat "1" as a whole number and leave the dot to error on its own.
	if toks[0].Type != token.Number || toks[0].Lexeme != "1" {
		t.Fatalf("expected number token \"1\", got %+v", toks[0])
	}
}

func TestIdentifierVersusKeyword(t *testing.T) {
	toks := collect("forest for")
	if toks[0].Type != token.Identifier {
		t.Fatalf("expected identifier, got %v", toks[0].Type)
	}
	if toks[1].Type != token.For {
		t.Fatalf("expected 'for' keyword, got %v", toks[1].Type)
	}
}
