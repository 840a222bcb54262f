package scanner_test

import (
	"testing"

	"github.com/mgrafton/loxwalk/internal/scanner"
	"github.com/mgrafton/loxwalk/internal/token"
)

func TestScanTokensProducesExpectedKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Type
	}{
		{"empty", "", []token.Type{token.EOF}},
		{"punctuation", "(){},.-+;*", []token.Type{
			token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
			token.COMMA, token.DOT, token.MINUS, token.PLUS,
			token.SEMICOLON, token.STAR, token.EOF,
		}},
		{"two_char_operators", "!= == <= >= < > ! =", []token.Type{
			token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL,
			token.GREATER_EQUAL, token.LESS, token.GREATER, token.BANG,
			token.EQUAL, token.EOF,
		}},
		{"line_comment_ignored", "var a = 1; // trailing comment\nvar b = 2;", []token.Type{
			token.VAR, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON,
			token.VAR, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON,
			token.EOF,
		}},
		{"string_literal", `"hello"`, []token.Type{token.STRING, token.EOF}},
		{"number_literal", "123 1.5", []token.Type{token.NUMBER, token.NUMBER, token.EOF}},
		{"keyword_vs_identifier", "class Foo and anderson", []token.Type{
			token.CLASS, token.IDENTIFIER, token.AND, token.IDENTIFIER, token.EOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := scanner.New(tt.input).ScanTokens()
			if len(errs) != 0 {
				t.Fatalf("unexpected scan errors: %v", errs)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, tok := range tokens {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.Type, tt.want[i])
				}
			}
		})
	}
}

func TestScanTokensAlwaysTerminatesWithEOF(t *testing.T) {
	tokens, _ := scanner.New("var x = 1;").ScanTokens()
	last := tokens[len(tokens)-1]
	if last.Type != token.EOF {
		t.Fatalf("last token is %s, want EOF", last.Type)
	}
}

func TestScanTokensTracksLineNumbers(t *testing.T) {
	tokens, _ := scanner.New("var a = 1;\nvar b = 2;").ScanTokens()
	var bLine int
	for _, tok := range tokens {
		if tok.Type == token.IDENTIFIER && tok.Lexeme == "b" {
			bLine = tok.Line
		}
	}
	if bLine != 2 {
		t.Fatalf("identifier 'b' reported on line %d, want 2", bLine)
	}
}

func TestScanTokensMultiLineString(t *testing.T) {
	tokens, errs := scanner.New("\"line one\nline two\" var after = 1;").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	var afterLine int
	for _, tok := range tokens {
		if tok.Type == token.IDENTIFIER && tok.Lexeme == "after" {
			afterLine = tok.Line
		}
	}
	if afterLine != 2 {
		t.Fatalf("identifier after multi-line string reported on line %d, want 2", afterLine)
	}
}

func TestScanTokensAccumulatesMultipleErrors(t *testing.T) {
	_, errs := scanner.New("@ var x = 1; #").ScanTokens()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2 (one pass should surface both bad characters): %v", len(errs), errs)
	}
}

func TestScanTokensUnterminatedString(t *testing.T) {
	_, errs := scanner.New(`"never closed`).ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
}

func TestScanTokensIdempotent(t *testing.T) {
	const src = `class Greeter { greet(name) { print "hi " + name; } }`
	first, _ := scanner.New(src).ScanTokens()
	second, _ := scanner.New(src).ScanTokens()
	if len(first) != len(second) {
		t.Fatalf("re-scanning the same source produced different token counts")
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Lexeme != second[i].Lexeme {
			t.Fatalf("token %d differs between scans: %v vs %v", i, first[i], second[i])
		}
	}
}
