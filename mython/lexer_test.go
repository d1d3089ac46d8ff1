package mython

import (
	"errors"
	"strings"
	"testing"
)

func lexTokens(t *testing.T, src string) []Token {
	t.Helper()
	l, err := NewLexer(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	var toks []Token
	tok := l.CurrentToken()
	for {
		toks = append(toks, tok)
		if tok.Type == tokenEOF {
			return toks
		}
		tok = l.NextToken()
	}
}

func formatToken(tok Token) string {
	switch tok.Type {
	case tokenId, tokenNumber, tokenString, tokenChar:
		return string(tok.Type) + "(" + tok.Literal + ")"
	default:
		return string(tok.Type)
	}
}

func formatTokens(toks []Token) string {
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = formatToken(tok)
	}
	return strings.Join(parts, " ")
}

func expectTokens(t *testing.T, src, want string) {
	t.Helper()
	got := formatTokens(lexTokens(t, src))
	if got != want {
		t.Fatalf("token stream mismatch\nsource: %q\n  got:  %s\n  want: %s", src, got, want)
	}
}

func TestLexerIndentedSequence(t *testing.T) {
	expectTokens(t, "a = 1\n  b = 2\nc = 3\n",
		"ID(a) CHAR(=) NUMBER(1) NEWLINE INDENT ID(b) CHAR(=) NUMBER(2) NEWLINE DEDENT ID(c) CHAR(=) NUMBER(3) NEWLINE EOF")
}

func TestLexerEmptyInput(t *testing.T) {
	expectTokens(t, "", "EOF")
}

func TestLexerOnlyNewlines(t *testing.T) {
	expectTokens(t, "\n\n\n", "EOF")
}

func TestLexerMissingTrailingNewline(t *testing.T) {
	expectTokens(t, "x = 1", "ID(x) CHAR(=) NUMBER(1) NEWLINE EOF")
}

func TestLexerBlankAndCommentLinesCoalesce(t *testing.T) {
	src := "a = 1\n\n   \n# standalone comment\n\nb = 2\n"
	expectTokens(t, src, "ID(a) CHAR(=) NUMBER(1) NEWLINE ID(b) CHAR(=) NUMBER(2) NEWLINE EOF")
}

func TestLexerTrailingComment(t *testing.T) {
	expectTokens(t, "x = 1 # trailing\n", "ID(x) CHAR(=) NUMBER(1) NEWLINE EOF")
}

func TestLexerNoConsecutiveNewlines(t *testing.T) {
	toks := lexTokens(t, "a = 1\n\n\nb = 2\n\n# note\n\nc = 3\n")
	for i := 1; i < len(toks); i++ {
		if toks[i].Type == tokenNewline && toks[i-1].Type == tokenNewline {
			t.Fatalf("consecutive NEWLINE tokens at index %d in %s", i, formatTokens(toks))
		}
	}
}

func TestLexerIndentsAreBalanced(t *testing.T) {
	src := "if a:\n  if b:\n    c = 1\n"
	toks := lexTokens(t, src)
	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Type {
		case tokenIndent:
			indents++
		case tokenDedent:
			dedents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Fatalf("expected 2 INDENT and 2 DEDENT, got %d/%d in %s", indents, dedents, formatTokens(toks))
	}
	if last := toks[len(toks)-1]; last.Type != tokenEOF {
		t.Fatalf("stream does not end with EOF: %s", formatTokens(toks))
	}
	if prev := toks[len(toks)-2]; prev.Type != tokenDedent {
		t.Fatalf("expected DEDENT before EOF, got %s", prev.Type)
	}
}

func TestLexerMultiLevelDedent(t *testing.T) {
	src := "if a:\n  if b:\n    c = 1\nd = 2\n"
	expectTokens(t, src,
		"IF ID(a) CHAR(:) NEWLINE INDENT IF ID(b) CHAR(:) NEWLINE INDENT ID(c) CHAR(=) NUMBER(1) NEWLINE DEDENT DEDENT ID(d) CHAR(=) NUMBER(2) NEWLINE EOF")
}

func TestLexerDedentsCloseAtEOFWithoutTrailingNewline(t *testing.T) {
	expectTokens(t, "if a:\n  b = 1",
		"IF ID(a) CHAR(:) NEWLINE INDENT ID(b) CHAR(=) NUMBER(1) NEWLINE DEDENT EOF")
}

func TestLexerOddIndentFails(t *testing.T) {
	_, err := NewLexer("if a:\n   b = 1\n")
	var lexErr *LexerError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexerError for odd indentation, got %v", err)
	}
}

func TestLexerKeywords(t *testing.T) {
	expectTokens(t, "class return if else def print or and not None True False\n",
		"CLASS RETURN IF ELSE DEF PRINT OR AND NOT NONE TRUE FALSE NEWLINE EOF")
}

func TestLexerIdentifiersNearKeywords(t *testing.T) {
	expectTokens(t, "classes _if None1 x9\n", "ID(classes) ID(_if) ID(None1) ID(x9) NEWLINE EOF")
}

func TestLexerCompoundOperators(t *testing.T) {
	expectTokens(t, "a == b != c <= d >= e < f > g = h\n",
		"ID(a) == ID(b) != ID(c) <= ID(d) >= ID(e) CHAR(<) ID(f) CHAR(>) ID(g) CHAR(=) ID(h) NEWLINE EOF")
}

func TestLexerStringEscapes(t *testing.T) {
	l, err := NewLexer(`s = 'a\nb\t\'c\' "d"'` + "\n")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	l.NextToken()
	tok := l.NextToken()
	if tok.Type != tokenString {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if want := "a\nb\t'c' \"d\""; tok.Literal != want {
		t.Fatalf("unexpected string value %q, want %q", tok.Literal, want)
	}
}

func TestLexerDoubleQuotedString(t *testing.T) {
	l, err := NewLexer("s = \"it's fine\"\n")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	l.NextToken()
	tok := l.NextToken()
	if tok.Literal != "it's fine" {
		t.Fatalf("unexpected string value %q", tok.Literal)
	}
}

func TestLexerStringErrors(t *testing.T) {
	cases := map[string]string{
		"unterminated":   "s = 'abc\n",
		"unknown escape": `s = 'a\qb'` + "\n",
		"eof in string":  "s = 'abc",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLexer(src)
			var lexErr *LexerError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected LexerError, got %v", err)
			}
		})
	}
}

func TestLexerCursorSticksAtEOF(t *testing.T) {
	l, err := NewLexer("x\n")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		l.NextToken()
	}
	if l.CurrentToken().Type != tokenEOF {
		t.Fatalf("cursor ran past EOF: %s", l.CurrentToken().Type)
	}
	if l.NextToken().Type != tokenEOF {
		t.Fatalf("NextToken at EOF should keep returning EOF")
	}
}

func TestLexerCommentOnlyFile(t *testing.T) {
	expectTokens(t, "# just a comment\n# another\n", "EOF")
}
