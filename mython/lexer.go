package mython

import "strings"

// Lexer eagerly scans the whole input into a token buffer at construction.
// The buffer always ends with an EOF token, preceded by NEWLINE or DEDENT
// whenever anything was emitted, so the parser gets a well-formed terminator
// sequence no matter how the source text ends.
type Lexer struct {
	input  string
	offset int

	line   int
	column int

	currentIndent int
	atLineStart   bool

	tokens []Token
	cursor int
}

// NewLexer scans source and returns a lexer positioned at the first token.
// Scan failures (unterminated strings, bad escapes, odd indentation) are
// reported as *LexerError.
func NewLexer(input string) (*Lexer, error) {
	l := &Lexer{input: input, line: 1, atLineStart: true}
	for {
		tok, err := l.loadToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == tokenEOF {
			return l, nil
		}
	}
}

// CurrentToken returns the token under the cursor without advancing.
func (l *Lexer) CurrentToken() Token {
	return l.tokens[l.cursor]
}

// NextToken advances by one token and returns the new current token. The
// cursor never moves past the final EOF token.
func (l *Lexer) NextToken() Token {
	if l.cursor+1 < len(l.tokens) {
		l.cursor++
	}
	return l.CurrentToken()
}

func (l *Lexer) eof() bool {
	return l.offset >= len(l.input)
}

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.input[l.offset]
}

func (l *Lexer) advance() byte {
	c := l.input[l.offset]
	l.offset++
	if c == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return c
}

// pos reports the position of the next unread character.
func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column + 1}
}

func (l *Lexer) lastType() TokenType {
	if len(l.tokens) == 0 {
		return ""
	}
	return l.tokens[len(l.tokens)-1].Type
}

func (l *Lexer) loadToken() (Token, error) {
	if l.atLineStart {
		if err := l.lineIndent(); err != nil {
			return Token{}, err
		}
	}
	for l.peek() == ' ' {
		l.advance()
	}
	if l.peek() == '#' {
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
	}
	if l.peek() == '\n' {
		pos := l.pos()
		l.advance()
		l.atLineStart = true
		// Blank and comment-only lines coalesce: never emit two NEWLINEs
		// in a row, and never start the stream with one.
		if last := l.lastType(); last == "" || last == tokenNewline {
			return l.loadToken()
		}
		return Token{Type: tokenNewline, Pos: pos}, nil
	}
	if l.eof() {
		last := l.lastType()
		if last != "" && last != tokenNewline && last != tokenDedent {
			// Missing trailing newline: synthesize one before EOF.
			return Token{Type: tokenNewline, Pos: l.pos()}, nil
		}
		// Close any still-open blocks so every INDENT has its DEDENT.
		if last != "" && l.currentIndent > 0 {
			l.currentIndent--
			return Token{Type: tokenDedent, Pos: l.pos()}, nil
		}
		return Token{Type: tokenEOF, Pos: l.pos()}, nil
	}
	switch c := l.peek(); {
	case c == '\'' || c == '"':
		return l.loadString()
	case isDigit(c):
		return l.loadNumber()
	case isIdOpening(c):
		return l.loadId()
	default:
		return l.loadOperator()
	}
}

// lineIndent measures the leading spaces of a line and pushes the INDENT or
// DEDENT run needed to reach the new level. Lines holding only spaces are
// skipped without touching the indentation state.
func (l *Lexer) lineIndent() error {
	count := 0
	for l.peek() == ' ' {
		l.advance()
		count++
	}
	if l.peek() == '\n' || l.eof() {
		return nil
	}
	if count%2 != 0 {
		return &LexerError{Msg: "indentation is not a multiple of two spaces", Pos: l.pos()}
	}
	level := count / 2
	typ := tokenIndent
	if level < l.currentIndent {
		typ = tokenDedent
	}
	for i := l.currentIndent; i != level; {
		l.tokens = append(l.tokens, Token{Type: typ, Pos: l.pos()})
		if typ == tokenIndent {
			i++
		} else {
			i--
		}
	}
	l.currentIndent = level
	l.atLineStart = false
	return nil
}

func (l *Lexer) loadString() (Token, error) {
	pos := l.pos()
	quote := l.advance()
	var b strings.Builder
	for {
		if l.eof() {
			return Token{}, &LexerError{Msg: "unterminated string literal", Pos: pos}
		}
		c := l.advance()
		switch {
		case c == quote:
			return Token{Type: tokenString, Literal: b.String(), Pos: pos}, nil
		case c == '\\':
			if l.eof() {
				return Token{}, &LexerError{Msg: "unterminated string literal", Pos: pos}
			}
			switch e := l.advance(); e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\'':
				b.WriteByte('\'')
			case '"':
				b.WriteByte('"')
			default:
				return Token{}, &LexerError{Msg: "unrecognized escape sequence \\" + string(e), Pos: pos}
			}
		case c == '\n' || c == '\r':
			return Token{}, &LexerError{Msg: "unexpected end of line inside string literal", Pos: pos}
		default:
			b.WriteByte(c)
		}
	}
}

func (l *Lexer) loadNumber() (Token, error) {
	pos := l.pos()
	start := l.offset
	for isDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: tokenNumber, Literal: l.input[start:l.offset], Pos: pos}, nil
}

func (l *Lexer) loadId() (Token, error) {
	pos := l.pos()
	start := l.offset
	for isIdCharacter(l.peek()) {
		l.advance()
	}
	word := l.input[start:l.offset]
	if typ, ok := keywordTokens[word]; ok {
		return Token{Type: typ, Literal: word, Pos: pos}, nil
	}
	return Token{Type: tokenId, Literal: word, Pos: pos}, nil
}

func (l *Lexer) loadOperator() (Token, error) {
	pos := l.pos()
	c := l.advance()
	if (c == '=' || c == '!' || c == '<' || c == '>') && l.peek() == '=' {
		l.advance()
		var typ TokenType
		switch c {
		case '=':
			typ = tokenEq
		case '!':
			typ = tokenNotEq
		case '<':
			typ = tokenLessOrEq
		case '>':
			typ = tokenGreaterOrEq
		}
		return Token{Type: typ, Literal: string(typ), Pos: pos}, nil
	}
	return Token{Type: tokenChar, Literal: string(c), Pos: pos}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdOpening(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || c == '_'
}

func isIdCharacter(c byte) bool {
	return isIdOpening(c) || isDigit(c)
}
