package mython

import (
	"fmt"
	"strconv"
)

// parser is a recursive-descent parser over the lexer's buffered token
// stream. It fails fast: the first syntax error aborts the parse.
type parser struct {
	lx *Lexer

	// classes records every class definition seen so far, so later class
	// references (instantiations, parent clauses) resolve statically.
	classes map[string]*ClassDef
}

func newParser(lx *Lexer) *parser {
	return &parser{lx: lx, classes: make(map[string]*ClassDef)}
}

func (p *parser) cur() Token {
	return p.lx.CurrentToken()
}

func (p *parser) advance() Token {
	return p.lx.NextToken()
}

func (p *parser) errf(pos Position, format string, args ...any) error {
	return &parseError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expectChar(c byte) error {
	if !p.cur().IsChar(c) {
		return p.errf(p.cur().Pos, "expected %q, got %q", string(c), p.cur().Literal)
	}
	p.advance()
	return nil
}

func (p *parser) expectType(t TokenType) (Token, error) {
	tok := p.cur()
	if tok.Type != t {
		return Token{}, p.errf(tok.Pos, "expected %s, got %s", t, tok.Type)
	}
	p.advance()
	return tok, nil
}

func (p *parser) parseProgram() ([]Statement, error) {
	var stmts []Statement
	for p.cur().Type != tokenEOF {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return stmts, nil
}

func (p *parser) parseStatement() (Statement, error) {
	switch p.cur().Type {
	case tokenClass:
		return p.parseClassDef()
	case tokenIf:
		return p.parseIf()
	case tokenReturn:
		return p.parseReturn()
	case tokenPrint:
		return p.parsePrint()
	case tokenDef:
		return nil, p.errf(p.cur().Pos, "def is only allowed inside a class body")
	default:
		return p.parseExprOrAssign()
	}
}

func (p *parser) parseClassDef() (Statement, error) {
	pos := p.cur().Pos
	p.advance()
	nameTok, err := p.expectType(tokenId)
	if err != nil {
		return nil, err
	}
	parentName := ""
	if p.cur().IsChar('(') {
		p.advance()
		parentTok, err := p.expectType(tokenId)
		if err != nil {
			return nil, err
		}
		parentName = parentTok.Literal
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenIndent); err != nil {
		return nil, err
	}
	// Registered before the methods are parsed, so method bodies can
	// instantiate their own class.
	class := &ClassDef{Name: nameTok.Literal, Parent: p.classes[parentName]}
	p.classes[class.Name] = class
	var methods []Method
	for p.cur().Type != tokenDedent {
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	p.advance()
	class.Methods = methods
	return &ClassDefStmt{Class: class, ParentName: parentName, position: pos}, nil
}

func (p *parser) parseMethod() (Method, error) {
	if _, err := p.expectType(tokenDef); err != nil {
		return Method{}, err
	}
	nameTok, err := p.expectType(tokenId)
	if err != nil {
		return Method{}, err
	}
	if err := p.expectChar('('); err != nil {
		return Method{}, err
	}
	var params []string
	if !p.cur().IsChar(')') {
		for {
			paramTok, err := p.expectType(tokenId)
			if err != nil {
				return Method{}, err
			}
			params = append(params, paramTok.Literal)
			if !p.cur().IsChar(',') {
				break
			}
			p.advance()
		}
	}
	if err := p.expectChar(')'); err != nil {
		return Method{}, err
	}
	// The declared self receives its binding from the dispatcher, not from
	// the argument list, so it is not a formal parameter.
	if len(params) > 0 && params[0] == "self" {
		params = params[1:]
	}
	body, err := p.parseSuite()
	if err != nil {
		return Method{}, err
	}
	return Method{
		Name:         nameTok.Literal,
		FormalParams: params,
		Body:         &MethodBody{Body: body},
	}, nil
}

// parseSuite consumes `: NEWLINE INDENT statements DEDENT`.
func (p *parser) parseSuite() (*BlockStmt, error) {
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	indent, err := p.expectType(tokenIndent)
	if err != nil {
		return nil, err
	}
	var stmts []Statement
	for p.cur().Type != tokenDedent {
		if p.cur().Type == tokenEOF {
			return nil, p.errf(p.cur().Pos, "unexpected end of input inside a block")
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	p.advance()
	return &BlockStmt{Stmts: stmts, position: indent.Pos}, nil
}

func (p *parser) parseIf() (Statement, error) {
	pos := p.cur().Pos
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var els *BlockStmt
	if p.cur().Type == tokenElse {
		p.advance()
		els, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els, position: pos}, nil
}

func (p *parser) parseReturn() (Statement, error) {
	pos := p.cur().Pos
	p.advance()
	if p.cur().Type == tokenNewline {
		p.advance()
		return &ReturnStmt{position: pos}, nil
	}
	v, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: v, position: pos}, nil
}

func (p *parser) parsePrint() (Statement, error) {
	pos := p.cur().Pos
	p.advance()
	var args []Statement
	if p.cur().Type != tokenNewline {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.cur().IsChar(',') {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	return &PrintStmt{Args: args, position: pos}, nil
}

func (p *parser) parseExprOrAssign() (Statement, error) {
	pos := p.cur().Pos
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().IsChar('=') {
		target, ok := expr.(*VarRef)
		if !ok {
			return nil, p.errf(pos, "invalid assignment target")
		}
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectType(tokenNewline); err != nil {
			return nil, err
		}
		if len(target.Ids) == 1 {
			return &AssignStmt{Name: target.Ids[0], Value: rhs, position: pos}, nil
		}
		object := &VarRef{Ids: target.Ids[:len(target.Ids)-1], position: target.position}
		return &FieldAssignStmt{
			Object:   object,
			Field:    target.Ids[len(target.Ids)-1],
			Value:    rhs,
			position: pos,
		}, nil
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseExpr() (Statement, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Statement, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == tokenOr {
		pos := p.cur().Pos
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &LogicalExpr{Op: tokenOr, Lhs: lhs, Rhs: rhs, position: pos}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (Statement, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == tokenAnd {
		pos := p.cur().Pos
		p.advance()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &LogicalExpr{Op: tokenAnd, Lhs: lhs, Rhs: rhs, position: pos}
	}
	return lhs, nil
}

func (p *parser) parseNot() (Statement, error) {
	if p.cur().Type == tokenNot {
		pos := p.cur().Pos
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Arg: arg, position: pos}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Statement, error) {
	lhs, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	op := ""
	switch {
	case p.cur().Type == tokenEq:
		op = "=="
	case p.cur().Type == tokenNotEq:
		op = "!="
	case p.cur().Type == tokenLessOrEq:
		op = "<="
	case p.cur().Type == tokenGreaterOrEq:
		op = ">="
	case p.cur().IsChar('<'):
		op = "<"
	case p.cur().IsChar('>'):
		op = ">"
	}
	if op == "" {
		return lhs, nil
	}
	pos := p.cur().Pos
	p.advance()
	rhs, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	return &ComparisonExpr{Op: op, Lhs: lhs, Rhs: rhs, position: pos}, nil
}

func (p *parser) parseAddSub() (Statement, error) {
	lhs, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.cur().IsChar('+') || p.cur().IsChar('-') {
		op := p.cur().Literal[0]
		pos := p.cur().Pos
		p.advance()
		rhs, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, position: pos}
	}
	return lhs, nil
}

func (p *parser) parseMulDiv() (Statement, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().IsChar('*') || p.cur().IsChar('/') {
		op := p.cur().Literal[0]
		pos := p.cur().Pos
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, position: pos}
	}
	return lhs, nil
}

func (p *parser) parseUnary() (Statement, error) {
	if p.cur().IsChar('-') {
		pos := p.cur().Pos
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if lit, ok := operand.(*NumberLit); ok {
			return &NumberLit{Value: -lit.Value, position: pos}, nil
		}
		return &BinaryExpr{Op: '-', Lhs: &NumberLit{position: pos}, Rhs: operand, position: pos}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Statement, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur().IsChar('.') {
		p.advance()
		nameTok, err := p.expectType(tokenId)
		if err != nil {
			return nil, err
		}
		if p.cur().IsChar('(') {
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			base = &MethodCallExpr{Object: base, Method: nameTok.Literal, Args: args, position: nameTok.Pos}
			continue
		}
		vr, ok := base.(*VarRef)
		if !ok {
			return nil, p.errf(nameTok.Pos, "expected %q after method name %q", "(", nameTok.Literal)
		}
		ids := make([]string, 0, len(vr.Ids)+1)
		ids = append(ids, vr.Ids...)
		ids = append(ids, nameTok.Literal)
		base = &VarRef{Ids: ids, position: vr.position}
	}
	return base, nil
}

func (p *parser) parseCallArgs() ([]Statement, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var args []Statement
	if !p.cur().IsChar(')') {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.cur().IsChar(',') {
				break
			}
			p.advance()
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (Statement, error) {
	tok := p.cur()
	switch {
	case tok.Type == tokenNumber:
		p.advance()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errf(tok.Pos, "number literal %q out of range", tok.Literal)
		}
		return &NumberLit{Value: value, position: tok.Pos}, nil
	case tok.Type == tokenString:
		p.advance()
		return &StringLit{Value: tok.Literal, position: tok.Pos}, nil
	case tok.Type == tokenTrue:
		p.advance()
		return &BoolLit{Value: true, position: tok.Pos}, nil
	case tok.Type == tokenFalse:
		p.advance()
		return &BoolLit{Value: false, position: tok.Pos}, nil
	case tok.Type == tokenNone:
		p.advance()
		return &NoneLit{position: tok.Pos}, nil
	case tok.Type == tokenId:
		p.advance()
		if p.cur().IsChar('(') {
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			if tok.Literal == "str" {
				if len(args) != 1 {
					return nil, p.errf(tok.Pos, "str expects exactly one argument, got %d", len(args))
				}
				return &StringifyExpr{Arg: args[0], position: tok.Pos}, nil
			}
			return &NewInstanceExpr{
				ClassName: tok.Literal,
				Class:     p.classes[tok.Literal],
				Args:      args,
				position:  tok.Pos,
			}, nil
		}
		return &VarRef{Ids: []string{tok.Literal}, position: tok.Pos}, nil
	case tok.IsChar('('):
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errf(tok.Pos, "unexpected token %s", describeToken(tok))
	}
}

func describeToken(tok Token) string {
	switch tok.Type {
	case tokenChar, tokenId, tokenNumber:
		return fmt.Sprintf("%q", tok.Literal)
	case tokenString:
		return "string literal"
	default:
		return string(tok.Type)
	}
}
