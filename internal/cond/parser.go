package cond

import (
	"expcollapse/internal/registry"
)

// Parser consumes tokens produced by the lexer and builds a condition AST.
// Every dimension reference is validated against the registry as it is
// parsed; bare references to boolean dimensions are desugared into equality
// tests so that the evaluator and minimizer only ever see comparisons.
type Parser struct {
	tokens  []Token
	current int
	reg     *registry.Registry
}

// Parse parses condition text into an expression.
func Parse(input string, reg *registry.Registry) (Expr, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, reg: reg}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, parseErrorf(tok.Position, "unexpected %s after condition", tok.Type)
	}
	return expr, nil
}

// parseOr parses: and_expr ("or" and_expr)*
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.keyword("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = OrExpr{Left: left, Right: right}
	}
	return left, nil
}

// parseAnd parses: unary ("and" unary)*
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.keyword("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = AndExpr{Left: left, Right: right}
	}
	return left, nil
}

// parseUnary parses: "not" unary | atom
func (p *Parser) parseUnary() (Expr, error) {
	if p.keyword("not") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NotExpr{Operand: operand}, nil
	}
	return p.parseAtom()
}

// parseAtom parses: "(" expr ")" | comparison | bare_dimension
func (p *Parser) parseAtom() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenLParen:
		p.current++
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != TokenRParen {
			return nil, parseErrorf(closing.Position, "expected ')', found %s", closing.Type)
		}
		p.current++
		return expr, nil

	case TokenIdent:
		return p.parseComparison()

	default:
		return nil, parseErrorf(tok.Position, "expected condition, found %s", tok.Type)
	}
}

// parseComparison parses a dimension reference, either bare or followed by
// an equality operator and a literal. '!=' is desugared to a negated '=='.
func (p *Parser) parseComparison() (Expr, error) {
	name := p.peek()
	p.current++

	dim, ok := p.reg.Lookup(name.Value)
	if !ok {
		return nil, &ParseError{
			Pos: name.Position,
			Msg: "unknown dimension " + `"` + name.Value + `"`,
			Err: ErrUnknownDimension,
		}
	}

	op := p.peek()
	if op.Type != TokenEq && op.Type != TokenNeq {
		// Bare reference: sugar for "dimension is truthy".
		if !dim.Boolean {
			return nil, parseErrorf(name.Position, "dimension %q is not boolean-like and needs a comparison", dim.Name)
		}
		return CompareExpr{Dim: dim.Name, Value: "true"}, nil
	}
	p.current++

	lit := p.peek()
	if lit.Type != TokenString && lit.Type != TokenInt {
		return nil, parseErrorf(lit.Position, "expected literal value, found %s", lit.Type)
	}
	p.current++

	if !p.reg.HasValue(dim.Name, lit.Value) {
		return nil, &ParseError{
			Pos: lit.Position,
			Msg: "value " + `"` + lit.Value + `"` + " not in the domain of dimension " + `"` + dim.Name + `"`,
			Err: ErrUnknownDimension,
		}
	}

	cmp := CompareExpr{Dim: dim.Name, Value: lit.Value}
	if op.Type == TokenNeq {
		return NotExpr{Operand: cmp}, nil
	}
	return cmp, nil
}

// keyword consumes the next token if it is the given keyword identifier.
func (p *Parser) keyword(kw string) bool {
	tok := p.peek()
	if tok.Type == TokenIdent && tok.Value == kw {
		p.current++
		return true
	}
	return false
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: len(p.tokens)}
	}
	return p.tokens[p.current]
}
