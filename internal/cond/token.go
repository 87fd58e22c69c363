package cond

import (
	"errors"
	"fmt"
)

// TokenType defines different types of tokens produced by the lexer.
type TokenType int

const (
	TokenIdent  TokenType = iota // dimension names and the and/or/not keywords
	TokenString                  // double-quoted value literal
	TokenInt                     // bare integer literal
	TokenEq                      // '=='
	TokenNeq                     // '!='
	TokenLParen                  // '('
	TokenRParen                  // ')'
	TokenEOF                     // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenInt:
		return "integer"
	case TokenEq:
		return "'=='"
	case TokenNeq:
		return "'!='"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenEOF:
		return "end of input"
	default:
		return "?"
	}
}

// Token represents a single lexical token with type, value, and position.
type Token struct {
	Type     TokenType
	Value    string // literal text; for strings, the unquoted value
	Position int    // byte offset of the token in the original input
}

// ErrUnknownDimension marks a condition referencing a dimension (or a
// domain value) the registry does not recognize.
var ErrUnknownDimension = errors.New("unknown dimension")

// ParseError describes a failure to parse a condition.
type ParseError struct {
	Pos int    // byte offset into the condition text
	Msg string
	Err error // optional underlying sentinel, e.g. ErrUnknownDimension
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Pos)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
