package cond

import "unicode"

// Lexer is responsible for scanning condition text and producing tokens.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a new Lexer with the given input and initializes state.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the entire input and produces the list of tokens.
// It fails with a ParseError on characters outside the condition grammar.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		currentPos := l.position
		switch c := l.input[l.position]; {
		case isWhitespace(c):
			l.position++

		case c == '(':
			l.addToken(TokenLParen, "(", currentPos)
			l.position++

		case c == ')':
			l.addToken(TokenRParen, ")", currentPos)
			l.position++

		case c == '=':
			if l.position+1 < len(l.input) && l.input[l.position+1] == '=' {
				l.addToken(TokenEq, "==", currentPos)
				l.position += 2
				continue
			}
			return nil, parseErrorf(currentPos, "unexpected '=', did you mean '=='")

		case c == '!':
			if l.position+1 < len(l.input) && l.input[l.position+1] == '=' {
				l.addToken(TokenNeq, "!=", currentPos)
				l.position += 2
				continue
			}
			return nil, parseErrorf(currentPos, "unexpected '!', did you mean '!='")

		case c == '"':
			if err := l.lexString(currentPos); err != nil {
				return nil, err
			}

		case isDigit(c):
			l.lexInt(currentPos)

		case isIdentStart(c):
			l.lexIdent(currentPos)

		default:
			return nil, parseErrorf(currentPos, "unexpected character %q", string(c))
		}
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// lexString scans a double-quoted literal. The token value is the unquoted
// content; the dialect has no escape sequences.
func (l *Lexer) lexString(startPos int) error {
	l.position++ // consume opening quote
	start := l.position
	for l.position < len(l.input) {
		if l.input[l.position] == '"' {
			l.addToken(TokenString, l.input[start:l.position], startPos)
			l.position++
			return nil
		}
		l.position++
	}
	return parseErrorf(startPos, "unterminated string literal")
}

// lexInt scans consecutive digits to produce one TokenInt.
func (l *Lexer) lexInt(startPos int) {
	start := l.position
	for l.position < len(l.input) && isDigit(l.input[l.position]) {
		l.position++
	}
	l.addToken(TokenInt, l.input[start:l.position], startPos)
}

// lexIdent scans an identifier: a dimension name or a keyword.
func (l *Lexer) lexIdent(startPos int) {
	start := l.position
	for l.position < len(l.input) && isIdentPart(l.input[l.position]) {
		l.position++
	}
	l.addToken(TokenIdent, l.input[start:l.position], startPos)
}

// addToken is a helper to append a new token to the lexer's token list.
func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

func isWhitespace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
