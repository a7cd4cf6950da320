package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenInt
	tokenStr
	tokenBool
	tokenEmpty
	tokenIdent
	tokenKeywordOp // not, and, nand, or, nor, xor, matches
	tokenSymbolOp  // = != + - * /
	tokenAssign    // :=
	tokenLParen
	tokenRParen
)

// token is one lexeme with its byte position in the source.
type token struct {
	typ tokenType
	pos int
	// text is the raw lexeme; for tokenStr it is the unescaped
	// string content.
	text string
}

var keywordOps = map[string]bool{
	"not": true, "and": true, "nand": true,
	"or": true, "nor": true, "xor": true,
	"matches": true,
}

// lexer turns filter source text into a token stream.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// next returns the next token, skipping whitespace.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.src) {
		return token{typ: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{typ: tokenLParen, pos: start, text: "("}, nil
	case c == ')':
		l.pos++
		return token{typ: tokenRParen, pos: start, text: ")"}, nil
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '=':
		l.pos++
		return token{typ: tokenSymbolOp, pos: start, text: string(c)}, nil
	case c == '!':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{typ: tokenSymbolOp, pos: start, text: "!="}, nil
		}
		return token{}, l.errorf(start, "unexpected character %q", string(c))
	case c == ':':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{typ: tokenAssign, pos: start, text: ":="}, nil
		}
		return token{}, l.errorf(start, "unexpected character %q", string(c))
	case c == '"':
		return l.lexString()
	case c >= '0' && c <= '9':
		return l.lexInt()
	case isIdentStart(rune(c)):
		return l.lexWord()
	default:
		return token{}, l.errorf(start, "unexpected character %q", string(c))
	}
}

func (l *lexer) lexString() (token, error) {
	start := l.pos
	l.pos++ // opening quote

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{typ: tokenStr, pos: start, text: b.String()}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, l.errorf(start, "unterminated string literal")
			}
			l.pos++
			switch l.src[l.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return token{}, l.errorf(l.pos, "invalid escape sequence \\%s", string(l.src[l.pos]))
			}
			l.pos++
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, l.errorf(start, "unterminated string literal")
}

func (l *lexer) lexInt() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}
	return token{typ: tokenInt, pos: start, text: l.src[start:l.pos]}, nil
}

func (l *lexer) lexWord() (token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	word := l.src[start:l.pos]

	switch {
	case word == "true" || word == "false":
		return token{typ: tokenBool, pos: start, text: word}, nil
	case word == "empty":
		return token{typ: tokenEmpty, pos: start, text: word}, nil
	case keywordOps[word]:
		return token{typ: tokenKeywordOp, pos: start, text: word}, nil
	default:
		return token{typ: tokenIdent, pos: start, text: word}, nil
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
