// Package parser turns filter-language source text into expr trees.
//
// Grammar, lowest precedence first:
//
//	expr      := andExpr  (("or"|"nor"|"xor") andExpr)*
//	andExpr   := cmpExpr  (("and"|"nand") cmpExpr)*
//	cmpExpr   := addExpr  (("="|"!="|"matches") addExpr)*
//	addExpr   := mulExpr  (("+"|"-") mulExpr)*
//	mulExpr   := unary    (("*"|"/") unary)*
//	unary     := ("not"|"+"|"-") unary | primary
//	primary   := int | string | "true" | "false" | "empty"
//	           | identifier | "(" expr ")"
//
// Assignments are "identifier := expr". Binary operators at the same
// level associate left. Nesting is capped at maxDepth to keep
// maliciously deep input from exhausting the stack.
package parser

import (
	"fmt"
	"strconv"

	"github.com/randalmurphal/chatward/pkg/chatward/expr"
)

// maxDepth caps expression nesting (parentheses and unary chains).
const maxDepth = 128

// SyntaxError reports a lexing or parsing failure with its byte
// position in the source.
type SyntaxError struct {
	Pos int
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

type parser struct {
	lex   *lexer
	tok   token
	depth int
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseExpression parses a complete expression; trailing input is an
// error.
func ParseExpression(src string) (expr.Expression, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseAssignment parses an "identifier := expression" directive.
func ParseAssignment(src string) (expr.Assignment, error) {
	p, err := newParser(src)
	if err != nil {
		return expr.Assignment{}, err
	}
	if p.tok.typ != tokenIdent {
		return expr.Assignment{}, p.errorf("expected identifier, found %s", p.describe())
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return expr.Assignment{}, err
	}
	if p.tok.typ != tokenAssign {
		return expr.Assignment{}, p.errorf(`expected ":=", found %s`, p.describe())
	}
	if err := p.advance(); err != nil {
		return expr.Assignment{}, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return expr.Assignment{}, err
	}
	if err := p.expectEOF(); err != nil {
		return expr.Assignment{}, err
	}
	return expr.Assignment{Identifier: name, Expression: e}, nil
}

// ParseIdentifier parses a bare identifier.
func ParseIdentifier(src string) (string, error) {
	p, err := newParser(src)
	if err != nil {
		return "", err
	}
	if p.tok.typ != tokenIdent {
		return "", p.errorf("expected identifier, found %s", p.describe())
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return "", err
	}
	if err := p.expectEOF(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) describe() string {
	if p.tok.typ == tokenEOF {
		return "end of input"
	}
	return strconv.Quote(p.tok.text)
}

func (p *parser) expectEOF() error {
	if p.tok.typ != tokenEOF {
		return p.errorf("unexpected trailing input %s", p.describe())
	}
	return nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf("expression nested deeper than %d levels", maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// operatorAt returns the binary operator of the current token if it
// is one of want.
func (p *parser) operatorAt(want ...expr.Operator) (expr.Operator, bool) {
	if p.tok.typ != tokenKeywordOp && p.tok.typ != tokenSymbolOp {
		return "", false
	}
	op := expr.Operator(p.tok.text)
	for _, w := range want {
		if op == w {
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseBinaryLevel(next func() (expr.Expression, error), ops ...expr.Operator) (expr.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.operatorAt(ops...)
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &expr.BinaryOp{Left: left, Operator: op, Right: right}
	}
}

func (p *parser) parseExpr() (expr.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseBinaryLevel(p.parseAndExpr, expr.OpOr, expr.OpNor, expr.OpXor)
}

func (p *parser) parseAndExpr() (expr.Expression, error) {
	return p.parseBinaryLevel(p.parseCmpExpr, expr.OpAnd, expr.OpNand)
}

func (p *parser) parseCmpExpr() (expr.Expression, error) {
	return p.parseBinaryLevel(p.parseAddExpr, expr.OpEqual, expr.OpNotEqual, expr.OpMatches)
}

func (p *parser) parseAddExpr() (expr.Expression, error) {
	return p.parseBinaryLevel(p.parseMulExpr, expr.OpPlus, expr.OpMinus)
}

func (p *parser) parseMulExpr() (expr.Expression, error) {
	return p.parseBinaryLevel(p.parseUnary, expr.OpMultiply, expr.OpDivide)
}

func (p *parser) parseUnary() (expr.Expression, error) {
	if op, ok := p.operatorAt(expr.OpNot, expr.OpPlus, expr.OpMinus); ok {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &expr.UnaryOp{Expression: inner, Operator: op}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (expr.Expression, error) {
	tok := p.tok
	switch tok.typ {
	case tokenInt:
		i, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, p.errorf("integer literal %s out of range", tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &expr.Literal{Value: expr.Int(i)}, nil

	case tokenStr:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &expr.Literal{Value: expr.Str(tok.text)}, nil

	case tokenBool:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &expr.Literal{Value: expr.Bool(tok.text == "true")}, nil

	case tokenEmpty:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &expr.Literal{Value: expr.Empty()}, nil

	case tokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &expr.Identifier{Name: tok.text}, nil

	case tokenLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.typ != tokenRParen {
			return nil, p.errorf(`expected ")", found %s`, p.describe())
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.errorf("expected expression, found %s", p.describe())
	}
}
