// Package calculator evaluates the four-function expressions typed into
// the amount helper. Input is parsed, never executed.
package calculator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	// ErrSyntax is returned for malformed expressions.
	ErrSyntax = errors.New("syntax error")
	// ErrDivisionByZero is returned for x÷0 and x%0.
	ErrDivisionByZero = errors.New("division by zero")
)

// ResultPlaces is the number of decimal places results are rounded to.
const ResultPlaces = 10

// Evaluate parses and computes expr. Supported: decimal numbers,
// parentheses, unary minus and the binary operators + - × ÷ % (* and / are
// accepted as aliases). × ÷ % bind tighter than + -, all left associative.
func Evaluate(expr string) (decimal.Decimal, error) {
	p := &parser{input: []rune(expr)}
	p.skipSpace()
	if p.done() {
		return decimal.Zero, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	value, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpace()
	if !p.done() {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.peek(), p.pos+1)
	}
	return value.Round(ResultPlaces), nil
}

// Format renders a result the way the calculator display shows it: no
// trailing zeros, no exponent.
func Format(d decimal.Decimal) string {
	return d.String()
}

type parser struct {
	input []rune
	pos   int
}

func (p *parser) done() bool { return p.pos >= len(p.input) }

func (p *parser) peek() rune {
	if p.done() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.done() && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

// parseExpr: term (('+' | '-') term)*
func (p *parser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

// parseTerm: unary (('×' | '÷' | '%') unary)*
func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		op := normalizeOp(p.peek())
		if op != '*' && op != '/' && op != '%' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		switch op {
		case '*':
			left = left.Mul(right)
		case '/':
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			left = left.DivRound(right, ResultPlaces+6)
		case '%':
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			left = left.Mod(right)
		}
	}
}

// parseUnary: ('-' | '+') unary | primary
func (p *parser) parseUnary() (decimal.Decimal, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// parsePrimary: number | '(' expr ')'
func (p *parser) parsePrimary() (decimal.Decimal, error) {
	p.skipSpace()
	if p.done() {
		return decimal.Zero, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}

	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		p.pos++
		return v, nil
	}

	return p.parseNumber()
}

func (p *parser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	dots := 0
	for !p.done() {
		r := p.peek()
		if r == '.' {
			dots++
		} else if !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}

	literal := string(p.input[start:p.pos])
	if literal == "" {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.peek(), p.pos+1)
	}
	if dots > 1 || literal == "." {
		return decimal.Zero, fmt.Errorf("%w: invalid number %q", ErrSyntax, literal)
	}
	if strings.HasSuffix(literal, ".") {
		literal += "0"
	}
	if strings.HasPrefix(literal, ".") {
		literal = "0" + literal
	}
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid number %q", ErrSyntax, literal)
	}
	return d, nil
}

func normalizeOp(r rune) rune {
	switch r {
	case '×':
		return '*'
	case '÷':
		return '/'
	}
	return r
}
