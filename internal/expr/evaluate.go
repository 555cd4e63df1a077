package expr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// MaxLength is the longest expression Evaluate accepts.
const MaxLength = 256

// Allowed is the set of characters an expression may contain.
const Allowed = "0123456789+-*/()."

var (
	// ErrEmpty is returned for an empty expression.
	ErrEmpty = errors.New("empty expression")

	// ErrTooLong is returned for expressions longer than MaxLength.
	ErrTooLong = errors.New("expression too long")

	// ErrInvalidCharacter is returned when the expression contains a
	// character outside Allowed.
	ErrInvalidCharacter = errors.New("invalid character in expression")

	// ErrInvalidExpression is returned when the engine cannot parse or
	// evaluate the expression, or when it does not produce a number.
	ErrInvalidExpression = errors.New("invalid expression")
)

// Evaluate computes the value of an arithmetic expression.
//
// A single trailing "=" is accepted and ignored, since people photograph
// "2+2=" as often as "2+2". The input is not normalized; call Normalize first
// if it may contain whitespace.
//
// The context interrupts a running evaluation.
func Evaluate(ctx context.Context, expression string) (Value, error) {
	src, err := Validate(expression)
	if err != nil {
		return Value{}, err
	}
	if err := ctx.Err(); err != nil {
		return Value{}, err
	}

	prog, err := goja.Compile("expression", src, true)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	vm := goja.New()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	v, err := vm.RunProgram(prog)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if cause := interrupted.Unwrap(); cause != nil {
				return Value{}, cause
			}
			return Value{}, context.Canceled
		}
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return fromGoja(v)
}

// Validate checks an expression against the accepted character set and
// length, and returns the source to hand to the engine.
//
// Leading zeros are stripped from number literals: the engine would read 017
// as a legacy octal literal, where a person means seventeen. Implicit
// multiplication such as 2(3+4) gets an explicit "*", and runs of signs such
// as 2--3 are read as unary signs rather than increment or decrement.
func Validate(expression string) (string, error) {
	src := strings.TrimSuffix(expression, "=")
	if src == "" {
		return "", ErrEmpty
	}
	if len(src) > MaxLength {
		return "", fmt.Errorf("%w: %d characters", ErrTooLong, len(src))
	}
	if i := strings.IndexFunc(src, func(r rune) bool {
		return !strings.ContainsRune(Allowed, r)
	}); i >= 0 {
		return "", fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, src[i:i+1], i)
	}
	// "//" and "/*" would start comments and silently drop the rest.
	if strings.Contains(src, "//") || strings.Contains(src, "/*") {
		return "", fmt.Errorf("%w: comment token", ErrInvalidExpression)
	}
	return rewriteArithmetic(trimLeadingZeros(src)), nil
}

// rewriteArithmetic turns handwritten arithmetic into source the engine reads
// the same way: implicit multiplication gets an explicit "*" (2(3) and (1)(2)
// and (1)2), and adjacent signs are split so "2--3" is not a decrement.
func rewriteArithmetic(src string) string {
	var b strings.Builder
	b.Grow(len(src) * 2)

	for i := 0; i < len(src); i++ {
		c := src[i]
		if i > 0 {
			prev := src[i-1]
			operand := isDigit(prev) || prev == '.' || prev == ')'
			switch {
			case c == '(' && operand:
				b.WriteByte('*')
			case prev == ')' && (isDigit(c) || c == '.'):
				b.WriteByte('*')
			case isSign(prev) && isSign(c):
				b.WriteByte(' ')
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSign(c byte) bool { return c == '+' || c == '-' }

func trimLeadingZeros(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	atNumberStart := true
	for i := 0; i < len(src); i++ {
		c := src[i]
		if atNumberStart && c == '0' && i+1 < len(src) && isDigit(src[i+1]) {
			continue
		}
		b.WriteByte(c)
		atNumberStart = !isDigit(c) && c != '.'
	}
	return b.String()
}

func fromGoja(v goja.Value) (Value, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return Value{}, fmt.Errorf("%w: no value", ErrInvalidExpression)
	}

	switch n := v.Export().(type) {
	case int64:
		return Value{number: float64(n), text: v.String()}, nil
	case float64:
		return Value{number: n, text: v.String()}, nil
	default:
		return Value{}, fmt.Errorf("%w: result is %T, not a number", ErrInvalidExpression, n)
	}
}
