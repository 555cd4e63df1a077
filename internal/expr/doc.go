// Package expr normalizes recognised text and evaluates it as arithmetic.
//
// Evaluation is delegated to goja, an ECMAScript engine written in Go, so
// operator precedence, number parsing and IEEE 754 semantics are those of
// JavaScript: 2+3*4 is 14, 10/0 is Infinity, 0/0 is NaN and 0.1+0.2 is
// 0.30000000000000004.
//
// Because the engine can run arbitrary code, Evaluate only accepts the
// characters an arithmetic expression needs (digits, + - * / ( ) . and one
// trailing =). Anything else is rejected before goja sees it.
//
// Handwritten forms are rewritten before evaluation: 2(3+4) and (1+2)(3+4)
// multiply, and 2--3 is two minus minus three rather than a decrement.
//
// Every failure wraps one of the package's sentinel errors so callers can use
// errors.Is; the solve endpoint collapses them all into a single message.
package expr
