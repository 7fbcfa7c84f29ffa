package gf256

import "errors"

var (
	// ErrInvalidPolynomial is returned when a polynomial/generator pair does
	// not produce a multiplicative cycle of length 255.
	ErrInvalidPolynomial = errors.New("invalid polynomial")

	// ErrDivisionByZero is returned when the zero element is used as a
	// divisor, inverted, or raised to a negative power.
	ErrDivisionByZero = errors.New("division by zero in GF(256)")

	// ErrZeroLog is returned when asking for the logarithm of zero.
	ErrZeroLog = errors.New("logarithm of zero is undefined")

	// ErrShortBuffer is returned by the slice operations when the output is
	// shorter than the input.
	ErrShortBuffer = errors.New("output buffer shorter than input")
)
