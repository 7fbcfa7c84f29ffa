// Package gf256 implements arithmetic in GF(2^8) using exp and log tables
// built from a configurable primitive polynomial.
package gf256

import (
	"fmt"
	"sync"
)

const (
	// DefaultPolynomial is x^8 + x^4 + x^3 + x^2 + 1.
	DefaultPolynomial uint16 = 0x11D

	// DefaultGenerator is the element x.
	DefaultGenerator byte = 2

	// Order is the size of the multiplicative group.
	Order = 255
)

// Field holds the exp and log tables of one GF(2^8) instance. A Field is
// immutable once built and safe for concurrent use.
type Field struct {
	poly uint16
	gen  byte
	exp  [Order]byte
	log  [256]byte
}

// Option configures a Field.
type Option func(*options)

type options struct {
	poly uint16
	gen  byte
}

// WithPolynomial sets the reduction polynomial. Both the full 9-bit form
// (0x11D) and the low byte alone (0x1D) are accepted.
func WithPolynomial(poly uint16) Option {
	return func(o *options) {
		if poly <= 0xFF {
			poly |= 0x100
		}
		o.poly = poly
	}
}

// WithGenerator sets the element whose powers fill the exp table.
func WithGenerator(gen byte) Option {
	return func(o *options) {
		o.gen = gen
	}
}

// New builds the tables for the given polynomial and generator. It returns
// ErrInvalidPolynomial when the generator's powers do not cover all 255
// nonzero elements.
func New(opts ...Option) (*Field, error) {
	o := options{poly: DefaultPolynomial, gen: DefaultGenerator}
	for _, opt := range opts {
		opt(&o)
	}

	if o.poly < 0x100 || o.poly > 0x1FF {
		return nil, fmt.Errorf("%w: 0x%x is not of degree 8", ErrInvalidPolynomial, o.poly)
	}
	if o.gen == 0 {
		return nil, fmt.Errorf("%w: generator cannot be zero", ErrInvalidPolynomial)
	}

	f := &Field{poly: o.poly, gen: o.gen}
	low := byte(o.poly & 0xFF)

	var seen [256]bool
	x := byte(1)
	for i := 0; i < Order; i++ {
		if x == 0 || seen[x] {
			return nil, fmt.Errorf("%w: generator 0x%02x has order %d under polynomial 0x%x",
				ErrInvalidPolynomial, o.gen, i, o.poly)
		}
		seen[x] = true
		f.exp[i] = x
		f.log[x] = byte(i)

		x = mulSlow(x, o.gen, low)
	}
	if x != 1 {
		return nil, fmt.Errorf("%w: generator 0x%02x does not return to 1 under polynomial 0x%x",
			ErrInvalidPolynomial, o.gen, o.poly)
	}

	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Field {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

var defaultField = sync.OnceValue(func() *Field {
	return MustNew()
})

// Default returns the shared field for polynomial 0x11D and generator 2.
func Default() *Field {
	return defaultField()
}

// double multiplies a by x, reducing with the low byte of the polynomial.
func double(a, low byte) byte {
	if a&0x80 != 0 {
		return (a << 1) ^ low
	}
	return a << 1
}

// mulSlow multiplies without tables. It is only used while the tables are
// being built.
func mulSlow(a, b, low byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = double(a, low)
		b >>= 1
	}
	return p
}

// Polynomial returns the full 9-bit reduction polynomial.
func (f *Field) Polynomial() uint16 { return f.poly }

// Generator returns the generator the tables were built from.
func (f *Field) Generator() byte { return f.gen }

// Add returns a + b, which is XOR in characteristic 2.
func (f *Field) Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b. Subtraction and addition coincide.
func (f *Field) Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b.
func (f *Field) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(int(f.log[a])+int(f.log[b]))%Order]
}

// Div returns a / b.
func (f *Field) Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	return f.exp[(int(f.log[a])-int(f.log[b])+Order)%Order], nil
}

// Inverse returns the multiplicative inverse of a.
func (f *Field) Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	return f.exp[(Order-int(f.log[a]))%Order], nil
}

// Pow returns a^n. 0^0 is 1; 0 raised to a negative power is
// ErrDivisionByZero.
func (f *Field) Pow(a byte, n int) (byte, error) {
	if n == 0 {
		return 1, nil
	}
	if a == 0 {
		if n < 0 {
			return 0, ErrDivisionByZero
		}
		return 0, nil
	}
	return f.exp[(int(f.log[a])*reduce(n))%Order], nil
}

// Exp returns generator^i.
func (f *Field) Exp(i int) byte {
	return f.exp[reduce(i)]
}

// Log returns the exponent e such that generator^e == a.
func (f *Field) Log(a byte) (int, error) {
	if a == 0 {
		return 0, ErrZeroLog
	}
	return int(f.log[a]), nil
}

// ExpTable returns a copy of the exp table.
func (f *Field) ExpTable() [Order]byte {
	return f.exp
}

// LogTable returns a copy of the log table. Index 0 holds 0 and carries no
// meaning.
func (f *Field) LogTable() [256]byte {
	return f.log
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(2^8) poly=0x%x gen=0x%02x", f.poly, f.gen)
}

// reduce maps n into [0, Order).
func reduce(n int) int {
	n %= Order
	if n < 0 {
		n += Order
	}
	return n
}
