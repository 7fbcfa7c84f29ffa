package gf256

import "fmt"

// PrimitivePolynomials lists, in ascending order, every degree-8 polynomial
// under which gen generates the whole multiplicative group.
func PrimitivePolynomials(gen byte) []uint16 {
	var polys []uint16
	for p := uint16(0x100); p <= 0x1FF; p++ {
		if _, err := New(WithPolynomial(p), WithGenerator(gen)); err == nil {
			polys = append(polys, p)
		}
	}
	return polys
}

// GeneratorOrder returns the multiplicative order of gen under poly, walking
// the powers of gen until they return to 1. It returns 0 when the walk hits
// zero or enters a cycle that never contains 1.
func GeneratorOrder(poly uint16, gen byte) (int, error) {
	if poly <= 0xFF {
		poly |= 0x100
	}
	if poly > 0x1FF {
		return 0, fmt.Errorf("%w: 0x%x is not of degree 8", ErrInvalidPolynomial, poly)
	}
	low := byte(poly & 0xFF)
	x := gen
	for i := 1; i <= Order; i++ {
		if x == 1 {
			return i, nil
		}
		if x == 0 {
			return 0, nil
		}
		x = mulSlow(x, gen, low)
	}
	return 0, nil
}
