package gf256

import (
	"bufio"
	"fmt"
	"io"
	"iter"
)

// Steps is the number of pairs produced by Enumerate. The last step wraps
// back around to the multiplicative identity.
const Steps = 256

// Enumerate walks the powers of the generator starting at 1, yielding
// (index, element) pairs. The underlying walk is recomputed on every range,
// so the sequence can be consumed any number of times.
func (f *Field) Enumerate() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		low := byte(f.poly & 0xFF)
		x := byte(1)
		for i := 0; i < Steps; i++ {
			if !yield(i, x) {
				return
			}
			x = mulSlow(x, f.gen, low)
		}
	}
}

// Dump writes one line per enumeration step in the form
// "idx: bbbbbbbb (hh)".
func (f *Field) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, v := range f.Enumerate() {
		if _, err := fmt.Fprintf(bw, "%3d: %08b (%02x)\n", i, v, v); err != nil {
			return fmt.Errorf("failed to write step %d: %w", i, err)
		}
	}
	return bw.Flush()
}
