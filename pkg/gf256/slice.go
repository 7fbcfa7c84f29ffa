package gf256

// mulRow returns the products c*x for every x.
func (f *Field) mulRow(c byte) [256]byte {
	var row [256]byte
	if c == 0 {
		return row
	}
	lc := int(f.log[c])
	for x := 1; x < 256; x++ {
		row[x] = f.exp[(lc+int(f.log[x]))%Order]
	}
	return row
}

// MulSlice sets out[i] = c * in[i] for every element of in.
func (f *Field) MulSlice(c byte, in, out []byte) error {
	if len(out) < len(in) {
		return ErrShortBuffer
	}
	out = out[:len(in)]
	switch c {
	case 0:
		clear(out)
		return nil
	case 1:
		copy(out, in)
		return nil
	}
	row := f.mulRow(c)
	for n, input := range in {
		out[n] = row[input]
	}
	return nil
}

// MulSliceXor sets out[i] ^= c * in[i] for every element of in.
func (f *Field) MulSliceXor(c byte, in, out []byte) error {
	if len(out) < len(in) {
		return ErrShortBuffer
	}
	out = out[:len(in)]
	switch c {
	case 0:
		return nil
	case 1:
		return f.AddSlice(in, out)
	}
	row := f.mulRow(c)
	for n, input := range in {
		out[n] ^= row[input]
	}
	return nil
}

// AddSlice sets out[i] ^= in[i] for every element of in.
func (f *Field) AddSlice(in, out []byte) error {
	if len(out) < len(in) {
		return ErrShortBuffer
	}
	for n, input := range in {
		out[n] ^= input
	}
	return nil
}
