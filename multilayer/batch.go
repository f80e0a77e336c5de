package multilayer

// matrix2x2 is a single complex 2×2 matrix, m[row][col].
type matrix2x2 [2][2]complex128

// batch2x2 is a family of 2×2 complex matrices indexed by wavelength:
// b[row][col][i] is entry (row, col) of the matrix at wavelength i.
// All four entry slices have the same length.
type batch2x2 [2][2][]complex128

func newBatch(n int) batch2x2 {
	var b batch2x2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			b[r][c] = make([]complex128, n)
		}
	}
	return b
}

// fillBatch returns a batch with every matrix equal to m.
func fillBatch(n int, m matrix2x2) batch2x2 {
	b := newBatch(n)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			for i := 0; i < n; i++ {
				b[r][c][i] = m[r][c]
			}
		}
	}
	return b
}

func (b batch2x2) len() int { return len(b[0][0]) }

// at extracts the matrix at wavelength i.
func (b batch2x2) at(i int) matrix2x2 {
	return matrix2x2{
		{b[0][0][i], b[0][1][i]},
		{b[1][0][i], b[1][1][i]},
	}
}

func (b batch2x2) set(i int, m matrix2x2) {
	b[0][0][i], b[0][1][i] = m[0][0], m[0][1]
	b[1][0][i], b[1][1][i] = m[1][0], m[1][1]
}

// cascade combines two scattering matrices with the Redheffer star product,
// a being the upper one and b the lower one.
func cascade(a, b matrix2x2) matrix2x2 {
	t := 1 / (1 - b[0][0]*a[1][1])
	return matrix2x2{
		{a[0][0] + a[0][1]*b[0][0]*a[1][0]*t, a[0][1] * b[0][1] * t},
		{b[1][0] * a[1][0] * t, b[1][1] + a[1][1]*b[0][1]*b[1][0]*t},
	}
}

// mul is the ordinary matrix product a·b.
func mul(a, b matrix2x2) matrix2x2 {
	return matrix2x2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

// cascadeBatch applies cascade wavelength by wavelength.
func cascadeBatch(a, b batch2x2) batch2x2 {
	n := a.len()
	out := newBatch(n)
	for i := 0; i < n; i++ {
		out.set(i, cascade(a.at(i), b.at(i)))
	}
	return out
}

// mulBatch applies mul wavelength by wavelength.
func mulBatch(a, b batch2x2) batch2x2 {
	n := a.len()
	out := newBatch(n)
	for i := 0; i < n; i++ {
		out.set(i, mul(a.at(i), b.at(i)))
	}
	return out
}
