// Package transform holds the two 8×8 linear transforms the squash codec
// chooses between per block, their matching default quantization tables,
// and the zig-zag coefficient ordering used by the block packer.
//
// The DCT matrix is derived once at package init from the standard
// cosine formula. The Haar-style matrix and both quantization tables are
// fixed analytic constants and must never be recomputed — spec
// compatibility depends on using the exact values below, not an
// approximation.
package transform

import (
	"math"

	"github.com/efondere/squash/matrix"
)

// N is the transform side length.
const N = 8

// DCT is the Type-II DCT coefficient matrix: DCT[i][j] = (delta(i)/sqrt(N))
// * cos(pi*i*(2j+1)/(2N)). It is orthonormal, so DCT.Transpose() is the
// inverse of DCT.
var DCT = matrix.FromFunc(func(i, j int) float32 {
	return float32(delta(i) / math.Sqrt(float64(N)) * math.Cos(math.Pi*float64(i)*float64(2*j+1)/float64(2*N)))
})

// delta returns 1 for i == 0 and sqrt(2) otherwise, matching the DCT
// coefficient formula's delta(i) term.
func delta(i int) float64 {
	if i == 0 {
		return 1
	}
	return math.Sqrt2
}

// Haar is the fixed 8×8 analytic transform matrix used as the codec's
// second transform choice. It is not the classical 8-point Haar
// transform; each row is one of a small set of +-1/(2*sqrt2), +-1/2,
// +-1/sqrt2, 0 combinations, taken verbatim from the reference
// implementation to preserve file compatibility.
var Haar = func() matrix.Block[float32] {
	const (
		a = float32(0.35355339059327373) // 1 / (2*sqrt(2))
		b = float32(0.5)                 // 1 / 2
		c = float32(0.7071067811865476)  // 1 / sqrt(2)
	)
	return matrix.FromArray([N][N]float32{
		{a, a, b, 0, c, 0, 0, 0},
		{a, a, b, 0, -c, 0, 0, 0},
		{a, a, -b, 0, 0, c, 0, 0},
		{a, a, -b, 0, 0, -c, 0, 0},
		{a, -a, 0, b, 0, 0, c, 0},
		{a, -a, 0, b, 0, 0, -c, 0},
		{a, -a, 0, -b, 0, 0, 0, c},
		{a, -a, 0, -b, 0, 0, 0, -c},
	})
}()

// QDCTDefault is the default quantization table for the DCT transform.
var QDCTDefault = matrix.FromArray([N][N]uint8{
	{10, 16, 22, 28, 34, 40, 46, 52},
	{16, 22, 28, 34, 40, 46, 52, 58},
	{22, 28, 34, 40, 46, 52, 58, 64},
	{28, 34, 40, 46, 52, 58, 64, 70},
	{34, 40, 46, 52, 58, 64, 70, 76},
	{40, 46, 52, 58, 64, 70, 76, 82},
	{46, 52, 58, 64, 70, 76, 82, 88},
	{52, 58, 64, 70, 76, 82, 88, 94},
})

// QHaarDefault is the default quantization table for the Haar transform.
var QHaarDefault = matrix.FromArray([N][N]uint8{
	{8, 12, 16, 16, 24, 24, 24, 24},
	{12, 12, 16, 16, 24, 24, 24, 24},
	{16, 16, 24, 24, 32, 32, 32, 32},
	{16, 16, 24, 24, 32, 32, 32, 32},
	{24, 24, 32, 32, 38, 38, 38, 38},
	{24, 24, 32, 32, 38, 38, 38, 38},
	{24, 24, 32, 32, 38, 38, 38, 38},
	{24, 24, 32, 32, 38, 38, 38, 38},
})

// ZigZag is the fixed 64-entry ordering of row-major (row, col) positions
// that groups low-frequency coefficients first.
var ZigZag = [N * N][2]int{
	{0, 0}, {0, 1}, {1, 0}, {2, 0}, {1, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 1}, {3, 0},
	{4, 0}, {3, 1}, {2, 2}, {1, 3}, {0, 4}, {0, 5}, {1, 4}, {2, 3}, {3, 2}, {4, 1},
	{5, 0}, {6, 0}, {5, 1}, {4, 2}, {3, 3}, {2, 4}, {1, 5}, {0, 6}, {0, 7}, {1, 6},
	{2, 5}, {3, 4}, {4, 3}, {5, 2}, {6, 1}, {7, 0}, {7, 1}, {6, 2}, {5, 3}, {4, 4},
	{3, 5}, {2, 6}, {1, 7}, {2, 7}, {3, 6}, {4, 5}, {5, 4}, {6, 3}, {7, 2}, {7, 3},
	{6, 4}, {5, 5}, {4, 6}, {3, 7}, {4, 7}, {5, 6}, {6, 5}, {7, 4}, {7, 5}, {6, 6},
	{5, 7}, {6, 7}, {7, 6}, {7, 7},
}

// ZigZagOrder is the matrix.Order that walks a Block in ZigZag sequence.
func ZigZagOrder(idx int) (row, col int) {
	p := ZigZag[idx]
	return p[0], p[1]
}
