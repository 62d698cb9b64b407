// Package pack implements the per-block serialization format: a one-byte
// descriptor followed by either a zig-zag prefix ("short form") or a
// 64-bit presence bitmap plus the nonzero coefficients ("long form").
package pack

import (
	"github.com/efondere/squash/matrix"
	"github.com/efondere/squash/transform"
)

// Bit masks for the info byte. Bits 5..0 hold the short-form count when
// IsLong is clear.
const (
	IsDCT  = 0x80
	IsLong = 0x40

	shortCountMask = 0x3F
	// innerZeroThreshold is the short/long form decision boundary from
	// the spec: more than this many zeros before the last nonzero
	// zig-zag coefficient and long form wins. Left exactly as specified;
	// no tuning rationale is recorded for the original value.
	innerZeroThreshold = 8
)

// CompressedBlock is one packed 8×8 coefficient block as it appears on
// disk: a descriptor byte, an optional presence bitmap, and the stored
// coefficients.
type CompressedBlock struct {
	InfoByte byte
	Table    uint64 // only meaningful when InfoByte&IsLong != 0
	Data     []int8
}

// IsLongForm reports whether b uses the long (bitmap) serialization.
func (b CompressedBlock) IsLongForm() bool {
	return b.InfoByte&IsLong != 0
}

// ShortCount returns the short-form coefficient count encoded in the low
// six bits of the info byte. Only meaningful when !IsLongForm().
func (b CompressedBlock) ShortCount() int {
	return int(b.InfoByte & shortCountMask)
}

// Size returns the number of bytes this block occupies on the wire:
// 1 (info byte) + 8 if long form + len(Data).
func (b CompressedBlock) Size() int {
	n := 1 + len(b.Data)
	if b.IsLongForm() {
		n += 8
	}
	return n
}

// Pack serializes an 8×8 coefficient block, choosing short or long form
// per the inner-zero heuristic: zig-zag flatten, count the zeros before
// the last nonzero, and prefer long form once that count exceeds 8.
func Pack(coeffs matrix.Block[int8], isDCT bool) CompressedBlock {
	zigzag := matrix.Flatten(coeffs, transform.ZigZagOrder)

	tailZeros := 0
	for i := len(zigzag) - 1; i >= 0 && zigzag[i] == 0; i-- {
		tailZeros++
	}
	count := len(zigzag) - tailZeros

	innerZeros := 0
	for i := 0; i < count; i++ {
		if zigzag[i] == 0 {
			innerZeros++
		}
	}

	var info byte
	if isDCT {
		info |= IsDCT
	}

	// count == 64 means no trailing zig-zag zeros at all; the 6-bit count
	// field can only represent 0..63, so that case must fall through to
	// long form even though its inner-zero count would otherwise qualify
	// for short form (original C++ flags this same edge case).
	if count != matrix.Size*matrix.Size && innerZeros <= innerZeroThreshold {
		info |= byte(count) & shortCountMask
		data := make([]int8, count)
		copy(data, zigzag[:count])
		return CompressedBlock{InfoByte: info, Data: data}
	}

	info |= IsLong
	rowMajor := matrix.Flatten(coeffs, matrix.RowMajor)
	var table uint64
	data := make([]int8, 0, len(rowMajor))
	for _, v := range rowMajor {
		table <<= 1
		if v != 0 {
			table |= 1
			data = append(data, v)
		}
	}
	return CompressedBlock{InfoByte: info, Table: table, Data: data}
}

// Unpack reconstructs the 8×8 coefficient block a CompressedBlock encodes.
func Unpack(b CompressedBlock) matrix.Block[int8] {
	if b.IsLongForm() {
		return unpackLong(b.Table, b.Data)
	}
	return unpackShort(b.ShortCount(), b.Data)
}

func unpackLong(table uint64, data []int8) matrix.Block[int8] {
	var out matrix.Block[int8]
	next := 0
	for k := 0; k < matrix.Size*matrix.Size; k++ {
		row, col := matrix.RowMajor(k)
		bit := (table >> uint(63-k)) & 1
		if bit == 1 {
			out = out.Set(row, col, data[next])
			next++
		}
	}
	return out
}

func unpackShort(count int, data []int8) matrix.Block[int8] {
	var out matrix.Block[int8]
	for i := 0; i < count; i++ {
		row, col := transform.ZigZagOrder(i)
		out = out.Set(row, col, data[i])
	}
	return out
}
