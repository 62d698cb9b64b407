// Package block implements the forward and inverse per-block transform and
// quantization pipeline: level-shift, linear transform, elementwise
// quantize (forward) and the mirror image (inverse).
package block

import (
	"math"

	"github.com/efondere/squash/matrix"
)

// Forward runs the forward block codec: level-shift by -128, apply
// T * S * T^T, divide elementwise by q, round, and clamp to the signed
// 8-bit range. Encoders must not assume the result stays in [-128,127]
// without this clamp — it is the caller's only defense against overflow.
func Forward(b matrix.Block[uint8], t, q matrix.Block[float32]) matrix.Block[int8] {
	shifted := matrix.AsFunc(b, func(v uint8) float32 { return float32(v) - 128 })
	transformed := t.Product(shifted.Product(t.Transpose()))
	levels := transformed.Div(q).AddScalar(0.5)
	return matrix.AsFunc(levels, func(v float32) int8 { return clampInt8(math.Floor(float64(v))) })
}

// Inverse runs the inverse block codec: dequantize, apply T^T * B * T,
// add the level shift back, and clamp to [0,255].
func Inverse(b matrix.Block[int8], t, q matrix.Block[float32]) matrix.Block[uint8] {
	dequantized := matrix.AsFunc(b, func(v int8) float32 { return float32(v) }).Mul(q)
	restored := t.Transpose().Product(dequantized.Product(t)).AddScalar(128)
	return matrix.AsFunc(restored, func(v float32) uint8 { return clampUint8(math.Floor(float64(v))) })
}

func clampInt8(v float64) int8 {
	switch {
	case v < -128:
		return -128
	case v > 127:
		return 127
	default:
		return int8(v)
	}
}

func clampUint8(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
