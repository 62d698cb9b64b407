package squash

import (
	"math"

	"github.com/efondere/squash/block"
	"github.com/efondere/squash/matrix"
	"github.com/efondere/squash/pack"
	"github.com/efondere/squash/transform"
)

// quality scores a candidate reconstruction against its original block and
// the size of its packed encoding (spec §4.7):
//
//	e = exp(-‖orig - reconstructed‖₂ / 64)
//	r = compressedBytes / 64
//	quality = sqrt(e² + r²)
func quality(orig, reconstructed matrix.Block[uint8], compressedBytes int) float64 {
	diff := matrix.As[uint8, float32](orig).Sub(matrix.As[uint8, float32](reconstructed))
	e := math.Exp(-matrix.Norm(diff) / 64)
	r := float64(compressedBytes) / 64
	return math.Sqrt(e*e + r*r)
}

// evaluation is one transform's complete round trip over a single block:
// its packed wire form, the quality score it earned, and which transform
// produced it.
type evaluation struct {
	packed pack.CompressedBlock
	score  float64
	isDCT  bool
}

func evaluate(src matrix.Block[uint8], t, q matrix.Block[float32], isDCT bool) evaluation {
	coeffs := block.Forward(src, t, q)
	recon := block.Inverse(coeffs, t, q)
	packed := pack.Pack(coeffs, isDCT)
	return evaluation{packed: packed, score: quality(src, recon, packed.Size()), isDCT: isDCT}
}

// chooseTransform runs both the DCT and Haar paths over the same source
// block and returns whichever scores closest to target. Ties favor DCT
// (spec §4.7).
func chooseTransform(src matrix.Block[uint8], qDCT, qHaar [8][8]uint8, target float64) evaluation {
	dct := evaluate(src, transform.DCT, arrayToFloatBlock(qDCT), true)
	haar := evaluate(src, transform.Haar, arrayToFloatBlock(qHaar), false)

	if math.Abs(target-dct.score) <= math.Abs(target-haar.score) {
		return dct
	}
	return haar
}
