// Package squash implements the core of the squash lossy still-image
// codec: an 8×8 block-based transform codec that picks between a DCT and
// a Haar-style transform per block against a target quality score, and
// serializes the result into the .sqh container format.
//
// PNG decoding/encoding and command-line argument handling are
// deliberately kept out of this package; see the raster package and
// cmd/squash for those concerns. EncodeFile and DecodeFile are thin
// path-level wrappers around Encode and Decode.
package squash

import "errors"

// ChannelTag identifies the pixel layout recorded in a SquashHeader. The
// codec pipeline only ever processes three channels; channelTag is
// carried through for format compatibility but Grey and RGBA are not
// supported (spec Open Question, deferred).
type ChannelTag uint8

const (
	ChannelGrey ChannelTag = 1
	ChannelRGB  ChannelTag = 3
	ChannelRGBA ChannelTag = 4
)

// Header is the .sqh file's fixed-size prelude.
type Header struct {
	SizeX      uint32
	SizeY      uint32
	ChannelTag ChannelTag
}

// Errors the core codec surfaces. Propagation is immediate: block-level
// math never fails, so every error here originates at an I/O boundary.
var (
	// ErrInvalidMagic is returned when a .sqh file's prelude does not
	// start with MagicNumber.
	ErrInvalidMagic = errors.New("squash: invalid magic number")

	// ErrShortRead is returned when the input stream ends before a
	// required field has been fully read.
	ErrShortRead = errors.New("squash: short read")

	// ErrShortWrite is returned when the output stream could not accept
	// a required field in full.
	ErrShortWrite = errors.New("squash: short write")

	// ErrUnsupportedExtension is returned by path-based dispatch helpers
	// that cannot route on a file's suffix.
	ErrUnsupportedExtension = errors.New("squash: unsupported file extension")

	// ErrNoData is returned when a save is attempted before anything has
	// been loaded or decoded.
	ErrNoData = errors.New("squash: no data to save")

	// ErrOverwriteRefused is returned when the destination path already
	// exists and the caller did not request overwrite.
	ErrOverwriteRefused = errors.New("squash: destination exists, overwrite not requested")

	// ErrUnsupportedChannels is returned when a file's channel tag is not
	// ChannelRGB. Grey/RGBA support is an open question the spec defers.
	ErrUnsupportedChannels = errors.New("squash: only RGB (3-channel) files are supported")
)

// EncodeConfig is the per-image configuration the encoder is given. It
// replaces the reference implementation's module-scope mutable Quality and
// average-coefficient diagnostics (spec design note): no global state is
// touched anywhere in this package.
type EncodeConfig struct {
	// Quality is the per-image target score in the transform-selection
	// formula (spec §4.7). The encoder picks whichever of the DCT/Haar
	// results scores closest to this target for each block.
	Quality float64

	// QDCT and QHaar are the quantization tables used for the DCT and
	// Haar transforms respectively. Both are persisted verbatim into the
	// file header so a decoder never needs its own defaults.
	QDCT, QHaar [8][8]uint8
}

// DefaultQuality is the target score NewEncodeConfig sets (spec §4.7).
const DefaultQuality = 0.5

// NewEncodeConfig returns an EncodeConfig using DefaultQuality and the
// codec's default quantization tables.
func NewEncodeConfig() EncodeConfig {
	return EncodeConfig{
		Quality: DefaultQuality,
		QDCT:    defaultQDCTArray(),
		QHaar:   defaultQHaarArray(),
	}
}

// EncodeStats carries diagnostics back from Encode. It is never persisted
// to the file; it exists purely so a caller can inspect the encoder's
// behavior without the reference implementation's global coefficient
// accumulator.
type EncodeStats struct {
	// MeanScore is the mean of the chosen transform's quality score
	// across all blocks.
	MeanScore float64

	// DCTBlocks and HaarBlocks count how many blocks picked each
	// transform.
	DCTBlocks, HaarBlocks int
}
