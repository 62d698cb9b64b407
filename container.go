package squash

import (
	"errors"
	"math/bits"

	"github.com/efondere/squash/internal/bio"
	"github.com/efondere/squash/matrix"
	"github.com/efondere/squash/pack"
	"github.com/efondere/squash/transform"
)

// MagicNumber is the four-byte little-endian prelude every .sqh file
// starts with (on disk the bytes 0x68 0x71 0x73 0x2F, i.e. "hqs/").
const MagicNumber uint32 = 0x2F737168

func defaultQDCTArray() [8][8]uint8  { return blockToArray(transform.QDCTDefault) }
func defaultQHaarArray() [8][8]uint8 { return blockToArray(transform.QHaarDefault) }

func blockToArray(b matrix.Block[uint8]) [8][8]uint8 {
	var out [8][8]uint8
	for i := 0; i < matrix.Size; i++ {
		for j := 0; j < matrix.Size; j++ {
			out[i][j] = b.At(i, j)
		}
	}
	return out
}

func arrayToBlock(a [8][8]uint8) matrix.Block[uint8] {
	return matrix.FromArray(a)
}

func arrayToFloatBlock(a [8][8]uint8) matrix.Block[float32] {
	return matrix.As[uint8, float32](arrayToBlock(a))
}

// writeHeader writes the magic number, dimensions, channel tag, and both
// quantization tables.
func writeHeader(w *bio.StreamWriter, h Header, cfg EncodeConfig) error {
	if err := w.WriteUint32(MagicNumber); err != nil {
		return err
	}
	if err := w.WriteUint32(h.SizeX); err != nil {
		return err
	}
	if err := w.WriteUint32(h.SizeY); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(h.ChannelTag)); err != nil {
		return err
	}
	if err := writeQTable(w, cfg.QDCT); err != nil {
		return err
	}
	return writeQTable(w, cfg.QHaar)
}

func writeQTable(w *bio.StreamWriter, q [8][8]uint8) error {
	for i := 0; i < matrix.Size; i++ {
		for j := 0; j < matrix.Size; j++ {
			if err := w.WriteUint8(q[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// readHeader reads and validates a .sqh prelude, returning the decoded
// header and the two quantization tables it carried.
func readHeader(r *bio.StreamReader) (Header, [8][8]uint8, [8][8]uint8, error) {
	var qDCT, qHaar [8][8]uint8

	magic, err := r.ReadUint32()
	if err != nil {
		return Header{}, qDCT, qHaar, err
	}
	if magic != MagicNumber {
		return Header{}, qDCT, qHaar, ErrInvalidMagic
	}

	sizeX, err := r.ReadUint32()
	if err != nil {
		return Header{}, qDCT, qHaar, err
	}
	sizeY, err := r.ReadUint32()
	if err != nil {
		return Header{}, qDCT, qHaar, err
	}
	tag, err := r.ReadUint8()
	if err != nil {
		return Header{}, qDCT, qHaar, err
	}

	if qDCT, err = readQTable(r); err != nil {
		return Header{}, qDCT, qHaar, err
	}
	if qHaar, err = readQTable(r); err != nil {
		return Header{}, qDCT, qHaar, err
	}

	h := Header{SizeX: sizeX, SizeY: sizeY, ChannelTag: ChannelTag(tag)}
	return h, qDCT, qHaar, nil
}

func readQTable(r *bio.StreamReader) ([8][8]uint8, error) {
	var q [8][8]uint8
	for i := 0; i < matrix.Size; i++ {
		for j := 0; j < matrix.Size; j++ {
			v, err := r.ReadUint8()
			if err != nil {
				return q, err
			}
			q[i][j] = v
		}
	}
	return q, nil
}

// writeCompressedBlock writes one packed block: the info byte, the
// optional 8-byte presence bitmap, then the stored coefficients.
func writeCompressedBlock(w *bio.StreamWriter, b pack.CompressedBlock) error {
	if err := w.WriteUint8(b.InfoByte); err != nil {
		return err
	}
	if b.IsLongForm() {
		if err := w.WriteUint64(b.Table); err != nil {
			return err
		}
	}
	for _, v := range b.Data {
		if err := w.WriteInt8(v); err != nil {
			return err
		}
	}
	return nil
}

// readCompressedBlock reads one packed block back off the wire.
func readCompressedBlock(r *bio.StreamReader) (pack.CompressedBlock, error) {
	info, err := r.ReadUint8()
	if err != nil {
		return pack.CompressedBlock{}, err
	}

	cb := pack.CompressedBlock{InfoByte: info}
	count := cb.ShortCount()
	if cb.IsLongForm() {
		table, err := r.ReadUint64()
		if err != nil {
			return pack.CompressedBlock{}, err
		}
		cb.Table = table
		count = bits.OnesCount64(table)
	}

	data := make([]int8, count)
	for i := range data {
		v, err := r.ReadInt8()
		if err != nil {
			return pack.CompressedBlock{}, err
		}
		data[i] = v
	}
	cb.Data = data
	return cb, nil
}

// wrapStreamErr maps internal/bio's short-read/short-write sentinels onto
// this package's own error kinds (spec §7), so callers never need to know
// the container is implemented on top of internal/bio.
func wrapStreamErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bio.ErrShortRead):
		return ErrShortRead
	case errors.Is(err, bio.ErrShortWrite):
		return ErrShortWrite
	default:
		return err
	}
}

