// Package bio provides little-endian binary encoding and decoding utilities
// for reading and writing squash (.sqh) file data.
//
// The squash container uses little-endian byte order for every multi-byte
// field, regardless of host endianness (spec §6.3). This package wraps
// encoding/binary with bounds-checked, sequential stream readers and
// writers for the primitive widths the container actually uses.
package bio

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	// ErrShortRead is returned when a read cannot be satisfied because the
	// underlying stream ended early.
	ErrShortRead = errors.New("bio: short read")

	// ErrShortWrite is returned when a write could not be fully accepted
	// by the underlying stream.
	ErrShortWrite = errors.New("bio: short write")
)

// ByteOrder is the byte order used by the squash container.
var ByteOrder = binary.LittleEndian

// StreamReader wraps an io.Reader for sequential little-endian binary
// reading. The squash container is always read strictly in order, so
// unlike OpenEXR's attribute system there is no need for a random-access
// byte-slice reader here.
type StreamReader struct {
	r   io.Reader
	buf [8]byte
}

// NewStreamReader creates a StreamReader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

// ReadByte reads a single byte.
func (r *StreamReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		return 0, wrapShort(err)
	}
	return r.buf[0], nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *StreamReader) ReadUint8() (uint8, error) {
	return r.ReadByte()
}

// ReadInt8 reads a signed 8-bit integer.
func (r *StreamReader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadUint32 reads an unsigned 32-bit integer in little-endian order.
func (r *StreamReader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, wrapShort(err)
	}
	return ByteOrder.Uint32(r.buf[:4]), nil
}

// ReadUint64 reads an unsigned 64-bit integer in little-endian order.
func (r *StreamReader) ReadUint64() (uint64, error) {
	if _, err := io.ReadFull(r.r, r.buf[:8]); err != nil {
		return 0, wrapShort(err)
	}
	return ByteOrder.Uint64(r.buf[:8]), nil
}

// StreamWriter wraps an io.Writer for sequential little-endian binary
// writing.
type StreamWriter struct {
	w   io.Writer
	buf [8]byte
}

// NewStreamWriter creates a StreamWriter from an io.Writer.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// WriteByte writes a single byte.
func (w *StreamWriter) WriteByte(b byte) error {
	w.buf[0] = b
	return w.write(w.buf[:1])
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *StreamWriter) WriteUint8(v uint8) error {
	return w.WriteByte(v)
}

// WriteInt8 writes a signed 8-bit integer.
func (w *StreamWriter) WriteInt8(v int8) error {
	return w.WriteByte(byte(v))
}

// WriteUint32 writes an unsigned 32-bit integer in little-endian order.
func (w *StreamWriter) WriteUint32(v uint32) error {
	ByteOrder.PutUint32(w.buf[:4], v)
	return w.write(w.buf[:4])
}

// WriteUint64 writes an unsigned 64-bit integer in little-endian order.
func (w *StreamWriter) WriteUint64(v uint64) error {
	ByteOrder.PutUint64(w.buf[:8], v)
	return w.write(w.buf[:8])
}

func (w *StreamWriter) write(b []byte) error {
	n, err := w.w.Write(b)
	if n < len(b) {
		return ErrShortWrite
	}
	return err
}

// BufferWriter is a growing in-memory io.Writer. The encoder writes a
// complete .sqh file into one before the atomic rename (spec §7), so a
// partial failure never leaves a truncated file on disk.
type BufferWriter struct {
	buf []byte
}

// NewBufferWriter creates a BufferWriter with an initial capacity hint.
func NewBufferWriter(capacity int) *BufferWriter {
	return &BufferWriter{buf: make([]byte, 0, capacity)}
}

// Bytes returns the written data. The returned slice is valid until the
// next write.
func (w *BufferWriter) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *BufferWriter) Len() int { return len(w.buf) }

// Write appends p verbatim, satisfying io.Writer so a BufferWriter can be
// handed directly to StreamWriter or any other io.Writer-based encoder.
func (w *BufferWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func wrapShort(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortRead
	}
	return err
}
