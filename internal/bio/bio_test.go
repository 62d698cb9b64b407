package bio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestStreamReaderIntegers(t *testing.T) {
	data := []byte{
		0x2a,                   // uint8
		0x78, 0x56, 0x34, 0x12, // uint32: 0x12345678
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01, // uint64
	}
	r := NewStreamReader(bytes.NewReader(data))

	u8, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8() error = %v", err)
	}
	if u8 != 0x2a {
		t.Errorf("ReadUint8() = 0x%02x, want 0x2a", u8)
	}

	u32, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32() error = %v", err)
	}
	if u32 != 0x12345678 {
		t.Errorf("ReadUint32() = 0x%08x, want 0x12345678", u32)
	}

	u64, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64() error = %v", err)
	}
	if u64 != 0x0123456789ABCDEF {
		t.Errorf("ReadUint64() = 0x%016x, want 0x0123456789ABCDEF", u64)
	}
}

func TestStreamReaderShortRead(t *testing.T) {
	r := NewStreamReader(bytes.NewReader([]byte{0x01, 0x02}))
	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("ReadUint32() error = %v, want ErrShortRead", err)
	}
}

func TestStreamWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf)

	if err := w.WriteUint8(0x2a); err != nil {
		t.Fatalf("WriteUint8() error = %v", err)
	}
	if err := w.WriteUint32(0x12345678); err != nil {
		t.Fatalf("WriteUint32() error = %v", err)
	}
	if err := w.WriteUint64(0x0123456789ABCDEF); err != nil {
		t.Fatalf("WriteUint64() error = %v", err)
	}

	r := NewStreamReader(&buf)
	u8, _ := r.ReadUint8()
	u32, _ := r.ReadUint32()
	u64, _ := r.ReadUint64()

	if u8 != 0x2a || u32 != 0x12345678 || u64 != 0x0123456789ABCDEF {
		t.Errorf("round trip mismatch: got (%x, %x, %x)", u8, u32, u64)
	}
}

func TestStreamWriterShortWrite(t *testing.T) {
	w := NewStreamWriter(limitedWriter{max: 1})
	if err := w.WriteUint32(1); err == nil {
		t.Fatalf("WriteUint32() error = nil, want error on truncated writer")
	}
}

func TestBufferWriterAccumulates(t *testing.T) {
	w := NewBufferWriter(0)
	sw := NewStreamWriter(w)
	if err := sw.WriteUint8(0xff); err != nil {
		t.Fatalf("WriteUint8() error = %v", err)
	}
	if err := sw.WriteUint32(0x12345678); err != nil {
		t.Fatalf("WriteUint32() error = %v", err)
	}
	if err := sw.WriteUint64(0x0123456789ABCDEF); err != nil {
		t.Fatalf("WriteUint64() error = %v", err)
	}

	want := []byte{0xff, 0x78, 0x56, 0x34, 0x12, 0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = %x, want %x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", w.Len(), len(want))
	}
}

// limitedWriter accepts at most max bytes per Write call, simulating a
// stream that cannot take the whole payload.
type limitedWriter struct{ max int }

func (l limitedWriter) Write(p []byte) (int, error) {
	if len(p) <= l.max {
		return len(p), nil
	}
	return l.max, io.ErrShortWrite
}
