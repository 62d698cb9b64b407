package squash

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeAllMidGrayImageRoundTrips(t *testing.T) {
	const w, h = 16, 16
	pixels := make([]byte, 3*w*h)
	for i := range pixels {
		pixels[i] = 128
	}

	cfg := NewEncodeConfig()
	var buf bytes.Buffer
	if _, err := Encode(pixels, w, h, &buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, gotW, gotH, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotW != w || gotH != h {
		t.Fatalf("dimensions = %dx%d, want %dx%d", gotW, gotH, w, h)
	}
	for i, v := range got {
		if v != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, v)
		}
	}
}

func TestEncodeDecodeNonBlockMultipleDimensions(t *testing.T) {
	const w, h = 10, 6 // not a multiple of 8
	pixels := make([]byte, 3*w*h)
	for i := range pixels {
		pixels[i] = byte(i % 256)
	}

	cfg := NewEncodeConfig()
	var buf bytes.Buffer
	if _, err := Encode(pixels, w, h, &buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, gotW, gotH, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotW != w || gotH != h {
		t.Fatalf("dimensions = %dx%d, want %dx%d", gotW, gotH, w, h)
	}
	if len(got) != len(pixels) {
		t.Fatalf("pixel buffer length = %d, want %d", len(got), len(pixels))
	}
}

func TestEncodeSinglePixelAgainstBlackBackground(t *testing.T) {
	const w, h = 16, 16
	pixels := make([]byte, 3*w*h)
	pixels[0], pixels[1], pixels[2] = 255, 255, 255

	cfg := NewEncodeConfig()
	var buf bytes.Buffer
	stats, err := Encode(pixels, w, h, &buf, cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if stats.DCTBlocks+stats.HaarBlocks == 0 {
		t.Fatal("expected at least one block to be encoded")
	}

	if _, _, _, err := Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	const w, h = 24, 24
	pixels := make([]byte, 3*w*h)
	cfg := NewEncodeConfig()

	var buf bytes.Buffer
	if _, err := Encode(pixels, w, h, &buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	truncated := buf.Bytes()[:20] // well past the magic, short of the full header
	_, _, _, err := Decode(bytes.NewReader(truncated))
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("Decode truncated file: got %v, want ErrShortRead", err)
	}
}

func TestDecodeRejectsInvalidMagic(t *testing.T) {
	data := make([]byte, 32)
	_, _, _, err := Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("Decode with all-zero prelude: got err %v, want ErrInvalidMagic", err)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	const w, h = 24, 24
	pixels := make([]byte, 3*w*h)
	for i := range pixels {
		pixels[i] = byte((i*7 + 3) % 256)
	}
	cfg := NewEncodeConfig()

	var a, b bytes.Buffer
	if _, err := Encode(pixels, w, h, &a, cfg); err != nil {
		t.Fatalf("Encode (a): %v", err)
	}
	if _, err := Encode(pixels, w, h, &b, cfg); err != nil {
		t.Fatalf("Encode (b): %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("two encodes of the same input produced different bytes")
	}
}

func TestContainerPrelude(t *testing.T) {
	const w, h = 24, 24
	pixels := make([]byte, 3*w*h)
	cfg := NewEncodeConfig()

	var buf bytes.Buffer
	if _, err := Encode(pixels, w, h, &buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	data := buf.Bytes()
	if len(data) < 13 {
		t.Fatalf("encoded file too short: %d bytes", len(data))
	}
	gotMagic := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	if gotMagic != MagicNumber {
		t.Errorf("magic = %#x, want %#x", gotMagic, MagicNumber)
	}
	gotW := uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24
	gotH := uint32(data[8]) | uint32(data[9])<<8 | uint32(data[10])<<16 | uint32(data[11])<<24
	if gotW != w || gotH != h {
		t.Errorf("prelude dimensions = %dx%d, want %dx%d", gotW, gotH, w, h)
	}
	if ChannelTag(data[12]) != ChannelRGB {
		t.Errorf("channel tag = %d, want %d", data[12], ChannelRGB)
	}
}
