package vision

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeImagePayloadResizesToJPEG(t *testing.T) {
	payload, err := EncodeImagePayload(pngFixture(t, 64, 128))
	if err != nil {
		t.Fatalf("EncodeImagePayload: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a JPEG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 512 || bounds.Dy() != 512 {
		t.Fatalf("payload size = %dx%d, want 512x512", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodeImagePayloadRejectsGarbage(t *testing.T) {
	if _, err := EncodeImagePayload([]byte("not an image")); err == nil {
		t.Fatal("expected error for non-image bytes")
	}
}
