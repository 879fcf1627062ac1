package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register gif decoder
	"image/jpeg"
	_ "image/png" // register png decoder

	"golang.org/x/image/draw"
)

const (
	encodeSize    = 512
	encodeQuality = 85
)

// EncodeImagePayload decodes an uploaded image, resizes it to a 512x512 JPEG
// to keep request payloads small, and returns the base64 body for inlineData.
func EncodeImagePayload(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, encodeSize, encodeSize))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: encodeQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
