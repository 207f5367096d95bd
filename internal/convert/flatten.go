package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// FlattenPNG decodes a PNG, composites it over an opaque white background and
// re-encodes it. Browser screenshots can carry transparent regions (rounded
// corners, unstyled margins); the exported poster must not.
func FlattenPNG(data []byte) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("convert: decode png: %w", err)
	}

	dst := FlattenOnWhite(src)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("convert: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FlattenOnWhite draws img over white. The result has the same bounds and is
// fully opaque.
func FlattenOnWhite(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// Opaque reports whether every pixel of img has full alpha.
func Opaque(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
