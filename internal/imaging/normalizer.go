package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// NormalizedSize is the square edge length every base image is brought
// to before it is sent upstream.
const NormalizedSize = 1024

// Normalize scales an arbitrary raster image to fit a NormalizedSize
// square, centers it on a black canvas, and re-encodes it as PNG.
// Nothing is ever cropped; the image is uniformly scaled by
// min(N/width, N/height) and letterboxed.
func Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}

	ratio := float64(NormalizedSize) / float64(srcW)
	if r := float64(NormalizedSize) / float64(srcH); r < ratio {
		ratio = r
	}
	newW := int(float64(srcW) * ratio)
	newH := int(float64(srcH) * ratio)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	offsetX := (NormalizedSize - newW) / 2
	offsetY := (NormalizedSize - newH) / 2

	dst := image.NewRGBA(image.Rect(0, 0, NormalizedSize, NormalizedSize))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	target := image.Rect(offsetX, offsetY, offsetX+newW, offsetY+newH)
	draw.CatmullRom.Scale(dst, target, src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
