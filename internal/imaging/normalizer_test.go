package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNormalizeOutputIsSquarePNG(t *testing.T) {
	src := encodePNG(t, solidImage(300, 200, color.White))

	out, err := Normalize(src)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, NormalizedSize, decoded.Bounds().Dx())
	assert.Equal(t, NormalizedSize, decoded.Bounds().Dy())
}

func TestNormalizeLetterboxesWideImage(t *testing.T) {
	// 2:1 source scales to 1024x512 centered, leaving black bands top
	// and bottom.
	src := encodePNG(t, solidImage(400, 200, color.White))

	out, err := Normalize(src)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assertBlack := func(x, y int) {
		r, g, b, _ := decoded.At(x, y).RGBA()
		assert.Zero(t, r, "pixel (%d,%d)", x, y)
		assert.Zero(t, g)
		assert.Zero(t, b)
	}
	assertWhite := func(x, y int) {
		r, g, b, _ := decoded.At(x, y).RGBA()
		assert.Equal(t, uint32(0xffff), r, "pixel (%d,%d)", x, y)
		assert.Equal(t, uint32(0xffff), g)
		assert.Equal(t, uint32(0xffff), b)
	}

	assertBlack(512, 10)
	assertBlack(512, 1013)
	assertWhite(512, 512)
	assertWhite(10, 512)
	assertWhite(1013, 512)
}

func TestNormalizeLetterboxesTallImage(t *testing.T) {
	src := encodePNG(t, solidImage(100, 400, color.White))

	out, err := Normalize(src)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, _, _, _ := decoded.At(10, 512).RGBA()
	assert.Zero(t, r, "left band is black")

	r, _, _, _ = decoded.At(512, 512).RGBA()
	assert.Equal(t, uint32(0xffff), r, "center carries the source")
}

func TestNormalizeAcceptsJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(64, 64, color.White), nil))

	out, err := Normalize(buf.Bytes())
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, NormalizedSize, decoded.Bounds().Dx())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("not an image at all"))
	assert.Error(t, err)
}
