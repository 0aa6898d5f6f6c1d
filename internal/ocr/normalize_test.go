package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
			}
		}
	}
	return img
}

func TestNormalizeReturnsBothVariants(t *testing.T) {
	n := NewNormalizer(64, logger.GetLogger())
	data := encodePNG(t, checkerboard(80, 80))

	out, err := n.Normalize(data)
	require.NoError(t, err)

	assert.Equal(t, data, out.Original)
	assert.NotEmpty(t, out.Processed)

	// Processed variant must still decode.
	img, _, err := image.Decode(bytes.NewReader(out.Processed))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
}

func TestNormalizeUpscalesSmallImages(t *testing.T) {
	n := NewNormalizer(100, logger.GetLogger())
	data := encodePNG(t, checkerboard(50, 80))

	out, err := n.Normalize(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out.Processed))
	require.NoError(t, err)

	// Smaller dimension (50) reaches the minimum; aspect ratio preserved.
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestNormalizeLeavesLargeImagesUnscaled(t *testing.T) {
	n := NewNormalizer(40, logger.GetLogger())
	data := encodePNG(t, checkerboard(64, 48))

	out, err := n.Normalize(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out.Processed))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestNormalizeBinarizesOutput(t *testing.T) {
	n := NewNormalizer(16, logger.GetLogger())
	data := encodePNG(t, checkerboard(32, 32))

	out, err := n.Normalize(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out.Processed))
	require.NoError(t, err)

	// Every pixel of the thresholded image is pure black or pure white.
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y != 0 && g.Y != 255 {
				t.Fatalf("pixel (%d,%d) = %d, expected 0 or 255", x, y, g.Y)
			}
		}
	}
}

func TestNormalizeRejectsUndecodableBytes(t *testing.T) {
	n := NewNormalizer(0, logger.GetLogger())

	_, err := n.Normalize([]byte("definitely not an image"))
	assert.Error(t, err)
}
