package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	// Register decoders for the media types accepted by the upload path.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Default preprocessing parameters. The blur radius and threshold window are
// sized for photographed A4 forms at the upscaled resolution.
const (
	defaultMinDimension = 1200
	blurRadius          = 2
	thresholdWindow     = 15
	thresholdBias       = 10
)

// NormalizedImage carries both the preprocessed variant and the untouched
// original; later recognition strategies may need either.
type NormalizedImage struct {
	// Processed is the binarized, possibly upscaled variant encoded as PNG.
	Processed []byte
	// Original is the caller's unmodified image payload.
	Original []byte
}

// Normalizer prepares raw images for recognition.
type Normalizer struct {
	minDimension int
	log          *zap.SugaredLogger
}

// NewNormalizer creates a Normalizer. minDimension below 1 selects the default.
func NewNormalizer(minDimension int, log *zap.SugaredLogger) *Normalizer {
	if minDimension < 1 {
		minDimension = defaultMinDimension
	}
	return &Normalizer{minDimension: minDimension, log: log}
}

// Normalize decodes the image, upscales it so the smaller dimension reaches
// the configured minimum, and produces a binarized variant (grayscale →
// gaussian blur → adaptive threshold). Preprocessing failures fall back to
// the unmodified image; only undecodable bytes return an error.
func (n *Normalizer) Normalize(data []byte) (*NormalizedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	n.log.Debugw("Decoded upload image", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	processed, err := n.preprocess(img)
	if err != nil {
		// Never abort the pipeline on preprocessing trouble; recognition can
		// still run against the original bytes.
		n.log.Warnw("Image preprocessing failed, using original", "error", err)
		return &NormalizedImage{Processed: data, Original: data}, nil
	}

	return &NormalizedImage{Processed: processed, Original: data}, nil
}

func (n *Normalizer) preprocess(img image.Image) ([]byte, error) {
	rgba := toNRGBA(img)
	rgba = n.upscale(rgba)

	gray := toGray(rgba)
	blurred := gaussianBlur(gray, blurRadius)
	binarized := adaptiveThreshold(blurred, thresholdWindow, thresholdBias)

	var buf bytes.Buffer
	if err := png.Encode(&buf, binarized); err != nil {
		return nil, errors.Wrap(err, "encode processed image")
	}
	return buf.Bytes(), nil
}

// upscale uniformly scales the image so its smaller dimension reaches the
// configured minimum, preserving aspect ratio. CatmullRom smooths the result
// so recognition does not trip over jagged text edges.
func (n *Normalizer) upscale(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	smaller := w
	if h < w {
		smaller = h
	}
	if smaller >= n.minDimension || smaller == 0 {
		return src
	}

	scale := float64(n.minDimension) / float64(smaller)
	dstW := int(float64(w)*scale + 0.5)
	dstH := int(float64(h)*scale + 0.5)

	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// toNRGBA ensures a 3-channel (plus alpha) representation regardless of the
// decoded color model.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func toGray(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// gaussianBlur applies a separable gaussian kernel with the given radius.
func gaussianBlur(src *image.Gray, radius int) *image.Gray {
	if radius < 1 {
		return src
	}
	kernel := gaussianKernel(radius)

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// Horizontal pass.
	tmp := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, weight float64
			for k := -radius; k <= radius; k++ {
				xx := clampInt(x+k, 0, w-1)
				kv := kernel[k+radius]
				sum += float64(src.GrayAt(b.Min.X+xx, b.Min.Y+y).Y) * kv
				weight += kv
			}
			tmp.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: uint8(sum/weight + 0.5)})
		}
	}

	// Vertical pass.
	dst := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, weight float64
			for k := -radius; k <= radius; k++ {
				yy := clampInt(y+k, 0, h-1)
				kv := kernel[k+radius]
				sum += float64(tmp.GrayAt(b.Min.X+x, b.Min.Y+yy).Y) * kv
				weight += kv
			}
			dst.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: uint8(sum/weight + 0.5)})
		}
	}
	return dst
}

func gaussianKernel(radius int) []float64 {
	sigma := float64(radius) / 2.0
	if sigma <= 0 {
		sigma = 0.5
	}
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = gaussian(d, sigma)
	}
	return kernel
}

func gaussian(d, sigma float64) float64 {
	return math.Exp(-d * d / (2 * sigma * sigma))
}

// adaptiveThreshold binarizes using the mean of a local window minus a bias,
// which tolerates the uneven lighting typical of photographed forms. An
// integral image keeps the window mean O(1) per pixel.
func adaptiveThreshold(src *image.Gray, window, bias int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	half := window / 2

	// integral[y][x] holds the sum of the rectangle [0,0)-(x,y).
	integral := make([][]int64, h+1)
	for i := range integral {
		integral[i] = make([]int64, w+1)
	}
	for y := 1; y <= h; y++ {
		var rowSum int64
		for x := 1; x <= w; x++ {
			rowSum += int64(src.GrayAt(b.Min.X+x-1, b.Min.Y+y-1).Y)
			integral[y][x] = integral[y-1][x] + rowSum
		}
	}

	dst := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := clampInt(x-half, 0, w-1)
			y0 := clampInt(y-half, 0, h-1)
			x1 := clampInt(x+half, 0, w-1)
			y1 := clampInt(y+half, 0, h-1)

			count := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[y1+1][x1+1] - integral[y0][x1+1] - integral[y1+1][x0] + integral[y0][x0]
			mean := sum / count

			v := int64(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			if v > mean-int64(bias) {
				dst.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: 255})
			} else {
				dst.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
