package similarity

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// pixelSampleSize is the square edge both images are resampled to before
// comparing. Small on purpose: the comparison is a coarse appearance check,
// not a biometric signal.
const pixelSampleSize = 64

// PixelConfidence compares two encoded images by raw appearance. Both are
// decoded, resampled to a 64x64 square and compared channel by channel over
// RGB. The result is 1 minus the normalized mean absolute difference,
// clamped to [0, 1]. There is no alignment or lighting normalization, so the
// value is only meaningful for images captured by the same kiosk camera.
func PixelConfidence(imgA, imgB []byte) (float64, error) {
	a, err := decodeAndResample(imgA)
	if err != nil {
		return 0, fmt.Errorf("decoding first image: %w", err)
	}
	b, err := decodeAndResample(imgB)
	if err != nil {
		return 0, fmt.Errorf("decoding second image: %w", err)
	}

	var sumDiff float64
	for y := range pixelSampleSize {
		for x := range pixelSampleSize {
			ca := a.RGBAAt(x, y)
			cb := b.RGBAAt(x, y)
			sumDiff += absDiff(ca.R, cb.R) + absDiff(ca.G, cb.G) + absDiff(ca.B, cb.B)
		}
	}

	maxDiff := float64(pixelSampleSize * pixelSampleSize * 3 * 255)
	conf := 1 - sumDiff/maxDiff
	if conf < 0 {
		conf = 0
	}
	return conf, nil
}

// DecodableImage reports whether the data decodes as a supported image format.
func DecodableImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

// decodeAndResample decodes an image and scales it to the fixed sample square.
func decodeAndResample(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, pixelSampleSize, pixelSampleSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst, nil
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
