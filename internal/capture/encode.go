package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// decodeFrame decodes raw image bytes and packages them as a Frame, applying
// the configured downscale cap and re-encoding at the configured quality.
func decodeFrame(data []byte, opts Options) (*Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode frame: %w", err)
	}

	if opts.MaxSize > 0 {
		img = downscale(img, opts.MaxSize)
	}

	encoded, err := EncodeJPEG(img, opts.quality())
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Frame{
		Image:  img,
		Data:   encoded,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// EncodeJPEG encodes an image as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("could not encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes an image to fit within maxSize (width or height) while
// keeping aspect ratio. Images already within the cap pass through untouched.
func downscale(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxSize && height <= maxSize {
		return img
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxSize
		newHeight = int(float64(height) * float64(maxSize) / float64(width))
	} else {
		newHeight = maxSize
		newWidth = int(float64(width) * float64(maxSize) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}
