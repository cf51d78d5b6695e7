package frame

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Preprocessor converts Raw environment frames into square grayscale
// Frames of a fixed side length. The conversion is a pure function of
// the Raw frame.
type Preprocessor struct {
	size   int
	scaler draw.Scaler
}

// NewPreprocessor returns a new Preprocessor producing Frames with the
// given side length
func NewPreprocessor(size int) (*Preprocessor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("newPreprocessor: size must be > 0")
	}
	return &Preprocessor{size: size, scaler: draw.BiLinear}, nil
}

// Size returns the side length of the Frames produced
func (p *Preprocessor) Size() int {
	return p.size
}

// Process converts a Raw frame into a Frame. Each source pixel is first
// converted to luminance, then the luminance image is resampled to the
// output size with a bilinear kernel.
func (p *Preprocessor) Process(r Raw) (*Frame, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	gray := luminanceImage(r)
	if r.Width == p.size && r.Height == p.size {
		return &Frame{side: p.size, pix: gray.Pix}, nil
	}

	dst := image.NewGray(image.Rect(0, 0, p.size, p.size))
	p.scaler.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)

	return &Frame{side: p.size, pix: dst.Pix}, nil
}

// luminanceImage converts a validated Raw frame to a grayscale image
func luminanceImage(r Raw) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))

	switch {
	case r.Palette != nil:
		for i, index := range r.Pix {
			img.Pix[i] = r.Palette.Luminance(index)
		}

	case r.Channels == 1:
		copy(img.Pix, r.Pix)

	default:
		for i := range img.Pix {
			px := r.Pix[i*r.Channels : i*r.Channels+3]
			img.Pix[i] = Luminance(px[0], px[1], px[2])
		}
	}

	return img
}
