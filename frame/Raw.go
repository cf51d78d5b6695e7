package frame

// Raw is a single screen as produced by an environment, before any
// preprocessing. If Palette is non-nil, Pix holds one palette index per
// pixel. Otherwise Pix holds Channels interleaved samples per pixel:
// 1 for gray, 3 for RGB, or 4 for RGBA (alpha is ignored).
type Raw struct {
	Width    int
	Height   int
	Channels int
	Palette  *Palette
	Pix      []uint8
}

// NewIndexed returns a new palette-indexed Raw frame
func NewIndexed(width, height int, p *Palette, pix []uint8) Raw {
	return Raw{Width: width, Height: height, Channels: 1, Palette: p, Pix: pix}
}

// NewRGB returns a new Raw frame of interleaved RGB samples
func NewRGB(width, height int, pix []uint8) Raw {
	return Raw{Width: width, Height: height, Channels: 3, Pix: pix}
}

// Validate ensures that the frame's reported size is consistent with
// its declared dimensions
func (r Raw) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return r.invalid("dimensions must be positive")
	}

	channels := r.Channels
	if r.Palette != nil {
		channels = 1
	} else if channels != 1 && channels != 3 && channels != 4 {
		return r.invalid("unsupported number of channels")
	}

	if len(r.Pix) == 0 {
		return r.invalid("frame is empty")
	}
	if len(r.Pix) != r.Width*r.Height*channels {
		return r.invalid("sample count does not match dimensions")
	}
	return nil
}

func (r Raw) invalid(reason string) error {
	return &InvalidFrameError{
		Width:  r.Width,
		Height: r.Height,
		Len:    len(r.Pix),
		Reason: reason,
	}
}
