package wigfit

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Frame is a rectangular non-premultiplied RGBA pixel buffer, 4 bytes per
// pixel, rows packed without padding. Pipeline operations never modify a
// Frame they receive; every result is a fresh Frame.
type Frame struct {
	width  int
	height int
	data   []uint8
}

// NewFrame creates a transparent frame. Negative dimensions yield an empty frame.
func NewFrame(width, height int) *Frame {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Frame{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewFrameFromData wraps existing RGBA bytes without copying.
// len(data) must be at least width*height*4.
func NewFrameFromData(width, height int, data []uint8) (*Frame, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	need := width * height * 4
	if len(data) < need {
		return nil, ErrInvalidDimensions
	}
	return &Frame{width: width, height: height, data: data[:need]}, nil
}

// FrameFromImage converts any image into a Frame anchored at (0,0).
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Frame{width: b.Dx(), height: b.Dy(), data: dst.Pix}
}

// ResizeFrame returns f scaled to width x height with Catmull-Rom filtering.
// Used to prepare wig assets; not on the per-frame path.
func ResizeFrame(f *Frame, width, height int) *Frame {
	if f == nil || width <= 0 || height <= 0 || f.Empty() {
		return NewFrame(width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), f.nrgba(), image.Rect(0, 0, f.width, f.height), draw.Src, nil)
	return &Frame{width: width, height: height, data: dst.Pix}
}

// Width returns the width of the frame.
func (f *Frame) Width() int { return f.width }

// Height returns the height of the frame.
func (f *Frame) Height() int { return f.height }

// Data returns the raw RGBA bytes.
func (f *Frame) Data() []uint8 { return f.data }

// Size returns the frame dimensions.
func (f *Frame) Size() Size { return Size{Width: f.width, Height: f.height} }

// Empty reports whether the frame holds no pixels.
func (f *Frame) Empty() bool { return f.width == 0 || f.height == 0 }

// RGBA returns the pixel at (x, y); out of range reads are transparent black.
func (f *Frame) RGBA(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0, 0
	}
	i := (y*f.width + x) * 4
	return f.data[i], f.data[i+1], f.data[i+2], f.data[i+3]
}

// SetRGBA sets the pixel at (x, y). Out of range writes are ignored.
func (f *Frame) SetRGBA(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	f.data[i], f.data[i+1], f.data[i+2], f.data[i+3] = r, g, b, a
}

// Fill sets every pixel to the given color.
func (f *Frame) Fill(r, g, b, a uint8) {
	for i := 0; i < len(f.data); i += 4 {
		f.data[i], f.data[i+1], f.data[i+2], f.data[i+3] = r, g, b, a
	}
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	data := make([]uint8, len(f.data))
	copy(data, f.data)
	return &Frame{width: f.width, height: f.height, data: data}
}

// Equal reports whether both frames have the same size and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.width != o.width || f.height != o.height {
		return false
	}
	for i := range f.data {
		if f.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// ToImage copies the frame into a new image.NRGBA.
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.data)
	return img
}

// nrgba views the frame as an image.NRGBA without copying.
func (f *Frame) nrgba() *image.NRGBA {
	return &image.NRGBA{Pix: f.data, Stride: f.width * 4, Rect: image.Rect(0, 0, f.width, f.height)}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.width, f.height) }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	r, g, b, a := f.RGBA(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
