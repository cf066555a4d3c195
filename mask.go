package wigfit

import (
	"image"

	"golang.org/x/image/draw"
)

// HairMask is a per-pixel hair probability aligned with a Frame.
// 0 means scalp or background, 255 means certain hair.
type HairMask struct {
	width  int
	height int
	data   []uint8
}

// NewHairMask creates an all-zero mask.
func NewHairMask(width, height int) *HairMask {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &HairMask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewHairMaskFromData wraps existing intensity bytes without copying.
func NewHairMaskFromData(width, height int, data []uint8) (*HairMask, error) {
	if width < 0 || height < 0 || len(data) < width*height {
		return nil, ErrInvalidDimensions
	}
	return &HairMask{width: width, height: height, data: data[:width*height]}, nil
}

// MaskFromImage converts a segmentation image to a mask using its luminance.
func MaskFromImage(img image.Image) *HairMask {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return &HairMask{width: b.Dx(), height: b.Dy(), data: gray.Pix}
}

// Width returns the mask width.
func (m *HairMask) Width() int { return m.width }

// Height returns the mask height.
func (m *HairMask) Height() int { return m.height }

// Data returns the raw intensity bytes.
func (m *HairMask) Data() []uint8 { return m.data }

// At returns the intensity at (x, y), 0 outside the mask.
func (m *HairMask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the intensity at (x, y). Out of range writes are ignored.
func (m *HairMask) Set(x, y int, v uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = v
}

// Fill sets every pixel to v.
func (m *HairMask) Fill(v uint8) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clone returns a deep copy.
func (m *HairMask) Clone() *HairMask {
	data := make([]uint8, len(m.data))
	copy(data, m.data)
	return &HairMask{width: m.width, height: m.height, data: data}
}

// IsZero reports whether every pixel is 0.
func (m *HairMask) IsZero() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Matches reports whether the mask is aligned with f.
func (m *HairMask) Matches(f *Frame) bool {
	return m != nil && f != nil && m.width == f.width && m.height == f.height
}

// ToImage copies the mask into a new image.Gray.
func (m *HairMask) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	copy(img.Pix, m.data)
	return img
}

// Bounds returns the mask rectangle anchored at (0,0).
func (m *HairMask) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// value returns the intensity at index i normalized to [0, 1].
func (m *HairMask) value(i int) float64 {
	return float64(m.data[i]) / 255
}
