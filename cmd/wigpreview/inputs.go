package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gogpu/wigfit"
)

// maskThreshold is the mask intensity treated as hair when estimating
// the face box.
const maskThreshold = 128

func loadFrame(path string) (*wigfit.Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	return wigfit.FrameFromImage(img), nil
}

// loadMask reads a grayscale hair mask and resamples it to width x height
// when the sizes differ.
func loadMask(path string, width, height int) (*wigfit.HairMask, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mask: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		wigfit.Logger().Debug("wigpreview: resampling mask",
			"from", b.Size(), "to", image.Pt(width, height))
		img = imaging.Resize(img, width, height, imaging.Linear)
	}
	return wigfit.MaskFromImage(imaging.Grayscale(img)), nil
}

// loadWig reads the wig image, downscaling it when maxWidth is positive
// and smaller than the image.
func loadWig(path string, maxWidth int) (*wigfit.Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wig: %w", err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Fit(img, maxWidth, img.Bounds().Dy(), imaging.Lanczos)
	}
	return wigfit.FrameFromImage(img), nil
}

func saveFrame(f *wigfit.Frame, path string) error {
	if err := imaging.Save(f.ToImage(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseFace parses "x,y,w,h".
func parseFace(s string) (wigfit.FaceRegion, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return wigfit.FaceRegion{}, fmt.Errorf("--face: %w", err)
	}
	if v[2] <= 0 || v[3] <= 0 {
		return wigfit.FaceRegion{}, fmt.Errorf("--face: width and height must be positive")
	}
	return wigfit.FaceRegion{X: int(v[0]), Y: int(v[1]), Width: int(v[2]), Height: int(v[3])}, nil
}

// estimateFace guesses a face box from the hair mask: the face sits in
// the middle half of the hair's horizontal extent, starting a third of
// the way down. An empty mask yields the center of the frame.
func estimateFace(m *wigfit.HairMask) wigfit.FaceRegion {
	w, h := m.Width(), m.Height()
	minX, minY, maxX, maxY := w, h, -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.At(x, y) < maskThreshold {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return wigfit.FaceRegion{X: w / 4, Y: h / 4, Width: w / 2, Height: h / 2}
	}
	bw, bh := maxX-minX+1, maxY-minY+1
	return wigfit.FaceRegion{
		X:      minX + bw/4,
		Y:      minY + bh/3,
		Width:  max(bw/2, 1),
		Height: max(bh*2/3, 1),
	}
}

// faceFor resolves the face box from the --face flag or the mask.
func (o *options) faceFor(m *wigfit.HairMask) (wigfit.FaceRegion, error) {
	if o.Face != "" {
		return parseFace(o.Face)
	}
	return estimateFace(m), nil
}
