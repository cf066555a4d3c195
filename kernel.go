package wigfit

import (
	"math"

	"github.com/gogpu/wigfit/internal/cache"
)

// kernelTap is one weighted neighbor offset.
type kernelTap struct {
	dx, dy int
	weight float64
}

// gaussianKernel holds the circular taps within radius, weighted
// exp(-d^2 / (2 r^2)).
type gaussianKernel struct {
	radius int
	taps   []kernelTap
}

func newGaussianKernel(radius int) *gaussianKernel {
	k := &gaussianKernel{radius: radius}
	r2 := float64(radius * radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if d2 > r2 {
				continue
			}
			k.taps = append(k.taps, kernelTap{dx: dx, dy: dy, weight: math.Exp(-d2 / (2 * r2))})
		}
	}
	return k
}

// kernelCacheLimit bounds the number of distinct radii kept.
const kernelCacheLimit = 16

var kernels = cache.New[int, *gaussianKernel](kernelCacheLimit)

// kernelFor returns the shared kernel for radius.
func kernelFor(radius int) *gaussianKernel {
	return kernels.GetOrCreate(radius, func() *gaussianKernel {
		return newGaussianKernel(radius)
	})
}
