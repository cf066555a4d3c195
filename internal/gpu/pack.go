//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/wigfit"
)

// paramsSize is the byte size of the Params uniform in flatten.wgsl.
const paramsSize = 32

// Mode values understood by the shader.
const (
	shaderModeNormal    = 0
	shaderModeFlattened = 1
	shaderModeBald      = 2
)

func shaderMode(m wigfit.Mode) uint32 {
	switch m {
	case wigfit.ModeFlattened:
		return shaderModeFlattened
	case wigfit.ModeBald:
		return shaderModeBald
	default:
		return shaderModeNormal
	}
}

// encodeParams lays out the Params uniform.
func encodeParams(w, h uint32, p wigfit.FlattenParams, neutral uint32) []byte {
	buf := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(buf[0:], w)
	binary.LittleEndian.PutUint32(buf[4:], h)
	binary.LittleEndian.PutUint32(buf[8:], shaderMode(p.Mode))
	binary.LittleEndian.PutUint32(buf[12:], uint32(max(p.BlendRadius, 0))) //nolint:gosec // clamped non-negative
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(float32(p.VolumeReduction)))
	binary.LittleEndian.PutUint32(buf[20:], uint32(max(p.ScalpSampleRadius, 0))) //nolint:gosec // clamped non-negative
	binary.LittleEndian.PutUint32(buf[24:], neutral)
	return buf
}

// packColor packs 8-bit channels the way the shader unpacks them.
func packColor(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

func packPixelsForGPU(data []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		s := i * 4
		binary.LittleEndian.PutUint32(out[s:], packColor(data[s], data[s+1], data[s+2], data[s+3]))
	}
	return out
}

func unpackPixelsFromGPU(packed []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		val := binary.LittleEndian.Uint32(packed[i*4:])
		d := i * 4
		dst[d+0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
		dst[d+1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
		dst[d+2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
		dst[d+3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
	}
}

// packMaskForGPU widens each mask byte to a u32.
func packMaskForGPU(mask []uint8) []byte {
	out := make([]byte, len(mask)*4)
	for i, v := range mask {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}
