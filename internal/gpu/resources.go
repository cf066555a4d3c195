//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frameResources holds the buffers and bind group for one frame size.
// They are reused across frames until the dimensions change.
type frameResources struct {
	width, height uint32
	pixelBytes    uint64

	params  hal.Buffer
	src     hal.Buffer
	mask    hal.Buffer
	mid     hal.Buffer
	dst     hal.Buffer
	staging hal.Buffer

	bindGroup hal.BindGroup
}

// ensureFrameResources (re)creates buffers when the frame size changes.
// Caller must hold a.mu.
func (a *FlattenAccelerator) ensureFrameResources(width, height int) error {
	w, h := uint32(width), uint32(height) //nolint:gosec // dimensions always fit uint32
	if a.frame != nil && a.frame.width == w && a.frame.height == h {
		return nil
	}
	if a.frame != nil {
		a.frame.destroy(a.device)
		a.frame = nil
	}

	fr, err := a.createFrameResources(w, h)
	if err != nil {
		fr.destroy(a.device)
		return err
	}
	a.frame = fr
	slogger().Debug("frame buffers allocated", "width", w, "height", h, "bytes", fr.pixelBytes*4)
	return nil
}

func (a *FlattenAccelerator) createFrameResources(w, h uint32) (*frameResources, error) {
	fr := &frameResources{width: w, height: h, pixelBytes: uint64(w) * uint64(h) * 4}

	storage := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
	specs := []struct {
		dst   *hal.Buffer
		label string
		size  uint64
		usage gputypes.BufferUsage
	}{
		{&fr.params, "flatten_params", paramsSize, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst},
		{&fr.src, "flatten_src", fr.pixelBytes, storage},
		{&fr.mask, "flatten_mask", fr.pixelBytes, storage},
		{&fr.mid, "flatten_mid", fr.pixelBytes, storage},
		{&fr.dst, "flatten_dst", fr.pixelBytes, storage | gputypes.BufferUsageCopySrc},
		{&fr.staging, "flatten_staging", fr.pixelBytes, gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst},
	}
	for _, s := range specs {
		buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{Label: s.label, Size: s.size, Usage: s.usage})
		if err != nil {
			return fr, fmt.Errorf("create %s buffer: %w", s.label, err)
		}
		*s.dst = buf
	}

	bind := func(binding uint32, buf hal.Buffer, size uint64) gputypes.BindGroupEntry {
		return gputypes.BindGroupEntry{
			Binding:  binding,
			Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: size},
		}
	}
	bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "flatten_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			bind(0, fr.params, paramsSize),
			bind(1, fr.src, fr.pixelBytes),
			bind(2, fr.mask, fr.pixelBytes),
			bind(3, fr.mid, fr.pixelBytes),
			bind(4, fr.dst, fr.pixelBytes),
		},
	})
	if err != nil {
		return fr, fmt.Errorf("create bind group: %w", err)
	}
	fr.bindGroup = bg
	return fr, nil
}

func (fr *frameResources) destroy(device hal.Device) {
	if fr == nil || device == nil {
		return
	}
	if fr.bindGroup != nil {
		device.DestroyBindGroup(fr.bindGroup)
		fr.bindGroup = nil
	}
	for _, b := range []*hal.Buffer{&fr.params, &fr.src, &fr.mask, &fr.mid, &fr.dst, &fr.staging} {
		if *b != nil {
			device.DestroyBuffer(*b)
			*b = nil
		}
	}
}
