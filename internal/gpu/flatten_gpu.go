//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wigfit"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// fenceTimeout bounds the wait for one frame's submission.
const fenceTimeout = 5 * time.Second

// FlattenAccelerator runs the wigfit flatten transform with wgpu/hal
// compute shaders. It implements wigfit.FlattenAccelerator.
type FlattenAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader            hal.ShaderModule
	bindLayout        hal.BindGroupLayout
	pipeLayout        hal.PipelineLayout
	transformPipeline hal.ComputePipeline
	smoothPipeline    hal.ComputePipeline

	frame *frameResources // nil until the first Init or Process

	adapterName    string
	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ wigfit.FlattenAccelerator = (*FlattenAccelerator)(nil)

// NewFlattenAccelerator returns an accelerator that allocates nothing until Init.
func NewFlattenAccelerator() *FlattenAccelerator {
	return &FlattenAccelerator{}
}

// Name returns the accelerator name.
func (a *FlattenAccelerator) Name() string { return acceleratorName }

// IsSupported reports whether the Vulkan HAL backend is compiled in.
func (a *FlattenAccelerator) IsSupported() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}

// SetLogger installs the logger used by this package.
func (a *FlattenAccelerator) SetLogger(l *slog.Logger) { setLogger(l) }

// AdapterName returns the name of the selected GPU, or "" before Init.
func (a *FlattenAccelerator) AdapterName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adapterName
}

// Init opens a device (unless one is shared) and sizes the frame buffers.
func (a *FlattenAccelerator) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return wigfit.ErrInvalidDimensions
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gpuReady {
		if err := a.initGPU(); err != nil {
			a.releaseLocked()
			return err
		}
	}
	return a.ensureFrameResources(width, height)
}

// Process uploads frame and mask, runs both passes and reads back the image.
func (a *FlattenAccelerator) Process(frame *wigfit.Frame, mask *wigfit.HairMask, p wigfit.FlattenParams) (*wigfit.Frame, error) {
	if frame == nil || frame.Empty() || !mask.Matches(frame) {
		return nil, wigfit.ErrFallbackToCPU
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return nil, wigfit.ErrFallbackToCPU
	}

	w, h := frame.Width(), frame.Height()
	if err := a.ensureFrameResources(w, h); err != nil {
		return nil, err
	}

	start := time.Now()
	nr, ng, nb := wigfit.NeutralScalpTone()
	fr := a.frame
	a.queue.WriteBuffer(fr.params, 0, encodeParams(uint32(w), uint32(h), p, packColor(nr, ng, nb, 255))) //nolint:gosec // dimensions always fit uint32
	a.queue.WriteBuffer(fr.src, 0, packPixelsForGPU(frame.Data(), w*h))
	a.queue.WriteBuffer(fr.mask, 0, packMaskForGPU(mask.Data()))

	readback, err := a.dispatch(fr)
	if err != nil {
		return nil, err
	}
	out := wigfit.NewFrame(w, h)
	unpackPixelsFromGPU(readback, out.Data(), w*h)

	slogger().Debug("frame processed",
		"mode", p.Mode, "width", w, "height", h, "elapsed", time.Since(start))
	return out, nil
}

// Close releases every GPU resource. A shared device is left alive.
func (a *FlattenAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

// SetDeviceProvider switches the accelerator to a GPU device shared by the
// host. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func (a *FlattenAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu-flatten: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu-flatten: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu-flatten: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.device = device
	a.queue = queue
	a.externalDevice = true
	a.adapterName = "shared"

	if err := a.createPipelines(); err != nil {
		a.releaseLocked()
		return fmt.Errorf("gpu-flatten: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("switched to shared GPU device")
	return nil
}

func (a *FlattenAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("gpu-flatten: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("gpu-flatten: create instance: %w", err)
	}
	a.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("gpu-flatten: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("gpu-flatten: open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipelines(); err != nil {
		return fmt.Errorf("gpu-flatten: create pipelines: %w", err)
	}
	a.adapterName = selected.Info.Name
	a.gpuReady = true
	slogger().Info("GPU accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *FlattenAccelerator) createPipelines() error {
	shader, err := createFlattenShader(a.device)
	if err != nil {
		return err
	}
	a.shader = shader

	storage := func(binding uint32, kind gputypes.BufferBindingType) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: kind},
		}
	}
	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "flatten_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			storage(0, gputypes.BufferBindingTypeUniform),
			storage(1, gputypes.BufferBindingTypeReadOnlyStorage),
			storage(2, gputypes.BufferBindingTypeReadOnlyStorage),
			storage(3, gputypes.BufferBindingTypeStorage),
			storage(4, gputypes.BufferBindingTypeStorage),
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "flatten_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	a.transformPipeline, err = a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "flatten_transform", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: transformEntryPoint},
	})
	if err != nil {
		return fmt.Errorf("create transform pipeline: %w", err)
	}

	a.smoothPipeline, err = a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "flatten_smooth", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: smoothEntryPoint},
	})
	if err != nil {
		return fmt.Errorf("create smooth pipeline: %w", err)
	}
	return nil
}

// dispatch records both passes and the readback copy, submits and waits.
func (a *FlattenAccelerator) dispatch(fr *frameResources) ([]byte, error) {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "flatten_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("flatten"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	gx, gy := (fr.width+7)/8, (fr.height+7)/8
	for _, pipeline := range []hal.ComputePipeline{a.transformPipeline, a.smoothPipeline} {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "flatten_pass"})
		pass.SetPipeline(pipeline)
		pass.SetBindGroup(0, fr.bindGroup, nil)
		pass.Dispatch(gx, gy, 1)
		pass.End()
	}
	encoder.CopyBufferToBuffer(fr.dst, fr.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: fr.pixelBytes},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, fr.pixelBytes)
	if err := a.queue.ReadBuffer(fr.staging, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	return readback, nil
}

// releaseLocked destroys frame resources, pipelines and, unless shared,
// the device and instance. Caller must hold a.mu.
func (a *FlattenAccelerator) releaseLocked() {
	if a.frame != nil {
		a.frame.destroy(a.device)
		a.frame = nil
	}
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.instance = nil
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
	a.adapterName = ""
}

func (a *FlattenAccelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	if a.smoothPipeline != nil {
		a.device.DestroyComputePipeline(a.smoothPipeline)
		a.smoothPipeline = nil
	}
	if a.transformPipeline != nil {
		a.device.DestroyComputePipeline(a.transformPipeline)
		a.transformPipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}
