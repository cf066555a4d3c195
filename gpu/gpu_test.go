//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wigfit"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestInitRegistersAccelerator(t *testing.T) {
	a := wigfit.Accelerator()
	if a == nil {
		t.Fatal("no accelerator registered")
	}
	if a.Name() != "wgpu-flatten" {
		t.Errorf("Name() = %q, want %q", a.Name(), "wgpu-flatten")
	}
}

func TestSetDeviceProviderNil(t *testing.T) {
	if err := SetDeviceProvider(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("SetDeviceProvider(nil) = %v, want ErrNilProvider", err)
	}
}

func TestSetDeviceProviderWithoutHAL(t *testing.T) {
	if err := SetDeviceProvider(&mockProvider{}); err == nil {
		t.Error("expected error for provider without HAL access")
	}
}
