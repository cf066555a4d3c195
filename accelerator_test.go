package wigfit

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
)

// mockAccelerator implements FlattenAccelerator for testing.
type mockAccelerator struct {
	name        string
	unsupported bool
	initErr     error
	process     func(*Frame, *HairMask, FlattenParams) (*Frame, error)

	mu         sync.Mutex
	initCalls  int
	procCalls  int
	closeCalls int
	lastParams FlattenParams
	logger     *slog.Logger
}

func (m *mockAccelerator) Name() string { return m.name }

func (m *mockAccelerator) IsSupported() bool { return !m.unsupported }

func (m *mockAccelerator) Init(_, _ int) error {
	m.mu.Lock()
	m.initCalls++
	m.mu.Unlock()
	return m.initErr
}

func (m *mockAccelerator) Process(frame *Frame, mask *HairMask, p FlattenParams) (*Frame, error) {
	m.mu.Lock()
	m.procCalls++
	m.lastParams = p
	m.mu.Unlock()
	if m.process == nil {
		return nil, nil
	}
	return m.process(frame, mask, p)
}

func (m *mockAccelerator) Close() {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
}

func (m *mockAccelerator) SetLogger(l *slog.Logger) {
	m.mu.Lock()
	m.logger = l
	m.mu.Unlock()
}

func (m *mockAccelerator) closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

// resetAccelerator clears the global accelerator state between tests.
func resetAccelerator() {
	accelMu.Lock()
	accel = nil
	accelMu.Unlock()
}

func TestRegisterAcceleratorNil(t *testing.T) {
	t.Cleanup(resetAccelerator)
	resetAccelerator()

	err := RegisterAccelerator(nil)
	if !errors.Is(err, ErrNilAccelerator) {
		t.Errorf("RegisterAccelerator(nil) = %v, want ErrNilAccelerator", err)
	}
	if Accelerator() != nil {
		t.Error("Accelerator() should be nil after failed registration")
	}
}

func TestRegisterAcceleratorSuccess(t *testing.T) {
	t.Cleanup(resetAccelerator)
	resetAccelerator()

	mock := &mockAccelerator{name: "test-gpu"}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatalf("RegisterAccelerator() = %v", err)
	}
	if got := Accelerator(); got != mock {
		t.Errorf("Accelerator() = %v, want %v", got, mock)
	}
	if mock.initCalls != 0 {
		t.Errorf("registration called Init %d times, want 0", mock.initCalls)
	}
}

func TestRegisterAcceleratorReplacesOld(t *testing.T) {
	t.Cleanup(resetAccelerator)
	resetAccelerator()

	first := &mockAccelerator{name: "first"}
	second := &mockAccelerator{name: "second"}
	if err := RegisterAccelerator(first); err != nil {
		t.Fatal(err)
	}
	if err := RegisterAccelerator(second); err != nil {
		t.Fatal(err)
	}
	if first.closed() != 1 {
		t.Errorf("first accelerator closed %d times, want 1", first.closed())
	}
	if Accelerator() != second {
		t.Error("Accelerator() should return the second accelerator")
	}

	// Re-registering the same accelerator must not close it.
	if err := RegisterAccelerator(second); err != nil {
		t.Fatal(err)
	}
	if second.closed() != 0 {
		t.Errorf("re-registered accelerator closed %d times, want 0", second.closed())
	}
}

func TestUnregisterAccelerator(t *testing.T) {
	t.Cleanup(resetAccelerator)
	resetAccelerator()

	mock := &mockAccelerator{name: "gone"}
	_ = RegisterAccelerator(mock)
	UnregisterAccelerator()
	if Accelerator() != nil {
		t.Error("Accelerator() should be nil after UnregisterAccelerator")
	}
	if mock.closed() != 1 {
		t.Errorf("closed %d times, want 1", mock.closed())
	}
	UnregisterAccelerator()
}

type providerAccelerator struct {
	mockAccelerator
	provider any
}

func (p *providerAccelerator) SetDeviceProvider(provider any) error {
	p.provider = provider
	return nil
}

func TestSetAcceleratorDeviceProvider(t *testing.T) {
	t.Cleanup(resetAccelerator)
	resetAccelerator()

	if err := SetAcceleratorDeviceProvider("device"); err != nil {
		t.Errorf("no accelerator: got %v, want nil", err)
	}

	plain := &mockAccelerator{name: "plain"}
	_ = RegisterAccelerator(plain)
	if err := SetAcceleratorDeviceProvider("device"); err != nil {
		t.Errorf("non-aware accelerator: got %v, want nil", err)
	}

	aware := &providerAccelerator{mockAccelerator: mockAccelerator{name: "aware"}}
	_ = RegisterAccelerator(aware)
	if err := SetAcceleratorDeviceProvider("device"); err != nil {
		t.Fatalf("SetAcceleratorDeviceProvider() = %v", err)
	}
	if aware.provider != "device" {
		t.Errorf("provider = %v, want %q", aware.provider, "device")
	}
}

func TestErrFallbackToCPU(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrFallbackToCPU)
	if !errors.Is(wrapped, ErrFallbackToCPU) {
		t.Error("errors.Is should find ErrFallbackToCPU in joined error")
	}
}
