//go:build !nogpu

package gpu

import (
	"strings"
	"testing"
)

// skipNagaLimitation skips when naga does not yet support a shader feature.
func skipNagaLimitation(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
}

func TestFlattenShaderCompilation(t *testing.T) {
	if flattenShaderWGSL == "" {
		t.Fatal("flatten shader source is empty")
	}

	spirv, err := compileShaderToSPIRV(flattenShaderWGSL)
	if err != nil {
		skipNagaLimitation(t, err)
		t.Fatalf("failed to compile flatten shader: %v", err)
	}
	if len(spirv) == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	if spirv[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", spirv[0])
	}
}

func TestFlattenShaderEntryPoints(t *testing.T) {
	for _, ep := range []string{transformEntryPoint, smoothEntryPoint} {
		if !strings.Contains(flattenShaderWGSL, "fn "+ep+"(") {
			t.Errorf("shader has no entry point %q", ep)
		}
	}
}

func TestCompileShaderInvalidSource(t *testing.T) {
	if _, err := compileShaderToSPIRV("this is not wgsl"); err == nil {
		t.Error("expected error for invalid WGSL")
	}
}
