//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync/atomic"
)

// acceleratorName identifies this backend in logs and in wigfit.
const acceleratorName = "wgpu-flatten"

var (
	loggerPtr atomic.Pointer[slog.Logger]
	discard   = slog.New(slog.DiscardHandler)
)

// slogger returns the package logger; silent until setLogger is called.
func slogger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return discard
}

// setLogger installs l with every record tagged by accelerator name.
// Called from FlattenAccelerator.SetLogger when wigfit.SetLogger propagates.
// A nil logger silences the package again.
func setLogger(l *slog.Logger) {
	if l == nil {
		loggerPtr.Store(nil)
		return
	}
	loggerPtr.Store(l.With("accelerator", acceleratorName))
}
