package textmesh

import (
	"log/slog"

	"github.com/gogpu/textmesh/internal/logging"
)

// SetLogger configures the logger for textmesh and all its sub-packages.
// By default textmesh produces no log output. Pass nil to restore the
// silent default.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by textmesh:
//   - [slog.LevelDebug]: per-pass diagnostics (meshes created, fonts published)
//   - [slog.LevelWarn]: the one-time missing font warning, failed font loads
//   - [slog.LevelError]: mesh generation failures
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by textmesh.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
