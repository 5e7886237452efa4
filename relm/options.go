package relm

import (
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	// DefaultSlowUpdate is the update duration above which a warning is
	// logged.
	DefaultSlowUpdate = 200 * time.Millisecond
	// DebugSlowUpdate is the threshold suited to debug builds: one frame.
	DebugSlowUpdate = 16 * time.Millisecond
)

// Hooks receives lifecycle and update events, typically to record
// metrics. Hooks are called on the UI goroutine.
type Hooks interface {
	ComponentCreated(name string)
	ComponentDestroyed(name string)
	UpdateFinished(name, msg string, elapsed time.Duration)
	SlowUpdate(name, msg string, elapsed time.Duration)
}

type settings struct {
	logger     *slog.Logger
	slowUpdate time.Duration
	hooks      Hooks
}

var current atomic.Pointer[settings]

func init() {
	current.Store(&settings{slowUpdate: DefaultSlowUpdate})
}

// Option configures the runtime.
type Option func(*settings)

// WithLogger sets the logger used by the runtime. Nil restores
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithSlowUpdateThreshold sets the duration above which an update is
// reported as slow. Zero or less disables the warning.
func WithSlowUpdateThreshold(d time.Duration) Option {
	return func(s *settings) { s.slowUpdate = d }
}

// WithHooks installs lifecycle hooks. Nil removes them.
func WithHooks(h Hooks) Option {
	return func(s *settings) { s.hooks = h }
}

// Configure applies opts to the runtime settings. Components created
// earlier pick up the new settings on their next update.
func Configure(opts ...Option) {
	for {
		old := current.Load()
		next := *old
		for _, opt := range opts {
			opt(&next)
		}
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

func loadSettings() *settings {
	return current.Load()
}

func (s *settings) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}
