package canvas

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame counters. Only logged when debug mode is on.
type frameStats struct {
	objects   int
	movements int
	checks    int
}

// SetDebugMode enables or disables debug mode. When enabled, mutating a
// destroyed object logs a warning and per-frame stats are logged at debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Scene) DebugMode() bool { return s.debug }

// debugLog logs the stats gathered during the last AdvanceFrame.
func (s *Scene) debugLog(elapsed time.Duration) {
	if !s.debug {
		return
	}
	s.log.Debug("frame",
		zap.Uint64("frame", s.frame),
		zap.Duration("elapsed", elapsed),
		zap.Int("objects", s.stats.objects),
		zap.Int("movements", s.stats.movements),
		zap.Int("collision_checks", s.stats.checks),
	)
}

// debugCheckDestroyed logs a warning when a destroyed object is mutated. The
// mutation itself is always ignored by the caller.
func (s *Scene) debugCheckDestroyed(o *Object, op string) {
	if !s.debug {
		return
	}
	s.log.Warn("mutation of destroyed object ignored",
		zap.String("op", op), zap.String("id", o.viewID))
}
