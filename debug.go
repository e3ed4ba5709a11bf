package sunline

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame timing and simulation counts.
// Only populated when the level is in debug mode.
type debugStats struct {
	frameTime time.Duration
	stepTime  time.Duration
	tasks     int
	particles int
	points    int
	inkUsed   float64
}

// debugOut is where debug output goes. Tests swap it.
var debugOut io.Writer = os.Stderr

// debugMaxParticles is the live-particle count above which a warning is printed.
const debugMaxParticles = 500

// SetDebugMode enables per-frame stats on stderr.
func (l *Level) SetDebugMode(enabled bool) { l.debug = enabled }

// DebugMode reports whether per-frame stats are printed.
func (l *Level) DebugMode() bool { return l.debug }

// debugLog prints timing and simulation stats.
func (l *Level) debugLog(stats debugStats) {
	if !l.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[sunline] frame: %v | physics: %v | tasks: %d\n",
		stats.frameTime, stats.stepTime, stats.tasks)
	_, _ = fmt.Fprintf(debugOut,
		"[sunline] state: %s | points: %d | particles: %d | ink: %.1f%%\n",
		l.progress.State(), stats.points, stats.particles, stats.inkUsed)
	if stats.particles > debugMaxParticles {
		_, _ = fmt.Fprintf(debugOut, "[sunline] warning: %d particles exceed %d\n",
			stats.particles, debugMaxParticles)
	}
}
