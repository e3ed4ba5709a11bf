package sunline

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of a play-through script. Which fields matter
// depends on Action.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`

	// click
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// drag
	FromX float64 `json:"fromX,omitempty"`
	FromY float64 `json:"fromY,omitempty"`
	ToX   float64 `json:"toX,omitempty"`
	ToY   float64 `json:"toY,omitempty"`

	// drag, wait
	Frames int `json:"frames,omitempty"`
	// collect
	Count int `json:"count,omitempty"`
}

var scriptActions = map[string]func(r *TestRunner, l *Level, st scriptStep){
	"click": func(_ *TestRunner, l *Level, st scriptStep) {
		l.input.InjectClick(st.X, st.Y)
	},
	"drag": func(_ *TestRunner, l *Level, st scriptStep) {
		l.input.InjectDrag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, max(st.Frames, 2))
	},
	"wait": func(r *TestRunner, _ *Level, st scriptStep) {
		// The frame that reads the step is the first one waited.
		r.hold = max(st.Frames-1, 0)
	},
	"pause":   func(_ *TestRunner, l *Level, _ scriptStep) { l.SetPaused(true) },
	"resume":  func(_ *TestRunner, l *Level, _ scriptStep) { l.SetPaused(false) },
	"restart": func(_ *TestRunner, l *Level, _ scriptStep) { l.Restart() },
	"collect": func(_ *TestRunner, l *Level, st scriptStep) {
		for range max(st.Count, 1) {
			l.OnParticleCollected()
		}
	},
	"log": func(_ *TestRunner, l *Level, st scriptStep) {
		logf("sunline: [%s] state=%s collected=%d ink=%.1f%% stars=%d",
			st.Label, l.progress.State(), l.progress.Collected(), l.ink.UsedPercent(), l.progress.Stars())
	},
}

// TestRunner replays a script of injected input and level actions, one
// step per frame once earlier injections have drained.
//
// Actions: click, drag, wait, pause, resume, restart, collect, and log.
type TestRunner struct {
	script []scriptStep
	next   int
	hold   int
	done   bool
}

// LoadTestScript parses a script of the form {"steps": [...]}.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var doc struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range doc.Steps {
		if _, ok := scriptActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{script: doc.Steps}, nil
}

// SetTestRunner attaches runner. It steps at the start of every Update,
// ahead of input.
func (l *Level) SetTestRunner(runner *TestRunner) {
	l.runner = runner
}

// Done reports whether the script has finished.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(l *Level) {
	switch {
	case r.done, l.input.Pending() > 0:
		return
	case r.hold > 0:
		r.hold--
		return
	case r.next >= len(r.script):
		r.done = true
		return
	}

	st := r.script[r.next]
	r.next++
	scriptActions[st.Action](r, l, st)

	r.done = r.next >= len(r.script) && r.hold == 0 && l.input.Pending() == 0
}
