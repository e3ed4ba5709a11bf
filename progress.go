package sunline

import "fmt"

// State is a step of a playthrough.
type State uint8

const (
	StateIdle        State = iota // waiting for the first stroke
	StateDrawing                  // a stroke is in progress
	StateLineDropped              // the line fell, nothing collected yet
	StateCollecting               // at least one particle collected
	StateWon                      // terminal until restart
)

var stateNames = [...]string{"idle", "drawing", "lineDropped", "collecting", "won"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// ProgressIndicator shows the remaining ink as a fraction in [0, 1].
type ProgressIndicator interface {
	SetFraction(f float64)
}

// Progress tracks ink-driven live stars, the collected count, and the win.
type Progress struct {
	ink        *InkBudget
	thresholds StarThresholds
	winAt      int

	bar   ProgressIndicator
	board *StarBoard

	state     State
	collected int
	won       bool
	stars     int
	warnedBar bool

	// OnWin runs once, when the collected count first reaches the
	// threshold.
	OnWin func(stars int)
}

// NewProgress creates a progress tracker. bar and stars may be nil or
// partially set; missing widgets are skipped with a warning.
func NewProgress(cfg *LevelConfig, ink *InkBudget, bar ProgressIndicator, stars [3]StarIndicator) *Progress {
	return &Progress{
		ink:        ink,
		thresholds: cfg.Stars,
		winAt:      max(cfg.WinThreshold, 1),
		bar:        bar,
		board:      NewStarBoard(stars, cfg.Stars),
	}
}

// State returns the current step.
func (p *Progress) State() State { return p.state }

// Collected returns the number of distinct particles collected.
func (p *Progress) Collected() int { return p.collected }

// Won reports whether the win has fired.
func (p *Progress) Won() bool { return p.won }

// Stars returns the rating frozen at the win, or 0 before it.
func (p *Progress) Stars() int { return p.stars }

// Board returns the live star indicators.
func (p *Progress) Board() *StarBoard { return p.board }

// Refresh pushes the current ink state to the bar and the live stars.
func (p *Progress) Refresh() {
	if p.bar != nil {
		p.bar.SetFraction(p.ink.RemainingFraction())
	} else if !p.warnedBar {
		p.warnedBar = true
		logf("sunline: progress indicator is not set")
	}
	p.board.Update(p.ink.UsedPercent())
}

// StrokeStarted moves Idle to Drawing.
func (p *Progress) StrokeStarted() {
	if p.state == StateIdle {
		p.state = StateDrawing
	}
}

// StrokeCancelled moves Drawing back to Idle after a tap.
func (p *Progress) StrokeCancelled() {
	if p.state == StateDrawing {
		p.state = StateIdle
	}
}

// LineDropped moves Drawing to LineDropped.
func (p *Progress) LineDropped() {
	if p.state == StateDrawing || p.state == StateIdle {
		p.state = StateLineDropped
	}
}

// OnParticleCollected counts one particle and fires the win when the
// threshold is reached. It reports whether this call fired the win.
func (p *Progress) OnParticleCollected() bool {
	p.collected++
	if p.state == StateLineDropped {
		p.state = StateCollecting
	}
	if p.won || p.collected < p.winAt {
		return false
	}
	p.won = true
	p.state = StateWon
	p.stars = DetermineStars(p.ink.UsedPercent(), p.thresholds)
	p.Refresh()
	if p.OnWin != nil {
		p.OnWin(p.stars)
	}
	return true
}

// Reset returns to Idle for a new playthrough.
func (p *Progress) Reset() {
	p.state = StateIdle
	p.collected = 0
	p.won = false
	p.stars = 0
	p.Refresh()
}
