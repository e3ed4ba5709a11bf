package sunline

// StarThresholds are ink-usage percentages. Lower usage earns more stars.
type StarThresholds struct {
	// OneStar is kept for level files; one star is always granted.
	OneStar   float64 `json:"oneStar"`
	TwoStar   float64 `json:"twoStar"`
	ThreeStar float64 `json:"threeStar"`
}

// DetermineStars rates a playthrough by the percentage of ink it used.
func DetermineStars(inkUsedPercent float64, t StarThresholds) int {
	switch {
	case inkUsedPercent <= t.ThreeStar:
		return 3
	case inkUsedPercent <= t.TwoStar:
		return 2
	default:
		return 1
	}
}

// StarIndicator is a star widget that can be lit or dimmed.
type StarIndicator interface {
	SetLit(lit bool)
}

// StarBoard drives three star indicators from the live ink percentage.
// Unset indicators are skipped with a single warning each.
type StarBoard struct {
	stars      [3]StarIndicator
	thresholds StarThresholds
	warned     [3]bool
	lit        [3]bool
}

// NewStarBoard creates a board over the given indicators. Any of them may be
// nil.
func NewStarBoard(stars [3]StarIndicator, t StarThresholds) *StarBoard {
	return &StarBoard{stars: stars, thresholds: t}
}

// Update lights star one unconditionally and stars two and three while
// pct stays within their thresholds.
func (s *StarBoard) Update(pct float64) {
	s.set(0, true)
	s.set(1, pct <= s.thresholds.TwoStar)
	s.set(2, pct <= s.thresholds.ThreeStar)
}

// Show lights exactly the first n stars.
func (s *StarBoard) Show(n int) {
	for i := range s.stars {
		s.set(i, i < n)
	}
}

// Lit reports the last state pushed to star i (0-based).
func (s *StarBoard) Lit(i int) bool {
	if i < 0 || i >= len(s.lit) {
		return false
	}
	return s.lit[i]
}

func (s *StarBoard) set(i int, lit bool) {
	s.lit[i] = lit
	if s.stars[i] == nil {
		if !s.warned[i] {
			s.warned[i] = true
			logf("sunline: star indicator %d is not set", i+1)
		}
		return
	}
	s.stars[i].SetLit(lit)
}
