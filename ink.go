package sunline

// minUsageMultiplier keeps a misconfigured multiplier from making drawing
// free or refunding ink.
const minUsageMultiplier = 0.01

// InkBudget is the finite resource consumed by drawing. Used never decreases
// until Reset.
type InkBudget struct {
	max        float64
	perUnit    float64
	multiplier float64
	used       float64
}

// NewInkBudget creates a full budget from cfg.
func NewInkBudget(cfg InkConfig) *InkBudget {
	return &InkBudget{
		max:        cfg.Max,
		perUnit:    max(cfg.PerUnit, 0),
		multiplier: max(cfg.UsageMultiplier, minUsageMultiplier),
	}
}

// Cost returns the ink a segment of the given length would consume.
func (b *InkBudget) Cost(length float64) float64 {
	return length * b.perUnit * b.multiplier
}

// Debit charges a segment of the given length and returns the amount charged.
// Negative lengths charge nothing.
func (b *InkBudget) Debit(length float64) float64 {
	if length <= 0 {
		return 0
	}
	cost := b.Cost(length)
	b.used += cost
	return cost
}

// Max returns the configured budget.
func (b *InkBudget) Max() float64 { return b.max }

// Used returns the total ink consumed this playthrough.
func (b *InkBudget) Used() float64 { return b.used }

// Remaining returns max(0, Max - Used).
func (b *InkBudget) Remaining() float64 {
	return max(0, b.max-b.used)
}

// UsedPercent returns Used as a percentage of Max in [0, 100]. A non-positive
// Max is treated as epsilon.
func (b *InkBudget) UsedPercent() float64 {
	return clamp01(b.used/max(epsilon, b.max)) * 100
}

// RemainingFraction returns Remaining / Max in [0, 1], the value fed to the
// progress indicator.
func (b *InkBudget) RemainingFraction() float64 {
	return clamp01(b.Remaining() / max(epsilon, b.max))
}

// Reset refills the budget.
func (b *InkBudget) Reset() { b.used = 0 }
