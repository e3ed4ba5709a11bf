package sunline

import "testing"

func TestInkBudget_Debit(t *testing.T) {
	tests := []struct {
		name   string
		cfg    InkConfig
		length float64
		want   float64
	}{
		{"default tuning", InkConfig{Max: 100, PerUnit: 1, UsageMultiplier: 4}, 5, 20},
		{"per unit", InkConfig{Max: 100, PerUnit: 2, UsageMultiplier: 1}, 3, 6},
		{"zero length", InkConfig{Max: 100, PerUnit: 1, UsageMultiplier: 4}, 0, 0},
		{"negative length", InkConfig{Max: 100, PerUnit: 1, UsageMultiplier: 4}, -2, 0},
		{"multiplier floored", InkConfig{Max: 100, PerUnit: 1, UsageMultiplier: 0}, 100, 1},
		{"negative per unit", InkConfig{Max: 100, PerUnit: -1, UsageMultiplier: 1}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewInkBudget(tt.cfg)
			got := b.Debit(tt.length)
			if !approxEqual(got, tt.want, tol) {
				t.Errorf("Debit(%v) = %v, want %v", tt.length, got, tt.want)
			}
			if !approxEqual(b.Used(), tt.want, tol) {
				t.Errorf("Used() = %v, want %v", b.Used(), tt.want)
			}
		})
	}
}

func TestInkBudget_UsedNeverDecreases(t *testing.T) {
	b := NewInkBudget(InkConfig{Max: 10, PerUnit: 1, UsageMultiplier: 4})
	prev := b.Used()
	for _, l := range []float64{1, 0, -3, 2.5, 0.01, -0.5, 7} {
		b.Debit(l)
		if b.Used() < prev {
			t.Fatalf("Used() dropped from %v to %v after Debit(%v)", prev, b.Used(), l)
		}
		prev = b.Used()
	}
}

func TestInkBudget_Ratios(t *testing.T) {
	b := NewInkBudget(InkConfig{Max: 100, PerUnit: 1, UsageMultiplier: 4})
	b.Debit(5)
	if got := b.UsedPercent(); !approxEqual(got, 20, tol) {
		t.Errorf("UsedPercent() = %v, want 20", got)
	}
	if got := b.RemainingFraction(); !approxEqual(got, 0.8, tol) {
		t.Errorf("RemainingFraction() = %v, want 0.8", got)
	}
	if got := b.Remaining(); !approxEqual(got, 80, tol) {
		t.Errorf("Remaining() = %v, want 80", got)
	}

	b.Debit(100)
	if got := b.UsedPercent(); got != 100 {
		t.Errorf("UsedPercent() over budget = %v, want 100", got)
	}
	if got := b.Remaining(); got != 0 {
		t.Errorf("Remaining() over budget = %v, want 0", got)
	}

	b.Reset()
	if b.Used() != 0 || b.RemainingFraction() != 1 {
		t.Errorf("after Reset: Used=%v RemainingFraction=%v", b.Used(), b.RemainingFraction())
	}
}

func TestInkBudget_ZeroMax(t *testing.T) {
	b := NewInkBudget(InkConfig{Max: 0, PerUnit: 1, UsageMultiplier: 1})
	if got := b.UsedPercent(); got != 0 {
		t.Errorf("UsedPercent() with nothing used = %v, want 0", got)
	}
	b.Debit(1)
	if got := b.UsedPercent(); got != 100 {
		t.Errorf("UsedPercent() = %v, want 100", got)
	}
}

func TestInkBudget_FiveUnitsEarnThreeStars(t *testing.T) {
	cfg := DefaultLevelConfig()
	b := NewInkBudget(cfg.Ink)
	b.Debit(Vec2{0, 0}.Dist(Vec2{5, 0}))
	if got := DetermineStars(b.UsedPercent(), cfg.Stars); got != 3 {
		t.Errorf("stars = %d, want 3 at %v%%", got, b.UsedPercent())
	}
}
