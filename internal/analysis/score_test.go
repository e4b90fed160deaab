package analysis

import "testing"

func TestScoreBands(t *testing.T) {
	base := Ratios{DebtToIncomeRatio: 100, DebtToAssetRatio: 100}

	tests := []struct {
		name string
		mod  func(r *Ratios)
		want int
	}{
		{"nothing", func(r *Ratios) {}, 0},
		{"savings 20", func(r *Ratios) { r.SavingsRate = 20 }, 25},
		{"savings 19.9", func(r *Ratios) { r.SavingsRate = 19.9 }, 20},
		{"savings 10", func(r *Ratios) { r.SavingsRate = 10 }, 15},
		{"savings 5", func(r *Ratios) { r.SavingsRate = 5 }, 10},
		{"savings 4.99", func(r *Ratios) { r.SavingsRate = 4.99 }, 0},
		{"emergency 6", func(r *Ratios) { r.EmergencyFundCoverage = 6 }, 20},
		{"emergency 3", func(r *Ratios) { r.EmergencyFundCoverage = 3 }, 15},
		{"emergency 1", func(r *Ratios) { r.EmergencyFundCoverage = 1 }, 8},
		{"dti 20", func(r *Ratios) { r.DebtToIncomeRatio = 20 }, 20},
		{"dti 30", func(r *Ratios) { r.DebtToIncomeRatio = 30 }, 15},
		{"dti 40", func(r *Ratios) { r.DebtToIncomeRatio = 40 }, 10},
		{"dti 50", func(r *Ratios) { r.DebtToIncomeRatio = 50 }, 5},
		{"dti 50.1", func(r *Ratios) { r.DebtToIncomeRatio = 50.1 }, 0},
		{"current sentinel", func(r *Ratios) { r.CurrentRatio = NoShortTermDebt }, 15},
		{"current 1.5", func(r *Ratios) { r.CurrentRatio = 1.5 }, 12},
		{"current 1", func(r *Ratios) { r.CurrentRatio = 1 }, 8},
		{"return 5", func(r *Ratios) { r.AssetReturnRate = 5 }, 10},
		{"return 3", func(r *Ratios) { r.AssetReturnRate = 3 }, 8},
		{"return 1", func(r *Ratios) { r.AssetReturnRate = 1 }, 5},
		{"debt/asset 30", func(r *Ratios) { r.DebtToAssetRatio = 30 }, 10},
		{"debt/asset 50", func(r *Ratios) { r.DebtToAssetRatio = 50 }, 8},
		{"debt/asset 70", func(r *Ratios) { r.DebtToAssetRatio = 70 }, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mod(&r)
			if got := Score(r); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestScoreCeiling(t *testing.T) {
	r := Ratios{
		SavingsRate:           90,
		EmergencyFundCoverage: 48,
		CurrentRatio:          NoShortTermDebt,
		AssetReturnRate:       12,
	}
	if got := Score(r); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreMonotonicInSavings(t *testing.T) {
	prev := -1
	for rate := -50.0; rate <= 60; rate += 0.5 {
		got := Score(Ratios{SavingsRate: rate, DebtToIncomeRatio: 25, CurrentRatio: 1.2})
		if got < prev {
			t.Fatalf("score dropped from %d to %d at savings rate %v", prev, got, rate)
		}
		prev = got
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  HealthLevel
	}{
		{100, LevelExcellent},
		{80, LevelExcellent},
		{79, LevelGood},
		{60, LevelGood},
		{59, LevelFair},
		{40, LevelFair},
		{39, LevelPoor},
		{0, LevelPoor},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d): expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	if got := LevelPoor.Label(LocaleZH); got != "需改善" {
		t.Errorf("unexpected zh label %q", got)
	}
	if got := LevelPoor.Label(LocaleEN); got != "Needs Improvement" {
		t.Errorf("unexpected en label %q", got)
	}
	if got := HealthLevel("unknown").Label(LocaleEN); got != "unknown" {
		t.Errorf("unknown level should echo itself, got %q", got)
	}
}
