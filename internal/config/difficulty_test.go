package config

import (
	"math"
	"testing"
)

func rushDifficulty() DifficultyConfig {
	d := DefaultJaimpConfig().Difficulty
	d.Enabled = true
	return d
}

func TestDifficultyDisabledKeepsBase(t *testing.T) {
	dm := NewDifficultyManager(DefaultJaimpConfig().Difficulty)

	if dm.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := dm.Speed(200, 100, 0); got != 200 {
		t.Errorf("Speed() = %v, expected base 200", got)
	}
	if got := dm.Interval(2.0, 100, 0); got != 2.0 {
		t.Errorf("Interval() = %v, expected base 2.0", got)
	}
}

func TestDifficultyLevelProgression(t *testing.T) {
	dm := NewDifficultyManager(rushDifficulty())

	tests := []struct {
		chunks   int
		expected float64
	}{
		{0, 0.0},
		{5, 0.2},
		{25, 1.0},
		{100, 1.0},
	}

	for _, tc := range tests {
		if got := dm.Level(tc.chunks, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.chunks, got, tc.expected)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	dm := NewDifficultyManager(rushDifficulty())
	dm.SetInitialLevel(0.5)

	if got := dm.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := dm.Level(25, 0); got != 1.0 {
		t.Errorf("Level(max) = %v, expected 1.0", got)
	}

	dm.SetInitialLevel(3)
	if got := dm.Level(0, 0); got != 1.0 {
		t.Errorf("initial level should clamp to 1.0, got %v", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	dm := NewDifficultyManager(rushDifficulty())

	if got := dm.Speed(100, 25, 0); math.Abs(got-180) > 1e-9 {
		t.Errorf("Speed at max = %v, expected 180", got)
	}
	if got := dm.Interval(2.0, 25, 0); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Interval at max = %v, expected 1.0", got)
	}

	cfg := rushDifficulty()
	cfg.Scaling.IntervalReduction = 1.0
	dm = NewDifficultyManager(cfg)
	if got := dm.Interval(2.0, 25, 0); got != 0.5 {
		t.Errorf("Interval floor = %v, expected 0.5", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	cfg := rushDifficulty()
	cfg.Progression = ProgressionConfig{Type: "time", MaxAt: 100}
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 50); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(ticks=50) = %v, expected 0.5", got)
	}
}
