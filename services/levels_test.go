package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDetails(t *testing.T) {
	tests := []struct {
		name         string
		xp           int
		wantIndex    int
		wantName     string
		wantNext     int // 0 means no next threshold
		wantProgress int
	}{
		{"zero xp is baseline", 0, 0, "Loser", 10, 0},
		{"just below first milestone", 9, 0, "Loser", 10, 90},
		{"exactly on milestone", 10, 1, "Junior", 25, 40},
		{"between milestones", 60, 3, "Master", 100, 60},
		{"exactly max tier", 200, 5, "Leverfalen", 0, 100},
		{"beyond max tier clamps", 9999, 5, "Leverfalen", 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelDetails(tt.xp)
			assert.Equal(t, tt.wantIndex, got.Index)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantProgress, got.ProgressPercent)
			if tt.wantNext == 0 {
				assert.Nil(t, got.NextThreshold)
			} else {
				require.NotNil(t, got.NextThreshold)
				assert.Equal(t, tt.wantNext, *got.NextThreshold)
			}
		})
	}
}

func TestReputationDetails(t *testing.T) {
	got := ReputationDetails(25)
	assert.Equal(t, 2, got.Index)
	assert.Equal(t, "Mormel", got.Name)
	require.NotNil(t, got.NextThreshold)
	assert.Equal(t, 50, *got.NextThreshold)
	assert.Equal(t, 50, got.ProgressPercent)

	top := ReputationDetails(150)
	assert.Equal(t, "Klootzak", top.Name)
	assert.Nil(t, top.NextThreshold)
	assert.Equal(t, 100, top.ProgressPercent)
}

func TestTierIndexMonotonic(t *testing.T) {
	prev := 0
	for v := 0; v <= 250; v++ {
		idx := tierIndex(v, xpLevels)
		assert.GreaterOrEqual(t, idx, prev, "tier index must never drop as xp grows (v=%d)", v)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(levelNames))
		prev = idx
	}
}

func TestMilestoneNamesUpTo(t *testing.T) {
	assert.Empty(t, milestoneNamesUpTo(0, levelNames), "baseline tier earns nothing")
	assert.Equal(t, []string{"Junior"}, milestoneNamesUpTo(1, levelNames))
	assert.Equal(t, []string{"Junior", "Senior", "Master"}, milestoneNamesUpTo(3, levelNames))
	assert.Len(t, milestoneNamesUpTo(99, levelNames), len(levelNames)-1, "index past the table is clamped")
}

func TestMilestoneTrophyNames(t *testing.T) {
	names := MilestoneTrophyNames()
	assert.Contains(t, names, "Leverfalen")
	assert.Contains(t, names, "Klootzak")
	assert.NotContains(t, names, "Loser")
	assert.NotContains(t, names, "Neutral")
	assert.Len(t, names, 9)
}
