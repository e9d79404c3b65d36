package services

import "math"

// Milestone tables for the two point counters. Indices into thresholds and
// names line up; tier 0 is the baseline and never earns a trophy.
var (
	xpLevels   = []int{0, 10, 25, 50, 100, 200}
	levelNames = []string{"Loser", "Junior", "Senior", "Master", "Alcoholist", "Leverfalen"}
	xpBadges   = []string{"", "normal", "gray", "bronze", "zilver", "gold"}

	repTiers        = []int{0, 10, 25, 50, 100}
	reputationNames = []string{"Neutral", "Strooier", "Mormel", "Schoft", "Klootzak"}
	repBadges       = []string{"", "normal", "gray", "bronze", "zilver"}
)

// TierDetails describes where a point value sits in its milestone table.
type TierDetails struct {
	Index           int    `json:"index"`
	Name            string `json:"name"`
	Badge           string `json:"badge"`
	NextThreshold   *int   `json:"next_threshold,omitempty"`
	ProgressPercent int    `json:"progress_percent"`
}

// LevelDetails computes the XP tier for a raw experience value.
func LevelDetails(xp int) TierDetails {
	return tierDetails(xp, xpLevels, levelNames, xpBadges)
}

// ReputationDetails computes the REP tier for a raw reputation value.
func ReputationDetails(rep int) TierDetails {
	return tierDetails(rep, repTiers, reputationNames, repBadges)
}

// tierIndex returns the greatest i with value >= thresholds[i]. Thresholds
// start at 0, so the result is always in range.
func tierIndex(value int, thresholds []int) int {
	idx := 0
	for i, threshold := range thresholds {
		if value >= threshold {
			idx = i
		}
	}
	return idx
}

func tierDetails(value int, thresholds []int, names, badges []string) TierDetails {
	idx := tierIndex(value, thresholds)
	details := TierDetails{
		Index:           idx,
		Name:            names[idx],
		Badge:           badges[idx],
		ProgressPercent: 100,
	}
	if idx+1 < len(thresholds) {
		next := thresholds[idx+1]
		details.NextThreshold = &next
		details.ProgressPercent = int(math.Round(float64(value) / float64(next) * 100))
	}
	return details
}

// milestoneNamesUpTo lists the tier names earned at tierIdx, skipping the
// baseline tier 0.
func milestoneNamesUpTo(tierIdx int, names []string) []string {
	var earned []string
	for i := 1; i <= tierIdx && i < len(names); i++ {
		earned = append(earned, names[i])
	}
	return earned
}

// MilestoneTrophyNames returns every trophy name that the awarding engine
// manages. Admins may not hand these out manually.
func MilestoneTrophyNames() []string {
	var names []string
	names = append(names, levelNames[1:]...)
	names = append(names, reputationNames[1:]...)
	return names
}
