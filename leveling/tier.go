package leveling

import (
	"fmt"
	"sort"

	"level-bot/model"
)

// SortTiers orders a tier table by threshold, breaking ties by level and then id.
func SortTiers(tiers []model.Tier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].Threshold != tiers[j].Threshold {
			return tiers[i].Threshold < tiers[j].Threshold
		}
		if tiers[i].Level != tiers[j].Level {
			return tiers[i].Level < tiers[j].Level
		}
		return tiers[i].ID < tiers[j].ID
	})
}

// ResolveTier returns the tier with the highest threshold not above xp.
// tiers must be sorted with SortTiers. Among equal thresholds the last one wins.
func ResolveTier(xp int64, tiers []model.Tier) (model.Tier, bool) {
	i := sort.Search(len(tiers), func(i int) bool {
		return tiers[i].Threshold > xp
	})
	if i == 0 {
		return model.Tier{}, false
	}
	return tiers[i-1], true
}

// NextTier returns the tier following current, or current itself when it is the last one.
func NextTier(current model.Tier, tiers []model.Tier) model.Tier {
	for i, t := range tiers {
		if t.ID == current.ID {
			if i+1 < len(tiers) {
				return tiers[i+1]
			}
			return current
		}
	}
	return current
}

// ValidateTiers checks that levels are unique and thresholds never decrease as the level rises.
func ValidateTiers(tiers []model.Tier) error {
	byLevel := make([]model.Tier, len(tiers))
	copy(byLevel, tiers)
	sort.SliceStable(byLevel, func(i, j int) bool {
		return byLevel[i].Level < byLevel[j].Level
	})
	for i := 1; i < len(byLevel); i++ {
		prev, cur := byLevel[i-1], byLevel[i]
		if prev.Level == cur.Level {
			return fmt.Errorf("level %d is defined twice", cur.Level)
		}
		if cur.Threshold < prev.Threshold {
			return fmt.Errorf("level %d threshold %d is below level %d threshold %d",
				cur.Level, cur.Threshold, prev.Level, prev.Threshold)
		}
	}
	for _, t := range byLevel {
		if t.Threshold < 0 {
			return fmt.Errorf("level %d has a negative threshold", t.Level)
		}
	}
	return nil
}

func tierID(t model.Tier, ok bool) string {
	if !ok {
		return ""
	}
	return t.ID
}
