package leveling

import (
	"math"

	"level-bot/model"
)

// Progress describes how far a member is between their tier and the next one.
type Progress struct {
	Needed    int64 `json:"needed"`
	Into      int64 `json:"into"`
	Remaining int64 `json:"remaining"`
	Percent   int   `json:"percent"`
}

// ComputeProgress measures xp against the span from current to next.
// A zero span (last tier) always reports 100%.
func ComputeProgress(xp int64, current, next model.Tier) Progress {
	p := Progress{
		Needed:    next.Threshold - current.Threshold,
		Into:      xp - current.Threshold,
		Remaining: next.Threshold - xp,
	}
	if p.Needed <= 0 {
		p.Percent = 100
		return p
	}
	pct := math.Round(float64(p.Into) / float64(p.Needed) * 100)
	switch {
	case pct < 0:
		p.Percent = 0
	case pct > 100:
		p.Percent = 100
	default:
		p.Percent = int(pct)
	}
	return p
}

// Standing is a member's resolved position in a tier table.
type Standing struct {
	XP       int64
	Tier     model.Tier
	HasTier  bool
	Next     model.Tier
	Progress Progress
}

// Describe resolves xp against a sorted tier table. Below the first threshold
// the member is measured from zero toward the first tier.
func Describe(xp int64, tiers []model.Tier) Standing {
	st := Standing{XP: xp}
	if len(tiers) == 0 {
		st.Progress = ComputeProgress(xp, model.Tier{}, model.Tier{})
		return st
	}
	st.Tier, st.HasTier = ResolveTier(xp, tiers)
	if st.HasTier {
		st.Next = NextTier(st.Tier, tiers)
		st.Progress = ComputeProgress(xp, st.Tier, st.Next)
		return st
	}
	st.Next = tiers[0]
	st.Progress = ComputeProgress(xp, model.Tier{}, st.Next)
	return st
}
