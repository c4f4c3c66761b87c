package leveling

import "level-bot/model"

// AwardRange bounds a single award, both ends inclusive.
type AwardRange struct {
	Min int64
	Max int64
}

// RangeFor reads the award range out of guild settings.
func RangeFor(settings model.LevelingSettings) AwardRange {
	return AwardRange{Min: settings.MinAward, Max: settings.MaxAward}
}

// AwardAmount maps a uniform sample u in [0,1) onto the range after squaring it,
// so most awards land near Min and only a few reach Max.
//
// TODO: apply multipliers once it is settled whether they scale the base
// additively or multiplicatively and whether several of them stack.
func AwardAmount(u float64, r AwardRange, multipliers []model.Multiplier) int64 {
	if r.Max < r.Min {
		r.Max = r.Min
	}
	if u < 0 {
		u = 0
	}
	if u >= 1 {
		return r.Max
	}
	span := r.Max - r.Min + 1
	amount := r.Min + int64(u*u*float64(span))
	if amount > r.Max {
		amount = r.Max
	}
	return amount
}
