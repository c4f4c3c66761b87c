package levels

import (
	"context"
	"errors"
	"fmt"

	"level-bot/leveling"
	"level-bot/model"
	leveling_db "level-bot/utils/database/leveling"
)

// TierStore is the tier admin side of the leveling store.
type TierStore interface {
	ListTiers(ctx context.Context, guildID string) ([]model.Tier, error)
	GetTierByLevel(ctx context.Context, guildID string, level int) (*model.Tier, error)
	CreateTier(ctx context.Context, tier *model.Tier) error
	UpdateTier(ctx context.Context, tier model.Tier) error
	DeleteTier(ctx context.Context, guildID, tierID string) error
}

// Invalidator drops a guild's cached tier table.
type Invalidator interface {
	Invalidate(guildID string)
}

// TierChange lists the fields tier-edit may overwrite; nil leaves a field alone.
type TierChange struct {
	Threshold *int64
	RoleID    *string
	Name      *string
}

var ErrInvalidTier = errors.New("invalid tier table")

// TierAdmin validates and applies tier table edits, keeping the cache honest.
type TierAdmin struct {
	store TierStore
	cache Invalidator
}

func NewTierAdmin(store TierStore, cache Invalidator) *TierAdmin {
	return &TierAdmin{store: store, cache: cache}
}

func (a *TierAdmin) Add(ctx context.Context, tier model.Tier) (*model.Tier, error) {
	existing, err := a.store.ListTiers(ctx, tier.GuildID)
	if err != nil {
		return nil, err
	}
	if err := leveling.ValidateTiers(append(existing, tier)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTier, err)
	}
	if err := a.store.CreateTier(ctx, &tier); err != nil {
		return nil, err
	}
	a.cache.Invalidate(tier.GuildID)
	return &tier, nil
}

func (a *TierAdmin) Edit(ctx context.Context, guildID string, level int, change TierChange) (*model.Tier, error) {
	existing, err := a.store.ListTiers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for n, t := range existing {
		if t.Level == level {
			idx = n
			break
		}
	}
	if idx < 0 {
		return nil, leveling_db.ErrTierNotFound
	}

	updated := existing[idx]
	if change.Threshold != nil {
		updated.Threshold = *change.Threshold
	}
	if change.RoleID != nil {
		updated.RoleID = *change.RoleID
	}
	if change.Name != nil {
		updated.Name = *change.Name
	}

	candidate := append([]model.Tier(nil), existing...)
	candidate[idx] = updated
	if err := leveling.ValidateTiers(candidate); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTier, err)
	}
	if err := a.store.UpdateTier(ctx, updated); err != nil {
		return nil, err
	}
	a.cache.Invalidate(guildID)
	return &updated, nil
}

func (a *TierAdmin) Remove(ctx context.Context, guildID string, level int) (*model.Tier, error) {
	tier, err := a.store.GetTierByLevel(ctx, guildID, level)
	if err != nil {
		return nil, err
	}
	if err := a.store.DeleteTier(ctx, guildID, tier.ID); err != nil {
		return nil, err
	}
	a.cache.Invalidate(guildID)
	return tier, nil
}

func (a *TierAdmin) List(ctx context.Context, guildID string) ([]model.Tier, error) {
	tiers, err := a.store.ListTiers(ctx, guildID)
	if err != nil {
		return nil, err
	}
	leveling.SortTiers(tiers)
	return tiers, nil
}
