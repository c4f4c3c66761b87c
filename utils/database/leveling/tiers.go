package leveling

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"level-bot/model"
)

// ListTiers returns the guild's tiers in threshold order.
func (s *Store) ListTiers(ctx context.Context, guildID string) ([]model.Tier, error) {
	var tiers []model.Tier
	query := s.db.Rebind(`SELECT tier_id, guild_id, level, threshold, role_id, name FROM leveling_tiers
		WHERE guild_id = ?
		ORDER BY threshold ASC, level ASC, tier_id ASC`)
	if err := s.db.SelectContext(ctx, &tiers, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to list tiers for guild %s: %w", guildID, err)
	}
	return tiers, nil
}

// GetTierByLevel looks up a tier by its level number.
func (s *Store) GetTierByLevel(ctx context.Context, guildID string, level int) (*model.Tier, error) {
	var tier model.Tier
	query := s.db.Rebind(`SELECT tier_id, guild_id, level, threshold, role_id, name FROM leveling_tiers
		WHERE guild_id = ? AND level = ?`)
	if err := s.db.GetContext(ctx, &tier, query, guildID, level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get tier %d for guild %s: %w", level, guildID, err)
	}
	return &tier, nil
}

// CreateTier inserts a tier and assigns it a fresh ID.
func (s *Store) CreateTier(ctx context.Context, tier *model.Tier) error {
	tier.ID = uuid.NewString()
	query := `INSERT INTO leveling_tiers (tier_id, guild_id, level, threshold, role_id, name)
		VALUES (:tier_id, :guild_id, :level, :threshold, :role_id, :name)`
	if _, err := s.db.NamedExecContext(ctx, query, tier); err != nil {
		return fmt.Errorf("failed to create tier: %w", err)
	}
	return nil
}

// UpdateTier overwrites threshold, role and name of an existing tier.
func (s *Store) UpdateTier(ctx context.Context, tier model.Tier) error {
	query := s.db.Rebind(`UPDATE leveling_tiers SET level = ?, threshold = ?, role_id = ?, name = ?
		WHERE guild_id = ? AND tier_id = ?`)
	if err := s.execOne(ctx, query, ErrTierNotFound, tier.Level, tier.Threshold, tier.RoleID, tier.Name, tier.GuildID, tier.ID); err != nil {
		if errors.Is(err, ErrTierNotFound) {
			return err
		}
		return fmt.Errorf("failed to update tier %s: %w", tier.ID, err)
	}
	return nil
}

// DeleteTier removes a tier. Participants still pointing at it are repaired on their next award.
func (s *Store) DeleteTier(ctx context.Context, guildID, tierID string) error {
	query := s.db.Rebind(`DELETE FROM leveling_tiers WHERE guild_id = ? AND tier_id = ?`)
	if err := s.execOne(ctx, query, ErrTierNotFound, guildID, tierID); err != nil {
		if errors.Is(err, ErrTierNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete tier %s: %w", tierID, err)
	}
	return nil
}

// CountTiers returns the number of tiers across every guild.
func (s *Store) CountTiers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM leveling_tiers`); err != nil {
		return 0, fmt.Errorf("failed to count tiers: %w", err)
	}
	return count, nil
}
