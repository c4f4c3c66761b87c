package leveling

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"level-bot/model"
)

// ListMultipliers returns the named XP factors configured for a guild.
func (s *Store) ListMultipliers(ctx context.Context, guildID string) ([]model.Multiplier, error) {
	var multipliers []model.Multiplier
	query := s.db.Rebind(`SELECT multiplier_id, guild_id, name, factor FROM leveling_multipliers
		WHERE guild_id = ? ORDER BY name ASC`)
	if err := s.db.SelectContext(ctx, &multipliers, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to list multipliers for guild %s: %w", guildID, err)
	}
	return multipliers, nil
}

// AllMultipliers returns every configured multiplier grouped by guild.
func (s *Store) AllMultipliers(ctx context.Context) (map[string][]model.Multiplier, error) {
	var multipliers []model.Multiplier
	query := `SELECT multiplier_id, guild_id, name, factor FROM leveling_multipliers ORDER BY guild_id, name`
	if err := s.db.SelectContext(ctx, &multipliers, query); err != nil {
		return nil, fmt.Errorf("failed to load multipliers: %w", err)
	}
	byGuild := make(map[string][]model.Multiplier)
	for _, m := range multipliers {
		byGuild[m.GuildID] = append(byGuild[m.GuildID], m)
	}
	return byGuild, nil
}

// UpsertMultiplier sets the factor of a named multiplier, creating it if needed.
func (s *Store) UpsertMultiplier(ctx context.Context, guildID, name string, factor float64) (*model.Multiplier, error) {
	m := model.Multiplier{ID: uuid.NewString(), GuildID: guildID, Name: name, Factor: factor}
	query := `INSERT INTO leveling_multipliers (multiplier_id, guild_id, name, factor)
		VALUES (:multiplier_id, :guild_id, :name, :factor)
		ON CONFLICT (guild_id, name) DO UPDATE SET factor = excluded.factor`
	if _, err := s.db.NamedExecContext(ctx, query, m); err != nil {
		return nil, fmt.Errorf("failed to save multiplier %s: %w", name, err)
	}

	var saved model.Multiplier
	get := s.db.Rebind(`SELECT multiplier_id, guild_id, name, factor FROM leveling_multipliers WHERE guild_id = ? AND name = ?`)
	if err := s.db.GetContext(ctx, &saved, get, guildID, name); err != nil {
		return nil, fmt.Errorf("failed to reload multiplier %s: %w", name, err)
	}
	return &saved, nil
}

// DeleteMultiplier removes a named multiplier.
func (s *Store) DeleteMultiplier(ctx context.Context, guildID, name string) error {
	query := s.db.Rebind(`DELETE FROM leveling_multipliers WHERE guild_id = ? AND name = ?`)
	if err := s.execOne(ctx, query, ErrMultiplierNotFound, guildID, name); err != nil {
		if err == ErrMultiplierNotFound {
			return err
		}
		return fmt.Errorf("failed to delete multiplier %s: %w", name, err)
	}
	return nil
}
