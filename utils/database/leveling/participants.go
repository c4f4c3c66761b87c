package leveling

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"level-bot/model"
)

func unixNow() int64 {
	return time.Now().Unix()
}

func nullableTier(tierID string) sql.NullString {
	return sql.NullString{String: tierID, Valid: tierID != ""}
}

// Read returns the participant row, creating a zero-XP row pointing at defaultTierID when absent.
func (s *Store) Read(ctx context.Context, guildID, userID, defaultTierID string) (*model.Participant, error) {
	insert := s.db.Rebind(`INSERT INTO leveling_participants (guild_id, user_id, xp, tier_id, updated_at)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT (guild_id, user_id) DO NOTHING`)
	if _, err := s.db.ExecContext(ctx, insert, guildID, userID, nullableTier(defaultTierID), s.now()); err != nil {
		return nil, fmt.Errorf("failed to ensure participant %s in guild %s: %w", userID, guildID, err)
	}
	return s.GetParticipant(ctx, guildID, userID)
}

// GetParticipant reads a participant without creating it.
func (s *Store) GetParticipant(ctx context.Context, guildID, userID string) (*model.Participant, error) {
	var p model.Participant
	query := s.db.Rebind(`SELECT guild_id, user_id, xp, tier_id, updated_at FROM leveling_participants
		WHERE guild_id = ? AND user_id = ?`)
	if err := s.db.GetContext(ctx, &p, query, guildID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant %s in guild %s: %w", userID, guildID, err)
	}
	return &p, nil
}

// ApplyAward adds delta to the participant's XP and returns the new total.
func (s *Store) ApplyAward(ctx context.Context, guildID, userID string, delta int64) (int64, error) {
	var xp int64
	query := s.db.Rebind(`UPDATE leveling_participants SET xp = xp + ?, updated_at = ?
		WHERE guild_id = ? AND user_id = ? RETURNING xp`)
	if err := s.db.GetContext(ctx, &xp, query, delta, s.now(), guildID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrParticipantNotFound
		}
		return 0, fmt.Errorf("failed to apply award to %s in guild %s: %w", userID, guildID, err)
	}
	return xp, nil
}

// SetTier updates only the stored tier reference.
func (s *Store) SetTier(ctx context.Context, guildID, userID, tierID string) error {
	query := s.db.Rebind(`UPDATE leveling_participants SET tier_id = ?, updated_at = ?
		WHERE guild_id = ? AND user_id = ?`)
	return s.execOne(ctx, query, ErrParticipantNotFound, nullableTier(tierID), s.now(), guildID, userID)
}

// Commit writes XP and tier reference together, creating the row if needed.
func (s *Store) Commit(ctx context.Context, guildID, userID string, xp int64, tierID string) error {
	query := s.db.Rebind(`INSERT INTO leveling_participants (guild_id, user_id, xp, tier_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET xp = excluded.xp, tier_id = excluded.tier_id, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, guildID, userID, xp, nullableTier(tierID), s.now()); err != nil {
		return fmt.Errorf("failed to commit participant %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// ListParticipants returns a page of the guild leaderboard, highest XP first.
func (s *Store) ListParticipants(ctx context.Context, guildID string, limit, offset int) ([]model.Participant, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	var participants []model.Participant
	query := s.db.Rebind(`SELECT guild_id, user_id, xp, tier_id, updated_at FROM leveling_participants
		WHERE guild_id = ?
		ORDER BY xp DESC, user_id ASC
		LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &participants, query, guildID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list participants for guild %s: %w", guildID, err)
	}
	return participants, nil
}

// CountParticipants returns how many members of the guild have a record.
func (s *Store) CountParticipants(ctx context.Context, guildID string) (int, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM leveling_participants WHERE guild_id = ?`)
	if err := s.db.GetContext(ctx, &count, query, guildID); err != nil {
		return 0, fmt.Errorf("failed to count participants for guild %s: %w", guildID, err)
	}
	return count, nil
}

// CountAllParticipants returns the number of records across every guild.
func (s *Store) CountAllParticipants(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM leveling_participants`); err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// Rank returns the participant's 1-based position in the leaderboard order.
func (s *Store) Rank(ctx context.Context, guildID, userID string) (int, error) {
	p, err := s.GetParticipant(ctx, guildID, userID)
	if err != nil {
		return 0, err
	}
	var ahead int
	query := s.db.Rebind(`SELECT COUNT(*) FROM leveling_participants
		WHERE guild_id = ? AND (xp > ? OR (xp = ? AND user_id < ?))`)
	if err := s.db.GetContext(ctx, &ahead, query, guildID, p.XP, p.XP, userID); err != nil {
		return 0, fmt.Errorf("failed to rank participant %s in guild %s: %w", userID, guildID, err)
	}
	return ahead + 1, nil
}

func (s *Store) execOne(ctx context.Context, query string, notFound error, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
