package model

import (
	"database/sql"
	"strconv"
)

// Participant is a member's leveling record within one guild.
// The table is named 'leveling_participants'.
type Participant struct {
	GuildID   string         `db:"guild_id" json:"guild_id"`
	UserID    string         `db:"user_id" json:"user_id"`
	XP        int64          `db:"xp" json:"xp"`
	TierID    sql.NullString `db:"tier_id" json:"-"`
	UpdatedAt int64          `db:"updated_at" json:"updated_at"`
}

// CurrentTierID returns the stored tier reference, or "" when none is stored.
func (p Participant) CurrentTierID() string {
	if !p.TierID.Valid {
		return ""
	}
	return p.TierID.String
}

// Tier is one level of a guild's tier table.
// RoleID is the reward role granted while the member sits in this tier; it may be empty.
type Tier struct {
	ID        string `db:"tier_id" json:"id"`
	GuildID   string `db:"guild_id" json:"guild_id"`
	Level     int    `db:"level" json:"level"`
	Threshold int64  `db:"threshold" json:"threshold"`
	RoleID    string `db:"role_id" json:"role_id,omitempty"`
	Name      string `db:"name" json:"name,omitempty"`
}

// DisplayName returns the tier name, falling back to "Level N".
func (t Tier) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return "Level " + strconv.Itoa(t.Level)
}

// Multiplier is a named XP factor configured for a guild.
type Multiplier struct {
	ID      string  `db:"multiplier_id" json:"id"`
	GuildID string  `db:"guild_id" json:"guild_id"`
	Name    string  `db:"name" json:"name"`
	Factor  float64 `db:"factor" json:"factor"`
}
