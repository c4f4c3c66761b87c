package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"level-bot/leveling"
	"level-bot/model"
)

// PageSize is the number of members shown per leaderboard page.
const PageSize = 10

// Ranking is the read side of the participant store used by leaderboards.
type Ranking interface {
	ListParticipants(ctx context.Context, guildID string, limit, offset int) ([]model.Participant, error)
	CountParticipants(ctx context.Context, guildID string) (int, error)
}

// Page is one rendered slice of the leaderboard.
type Page struct {
	Number     int
	TotalPages int
	Total      int
	Entries    []Entry
}

type Entry struct {
	Position    int
	Participant model.Participant
	Tier        model.Tier
	HasTier     bool
}

// TotalPages returns how many pages total members fill, never less than one.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// LoadPage reads a page of the leaderboard. Pages past the end are clamped to the last one.
func LoadPage(ctx context.Context, ranking Ranking, tiers leveling.TierSource, guildID string, page int) (*Page, error) {
	total, err := ranking.CountParticipants(ctx, guildID)
	if err != nil {
		return nil, err
	}
	totalPages := TotalPages(total)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	participants, err := ranking.ListParticipants(ctx, guildID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	table, err := tiers.Tiers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	p := &Page{Number: page, TotalPages: totalPages, Total: total}
	for idx, participant := range participants {
		tier, ok := leveling.ResolveTier(participant.XP, table)
		p.Entries = append(p.Entries, Entry{
			Position:    (page-1)*PageSize + idx + 1,
			Participant: participant,
			Tier:        tier,
			HasTier:     ok,
		})
	}
	return p, nil
}

func medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("**#%d**", position)
	}
}

// BuildEmbed renders a leaderboard page.
func BuildEmbed(p *Page, color int, now time.Time) *discordgo.MessageEmbed {
	var sb strings.Builder
	if len(p.Entries) == 0 {
		sb.WriteString("还没有人获得经验")
	}
	for _, e := range p.Entries {
		level := "-"
		if e.HasTier {
			level = e.Tier.DisplayName()
		}
		fmt.Fprintf(&sb, "%s <@%s> · %s · %d XP\n", medal(e.Position), e.Participant.UserID, level, e.Participant.XP)
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 经验排行榜",
		Description: sb.String(),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("第 %d/%d 页 · 共 %d 人", p.Number, p.TotalPages, p.Total),
		},
		Timestamp: now.Format(time.RFC3339),
	}
}
