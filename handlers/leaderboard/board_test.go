package leaderboard

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"level-bot/leveling"
	"level-bot/model"
	"level-bot/utils"
	leveling_db "level-bot/utils/database/leveling"
)

func seededStore(t *testing.T, members int) *leveling_db.Store {
	t.Helper()
	db, err := leveling_db.Init("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := leveling_db.NewStore(db)

	ctx := context.Background()
	for _, tier := range []*model.Tier{
		{GuildID: "g1", Level: 0, Threshold: 0},
		{GuildID: "g1", Level: 1, Threshold: 500, Name: "Regular"},
	} {
		require.NoError(t, store.CreateTier(ctx, tier))
	}
	for n := 0; n < members; n++ {
		require.NoError(t, store.Commit(ctx, "g1", fmt.Sprintf("u%02d", n), int64(n*60), ""))
	}
	return store
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 1, TotalPages(0))
	require.Equal(t, 1, TotalPages(10))
	require.Equal(t, 2, TotalPages(11))
	require.Equal(t, 3, TotalPages(25))
}

func TestLoadPage(t *testing.T) {
	store := seededStore(t, 12)
	tiers := leveling.NewTierCache(store, time.Minute)
	ctx := context.Background()

	p, err := LoadPage(ctx, store, tiers, "g1", 1)
	require.NoError(t, err)
	require.Equal(t, 2, p.TotalPages)
	require.Equal(t, 12, p.Total)
	require.Len(t, p.Entries, PageSize)
	require.Equal(t, "u11", p.Entries[0].Participant.UserID)
	require.Equal(t, "Regular", p.Entries[0].Tier.DisplayName())
	require.Equal(t, 1, p.Entries[0].Position)

	p, err = LoadPage(ctx, store, tiers, "g1", 9)
	require.NoError(t, err)
	require.Equal(t, 2, p.Number)
	require.Len(t, p.Entries, 2)
	require.Equal(t, 11, p.Entries[0].Position)
	require.Equal(t, "Level 0", p.Entries[1].Tier.DisplayName())
}

func TestLoadPage_EmptyGuild(t *testing.T) {
	store := seededStore(t, 0)
	p, err := LoadPage(context.Background(), store, leveling.NewTierCache(store, time.Minute), "nobody", 0)
	require.NoError(t, err)
	require.Equal(t, 1, p.Number)
	require.Empty(t, p.Entries)

	embed := BuildEmbed(p, 0x123456, time.Unix(0, 0))
	require.Contains(t, embed.Description, "还没有人")
	require.Equal(t, 0x123456, embed.Color)
}

func TestBuildEmbed(t *testing.T) {
	p := &Page{Number: 1, TotalPages: 1, Total: 4, Entries: []Entry{
		{Position: 1, Participant: model.Participant{UserID: "a", XP: 900}, Tier: model.Tier{Level: 1}, HasTier: true},
		{Position: 4, Participant: model.Participant{UserID: "d", XP: 3}},
	}}
	embed := BuildEmbed(p, 1, time.Now())
	require.Contains(t, embed.Description, "🥇 <@a> · Level 1 · 900 XP")
	require.Contains(t, embed.Description, "**#4** <@d> · - · 3 XP")
	require.Contains(t, embed.Footer.Text, "1/1")
}

func TestParsePageButton(t *testing.T) {
	page, ok := ParsePageButton("lvl_lb:3")
	require.True(t, ok)
	require.Equal(t, 3, page)

	_, ok = ParsePageButton("lvl_lb:0")
	require.False(t, ok)
	_, ok = ParsePageButton("other:2")
	require.False(t, ok)
	_, ok = ParsePageButton("lvl_lb:x")
	require.False(t, ok)
}

func TestLeaderboardStateRoundTrip(t *testing.T) {
	old := utils.LeaderboardStateFile
	utils.LeaderboardStateFile = filepath.Join(t.TempDir(), "state", "leaderboard.json")
	t.Cleanup(func() { utils.LeaderboardStateFile = old })

	states, err := utils.LoadLeaderboardState()
	require.NoError(t, err)
	require.Empty(t, states)

	states["g1"] = model.LeaderboardState{GuildID: "g1", ChannelID: "c1", MessageID: "m1"}
	require.NoError(t, utils.SaveLeaderboardState(states))

	loaded, err := utils.LoadLeaderboardState()
	require.NoError(t, err)
	require.Equal(t, "m1", loaded["g1"].MessageID)
}
