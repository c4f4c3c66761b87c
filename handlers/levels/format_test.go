package levels

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"level-bot/leveling"
	"level-bot/model"
)

func scenarioTiers() []model.Tier {
	return []model.Tier{
		{ID: "t0", Level: 0, Threshold: 0, RoleID: "r0"},
		{ID: "t1", Level: 1, Threshold: 500, RoleID: "r1"},
		{ID: "t5", Level: 5, Threshold: 1724, RoleID: "r5"},
	}
}

func TestBuildRankEmbed(t *testing.T) {
	user := &discordgo.User{ID: "u1", Username: "alice"}

	embed := BuildRankEmbed(RankCard{User: user, Standing: leveling.Describe(510, scenarioTiers()), Rank: 2, Total: 9})
	require.Equal(t, "Level 1", embed.Fields[0].Value)
	require.Equal(t, "510 XP", embed.Fields[1].Value)
	require.Equal(t, "#2 / 9", embed.Fields[2].Value)
	require.Len(t, embed.Fields, 4)
	require.Contains(t, embed.Fields[3].Name, "Level 5")
	require.Contains(t, embed.Fields[3].Value, "1%")
	require.Contains(t, embed.Fields[3].Value, "1214")

	embed = BuildRankEmbed(RankCard{User: user, Standing: leveling.Describe(5000, scenarioTiers())})
	require.Equal(t, "未上榜", embed.Fields[2].Value)
	require.Equal(t, "已达到最高等级", embed.Footer.Text)

	embed = BuildRankEmbed(RankCard{User: user, Standing: leveling.Describe(42, nil)})
	require.Equal(t, "本服务器尚未配置等级", embed.Footer.Text)
}

func TestFormatSyncResult(t *testing.T) {
	require.Equal(t, "本服务器尚未配置等级", FormatSyncResult(leveling.AwardResult{Skipped: leveling.SkipNoTiers}))

	same := FormatSyncResult(leveling.AwardResult{Outcome: leveling.OutcomeNoOp, HasTier: true, Tier: model.Tier{Level: 1}, XP: 600})
	require.Contains(t, same, "已是最新")

	synced := FormatSyncResult(leveling.AwardResult{
		Outcome: leveling.OutcomeSilentSync, HasTier: true, Tier: model.Tier{Level: 1}, XP: 600,
		RolesAdded: []string{"r1"}, RolesRemoved: []string{"r0"},
	})
	require.Contains(t, synced, "新增身份组 1 个")
	require.Contains(t, synced, "移除 1 个")
}

func TestFormatLists(t *testing.T) {
	require.Equal(t, "本服务器尚未配置等级", FormatTierList(nil))
	list := FormatTierList(scenarioTiers())
	require.Contains(t, list, "<@&r5>")
	require.Contains(t, list, "1724 XP")

	require.Equal(t, "本服务器尚未配置倍率", FormatMultiplierList(nil))
	require.Contains(t, FormatMultiplierList([]model.Multiplier{{Name: "weekend", Factor: 1.5}}), "weekend** × 1.50")
}

func TestOptionMap_TierChange(t *testing.T) {
	opts := toOptionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "level", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(1)},
		{Name: "threshold", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(450)},
		{Name: "role", Type: discordgo.ApplicationCommandOptionRole, Value: "r1"},
	})
	change := opts.tierChange()
	require.Equal(t, int64(450), *change.Threshold)
	require.Equal(t, "r1", *change.RoleID)
	require.Nil(t, change.Name)

	cleared := toOptionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "role", Type: discordgo.ApplicationCommandOptionRole, Value: "r1"},
		{Name: "clear-role", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
	}).tierChange()
	require.Equal(t, "", *cleared.RoleID)
}

func TestSubcommand(t *testing.T) {
	name, opts := subcommand(discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{{
			Name: "reset-user",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "u7"},
			},
		}},
	})
	require.Equal(t, "reset-user", name)
	user, ok := opts.userOpt("user")
	require.True(t, ok)
	require.Equal(t, "u7", user.ID)

	name, _ = subcommand(discordgo.ApplicationCommandInteractionData{})
	require.Equal(t, "", name)
}

func TestIsLevelAdmin(t *testing.T) {
	cfg := &model.Config{
		DeveloperUserIDs: []string{"dev"},
		ServerConfigs: map[string]model.ServerConfig{
			"g1": {AdminRoleIDs: []string{"admins"}},
		},
	}
	interaction := func(guildID, userID string, roles []string, perms int64) *discordgo.InteractionCreate {
		return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			GuildID: guildID,
			Member:  &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: roles, Permissions: perms},
		}}
	}

	require.True(t, IsLevelAdmin(cfg, interaction("g1", "u1", []string{"admins"}, 0)))
	require.True(t, IsLevelAdmin(cfg, interaction("g2", "dev", nil, 0)))
	require.True(t, IsLevelAdmin(cfg, interaction("g2", "u1", nil, discordgo.PermissionManageServer)))
	require.False(t, IsLevelAdmin(cfg, interaction("g1", "u1", []string{"members"}, 0)))
	require.False(t, IsLevelAdmin(cfg, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{GuildID: "g1"}}))
}
