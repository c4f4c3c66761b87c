package levels

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"level-bot/leveling"
	"level-bot/model"
	"level-bot/notify"
)

// RankCard is everything shown by /rank.
type RankCard struct {
	User     *discordgo.User
	Standing leveling.Standing
	Rank     int
	Total    int
	Color    int
}

func BuildRankEmbed(card RankCard) *discordgo.MessageEmbed {
	st := card.Standing
	level := "未达到任何等级"
	if st.HasTier {
		level = st.Tier.DisplayName()
	}

	rank := "未上榜"
	if card.Rank > 0 {
		rank = fmt.Sprintf("#%d / %d", card.Rank, card.Total)
	}

	embed := &discordgo.MessageEmbed{
		Title: "📈 " + card.User.Username,
		Color: card.Color,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: card.User.AvatarURL("128"),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "等级", Value: level, Inline: true},
			{Name: "经验", Value: fmt.Sprintf("%d XP", st.XP), Inline: true},
			{Name: "排名", Value: rank, Inline: true},
		},
	}

	switch {
	case st.Next.ID == "":
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "本服务器尚未配置等级"}
	case st.HasTier && st.Next.ID == st.Tier.ID:
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "已达到最高等级"}
	default:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "距离 " + st.Next.DisplayName(),
			Value: fmt.Sprintf("%s %d%%\n还需 %d XP",
				notify.ProgressBar(st.Progress.Percent, 12), st.Progress.Percent, st.Progress.Remaining),
		})
	}
	return embed
}

func FormatTierList(tiers []model.Tier) string {
	if len(tiers) == 0 {
		return "本服务器尚未配置等级"
	}
	var sb strings.Builder
	for _, t := range tiers {
		role := "无"
		if t.RoleID != "" {
			role = "<@&" + t.RoleID + ">"
		}
		fmt.Fprintf(&sb, "**%s** (Lv.%d) · %d XP · %s\n", t.DisplayName(), t.Level, t.Threshold, role)
	}
	return sb.String()
}

func FormatMultiplierList(multipliers []model.Multiplier) string {
	if len(multipliers) == 0 {
		return "本服务器尚未配置倍率"
	}
	var sb strings.Builder
	for _, m := range multipliers {
		fmt.Fprintf(&sb, "**%s** × %.2f\n", m.Name, m.Factor)
	}
	sb.WriteString("\n倍率目前仅作记录，不影响经验发放")
	return sb.String()
}

func FormatSyncResult(res leveling.AwardResult) string {
	if res.Skipped == leveling.SkipNoTiers {
		return "本服务器尚未配置等级"
	}
	level := "未达到任何等级"
	if res.HasTier {
		level = res.Tier.DisplayName()
	}
	if res.Outcome == leveling.OutcomeNoOp && len(res.RolesAdded) == 0 && len(res.RolesRemoved) == 0 {
		return fmt.Sprintf("✅ 你的等级与身份组已是最新（%s，%d XP）", level, res.XP)
	}
	return fmt.Sprintf("✅ 已同步：%s，%d XP。新增身份组 %d 个，移除 %d 个",
		level, res.XP, len(res.RolesAdded), len(res.RolesRemoved))
}
