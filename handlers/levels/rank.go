package levels

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"level-bot/bot"
	"level-bot/leveling"
	"level-bot/utils"
	leveling_db "level-bot/utils/database/leveling"
)

func HandleRank(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if i.Member == nil {
		utils.SendErrorResponse(s, i, "请在服务器内使用此命令")
		return
	}
	target := i.Member.User
	data := i.ApplicationCommandData()
	if u, ok := toOptionMap(data.Options).userOpt("user"); ok {
		target = u
		if data.Resolved != nil {
			if resolved, ok := data.Resolved.Users[u.ID]; ok {
				target = resolved
			}
		}
	}
	if target.Bot {
		utils.SendErrorResponse(s, i, "机器人没有等级")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tiers, err := b.Tiers.Tiers(ctx, i.GuildID)
	if err != nil {
		log.Printf("[Rank] Failed to load tiers for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "读取等级配置时出错")
		return
	}

	var xp int64
	var rank, total int
	p, err := b.Store.GetParticipant(ctx, i.GuildID, target.ID)
	switch {
	case errors.Is(err, leveling_db.ErrParticipantNotFound):
	case err != nil:
		log.Printf("[Rank] Failed to read user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "读取经验时出错")
		return
	default:
		xp = p.XP
		if rank, err = b.Store.Rank(ctx, i.GuildID, target.ID); err != nil {
			log.Printf("[Rank] Failed to rank user %s: %v", target.ID, err)
		}
		if total, err = b.Store.CountParticipants(ctx, i.GuildID); err != nil {
			log.Printf("[Rank] Failed to count participants in guild %s: %v", i.GuildID, err)
		}
	}

	settings := b.GetConfig().LevelingSettings(i.GuildID)
	embed := BuildRankEmbed(RankCard{
		User:     target,
		Standing: leveling.Describe(xp, tiers),
		Rank:     rank,
		Total:    total,
		Color:    utils.ParseHexColor(settings.EmbedColor, utils.DefaultEmbedColor),
	})
	utils.SendEmbedResponse(s, i, embed)
}
