package levels

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"level-bot/bot"
	"level-bot/handlers/leaderboard"
	"level-bot/utils"
)

// HandleLevel dispatches /level subcommands.
func HandleLevel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if i.Member == nil {
		utils.SendErrorResponse(s, i, "请在服务器内使用此命令")
		return
	}
	name, _ := subcommand(i.ApplicationCommandData())
	switch name {
	case "sync":
		handleSync(s, i, b)
	case "board":
		if !IsLevelAdmin(b.GetConfig(), i) {
			utils.SendErrorResponse(s, i, "您没有权限使用此命令")
			return
		}
		leaderboard.HandleBoardInteraction(s, i, b)
	default:
		utils.SendErrorResponse(s, i, "未知的子命令")
	}
}

func handleSync(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.GetConfig().AwardTimeout)
		defer cancel()

		res, err := b.Engine.Resync(ctx, i.GuildID, i.Member.User.ID)
		if err != nil {
			log.Printf("[Leveling] Resync failed for user %s in guild %s: %v", i.Member.User.ID, i.GuildID, err)
			utils.SendFollowUpError(s, i.Interaction, "同步失败，请稍后再试")
			return
		}
		utils.SendFollowUp(s, i.Interaction, FormatSyncResult(res))
	}()
}
