package commands

import (
	"level-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns every application command the bot registers.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.Rank,
		defs.Leaderboard,
		defs.Level,
		defs.LevelAdmin,
		defs.SystemInfo,
		defs.Reload,
	}
}
