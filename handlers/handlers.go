package handlers

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"level-bot/bot"
	"level-bot/handlers/admin"
	"level-bot/handlers/leaderboard"
	"level-bot/handlers/levels"
	"level-bot/utils"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	b.ComponentHandlers = componentHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"rank": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			levels.HandleRank(s, i, b)
		},
		"leaderboard": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			leaderboard.HandleLeaderboardCommand(s, i, b)
		},
		"level": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			levels.HandleLevel(s, i, b)
		},
		"level-admin": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			levels.HandleLevelAdmin(s, i, b)
		},
		"system-info": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			SystemInfoHandler(s, i, b)
		},
		"reload": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			admin.HandleReloadConfig(s, i, b.GetConfig().DeveloperUserIDs, b)
		},
	}
}

// componentHandlers are keyed by custom ID prefix.
func componentHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		leaderboard.PageButtonPrefix: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			leaderboard.HandlePageButton(s, i, b)
		},
	}
}

// ShouldAward reports whether a message counts as member activity.
func ShouldAward(m *discordgo.MessageCreate) bool {
	if m.Author == nil || m.Author.Bot || m.Author.System {
		return false
	}
	if m.GuildID == "" || m.WebhookID != "" {
		return false
	}
	return true
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
				h(s, i)
			}
		case discordgo.InteractionMessageComponent:
			customID := i.MessageComponentData().CustomID
			prefix, _, _ := strings.Cut(customID, ":")
			if h, ok := b.ComponentHandlers[prefix]; ok {
				h(s, i)
			}
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if !ShouldAward(m) {
			return
		}
		// The award outlives this event; HandleActivity bounds it with its own timeout.
		go func(guildID, userID, channelID string) {
			if _, err := b.Engine.HandleActivity(guildID, userID, channelID); err != nil {
				log.Printf("[Leveling] Award failed for user %s in guild %s: %v", userID, guildID, err)
				if err := utils.LogError(s, b.GetConfig().LogChannelID, "Leveling", "Award", err.Error()); err != nil {
					log.Printf("Failed to send log: %v", err)
				}
			}
		}(m.GuildID, m.Author.ID, m.ChannelID)
	})
}
