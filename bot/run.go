package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"level-bot/config"
	"level-bot/handlers/leaderboard"
	"level-bot/leveling"
	"level-bot/utils"
)

func (b *Bot) GetRanking() leaderboard.Ranking {
	return b.Store
}

func (b *Bot) GetTierSource() leveling.TierSource {
	return b.Tiers
}

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	if !b.GetConfig().DisableCommandUnregister {
		log.Println("Unregistering guild commands from all guilds...")
		guilds, err := b.Session.UserGuilds(100, "", "", false)
		if err != nil {
			log.Printf("Could not fetch guilds: %v", err)
		} else {
			for _, guild := range guilds {
				b.UnregisterCommands(guild.ID)
			}
		}
	}

	log.Println("Registering commands...")
	b.RefreshCommands()

	if path := b.GetConfig().LevelingConfigPath; path != "" {
		if err := config.WatchLeveling(path, b.SetServerConfigs); err != nil {
			log.Printf("Leveling config watch disabled: %v", err)
		}
	}

	b.scheduler, err = NewScheduler(b, b.Gate)
	if err != nil {
		log.Fatalf("Error creating scheduler: %v", err)
	}
	b.scheduler.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	if err := utils.LogInfo(b.Session, b.GetConfig().LogChannelID, "System", "Startup", "Bot has started successfully."); err != nil {
		log.Printf("Failed to send startup log: %v", err)
	}
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
