package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"

	"level-bot/commands"
	"level-bot/config"
	"level-bot/leveling"
	"level-bot/model"
	"level-bot/notify"
	"level-bot/utils"
	leveling_db "level-bot/utils/database/leveling"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	configMu           sync.Mutex   // serialises read-modify-write of config
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	ComponentHandlers  map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	DB                 *sqlx.DB
	Store              *leveling_db.Store
	Tiers              *leveling.TierCache
	Gate               leveling.CooldownGate
	Engine             *leveling.Engine
	scheduler          *Scheduler
	closeGate          func() error
	done               chan struct{}
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetStore() *leveling_db.Store {
	return b.Store
}

func (b *Bot) GetTiers() *leveling.TierCache {
	return b.Tiers
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	gate, closeGate, err := NewCooldownGate(cfg.Cooldown)
	if err != nil {
		return nil, err
	}

	store := leveling_db.NewStore(db)
	b := &Bot{
		Session:   dg,
		DB:        db,
		Store:     store,
		Tiers:     leveling.NewTierCache(store, cfg.TierCacheTTL),
		Gate:      gate,
		closeGate: closeGate,
		done:      make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	multipliers, err := store.AllMultipliers(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Multipliers = multipliers
	b.config.Store(cfg)

	b.Engine = leveling.NewEngine(leveling.Options{
		Store:       store,
		Tiers:       b.Tiers,
		Gate:        gate,
		Roles:       utils.NewDiscordRoles(dg),
		Notifier:    notify.NewDispatcher(dg),
		Settings:    func(guildID string) model.LevelingSettings { return b.GetConfig().LevelingSettings(guildID) },
		Timeout:     cfg.AwardTimeout,
		ReportError: b.reportError,
	})
	return b, nil
}

func (b *Bot) reportError(operation, detail string) {
	go func() {
		if err := utils.LogWarn(b.Session, b.GetConfig().LogChannelID, "Leveling", operation, detail); err != nil {
			log.Printf("Failed to send log: %v", err)
		}
	}()
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done)

	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.closeGate != nil {
		if err := b.closeGate(); err != nil {
			log.Printf("Error closing cooldown backend: %v", err)
		}
	}
	b.Session.Close()
	if err := b.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// RefreshCommands overwrites the bot's global application commands.
func (b *Bot) RefreshCommands() {
	cmds := commands.GenerateCommands()
	log.Printf("Registering %d commands...", len(cmds))
	registeredCmds, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", cmds)
	if err != nil {
		log.Printf("cannot update commands: %v", err)
		return
	}
	b.RegisteredCommands = registeredCmds
}

// UnregisterCommands removes guild-scoped commands left behind by earlier deployments.
func (b *Bot) UnregisterCommands(guildID string) {
	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, guildID, nil); err != nil {
		log.Printf("cannot unregister commands for guild '%s': %v", guildID, err)
	}
}

// SetServerConfigs swaps in new per-guild settings and keeps everything else.
func (b *Bot) SetServerConfigs(guilds map[string]model.ServerConfig) {
	b.configMu.Lock()
	defer b.configMu.Unlock()

	next := *b.GetConfig()
	next.ServerConfigs = guilds
	b.config.Store(&next)
}

// ReloadMultipliers re-reads one guild's multipliers from the database.
func (b *Bot) ReloadMultipliers(ctx context.Context, guildID string) error {
	b.configMu.Lock()
	defer b.configMu.Unlock()

	list, err := b.Store.ListMultipliers(ctx, guildID)
	if err != nil {
		return err
	}
	current := b.GetConfig()
	next := *current
	next.Multipliers = make(map[string][]model.Multiplier, len(current.Multipliers)+1)
	for g, m := range current.Multipliers {
		next.Multipliers[g] = m
	}
	next.Multipliers[guildID] = list
	b.config.Store(&next)
	return nil
}

func (b *Bot) ReloadConfig() error {
	log.Println("Reloading configuration...")
	newCfg, err := config.Load()
	if err != nil {
		log.Printf("Error reloading config: %v", err)
		return err
	}

	b.configMu.Lock()
	defer b.configMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	multipliers, err := b.Store.AllMultipliers(ctx)
	if err != nil {
		log.Printf("Error loading multipliers during reload: %v", err)
		return fmt.Errorf("load multipliers: %w", err)
	}
	newCfg.Multipliers = multipliers

	b.config.Store(newCfg)
	b.Tiers.Flush()
	log.Println("Configuration reloaded successfully.")

	go b.RefreshCommands()
	return nil
}
