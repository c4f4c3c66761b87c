package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"level-bot/api"
	"level-bot/bot"
	"level-bot/config"
	"level-bot/handlers"
	leveling_db "level-bot/utils/database/leveling"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := leveling_db.Init(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	b, err := bot.New(cfg, db)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	if cfg.HTTPAddr != "" {
		e := api.NewServer(api.NewHandler(b.Store, b.Tiers, db))
		go func() {
			log.Printf("[API] Listening on %s", cfg.HTTPAddr)
			if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[API] Server stopped: %v", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.Shutdown(ctx); err != nil {
				log.Printf("[API] Shutdown error: %v", err)
			}
		}()
	}

	b.Run()

	defer b.Close()
}
