package main

import (
	"context"
	"fmt"
	"os"

	"github.com/0levin/shawerma-bot/bot"
	"github.com/0levin/shawerma-bot/config"
	"github.com/0levin/shawerma-bot/db"
	"github.com/0levin/shawerma-bot/logx"
	"github.com/0levin/shawerma-bot/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set")
		os.Exit(1)
	}

	logger := logx.Init(cfg.Log.File, cfg.Log.Debug)

	menu := services.LoadCatalog(cfg.Storage.MenuFile, logger)
	sessions := services.NewSessionStore()

	var orders services.OrderStore
	switch cfg.Storage.Backend {
	case "postgres":
		pool, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			fmt.Fprintln(os.Stderr, "db:", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := services.NewPGStore(pool, logger)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, "db schema:", err)
			os.Exit(1)
		}
		orders = pg
	default:
		orders = services.NewFileStore(cfg.Storage.OrdersFile, logger)
	}

	controller := bot.NewController(menu, sessions, orders, nil, logger)
	b, err := bot.New(cfg, controller, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}

	fmt.Println("Bot started.")
	b.Start()
}
