package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/manjitt2/Movie-bot/configs"
	"github.com/manjitt2/Movie-bot/configs/loader/dotEnvLoader"
	"github.com/manjitt2/Movie-bot/internal/delivery/command"
	"github.com/manjitt2/Movie-bot/internal/delivery/discord"
	"github.com/manjitt2/Movie-bot/internal/delivery/httpserver"
	"github.com/manjitt2/Movie-bot/internal/delivery/telegram"
	"github.com/manjitt2/Movie-bot/internal/repository/guardedRepo"
	"github.com/manjitt2/Movie-bot/internal/repository/openlibrary"
	"github.com/manjitt2/Movie-bot/internal/repository/tmdb"
	"github.com/manjitt2/Movie-bot/internal/usecase"
	"github.com/manjitt2/Movie-bot/pkg/logger"
	botmetrics "github.com/manjitt2/Movie-bot/pkg/prometheus"
)

const telegramPrefix = "/"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	botmetrics.Init()

	repo := guardedRepo.NewGuardedRepo(tmdb.NewRepo(cfg), openlibrary.NewRepo(cfg), log)
	movies := usecase.NewMovie(repo)
	books := usecase.NewBook(repo)

	g, ctx := errgroup.WithContext(ctx)

	metrics := httpserver.NewServer(cfg.MetricsAddr, prometheus.DefaultGatherer, log)
	g.Go(func() error {
		return metrics.Run(ctx)
	})

	if cfg.DS.Token != "" {
		dispatcher := command.NewDispatcher(cfg.DS.Prefix, movies, books, log)
		bot, err := discord.NewBot(ctx, cfg, dispatcher, log)
		if err != nil {
			log.Error("failed to create Discord bot", "error", err)
			os.Exit(1)
		}
		log.Info("Starting Discord bot", "prefix", cfg.DS.Prefix)
		g.Go(func() error {
			return bot.Run(ctx)
		})
	}

	if cfg.TG.Token != "" {
		dispatcher := command.NewDispatcher(telegramPrefix, movies, books, log)
		bot, err := telegram.NewBot(cfg, dispatcher, log)
		if err != nil {
			log.Error("failed to create Telegram bot", "error", err)
			os.Exit(1)
		}
		log.Info("Starting Telegram bot", "workers", cfg.TG.Workers)
		g.Go(func() error {
			return bot.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("Service stopped")
}
