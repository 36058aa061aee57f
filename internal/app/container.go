package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/config"
	"github.com/kapu/combot-go/internal/discord"
	"github.com/kapu/combot-go/internal/ingest"
	"github.com/kapu/combot-go/internal/service/cache"
	"github.com/kapu/combot-go/internal/service/youtube"
	"github.com/kapu/combot-go/internal/store"
)

// Container bundles the assembled services behind the bot.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *store.Store
	Bot    *discord.Bot

	closers []func()
}

// Build assembles the data store, optional cache, playlist provider, and the
// bot. All heavy-weight initialization happens here so the bot constructor
// stays focused on orchestration.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	st := store.New(cfg.Store.FilePath, logger)
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("failed to load combo store: %w", err)
	}
	closers = append(closers, func() {
		if err := st.Cleanup(); err != nil {
			logger.Error("failed to flush store on shutdown", zap.Error(err))
		}
	})

	// Redis only caches playlist fetches; the bot runs fine without it.
	var cacheSvc *cache.Service
	if cfg.RedisEnabled() {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("cache unavailable, continuing without playlist caching", zap.Error(err))
			cacheSvc = nil
		} else {
			closers = append(closers, func() {
				_ = cacheSvc.Close()
			})
		}
	}

	youtubeSvc, err := youtube.NewService(ctx, cfg.YouTube.APIKey, cacheSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	ingester := ingest.New(youtubeSvc, st, logger)

	bot, err := discord.New(cfg, st, ingester, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Store:   st,
		Bot:     bot,
		closers: closers,
	}, nil
}

// Close tears services down in reverse build order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
