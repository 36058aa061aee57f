package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/config"
	"github.com/kapu/combot-go/internal/ingest"
	"github.com/kapu/combot-go/internal/store"
)

// Bot wires the gateway connection to the store, the playlist ingester, and
// the interactive menu surfaces.
type Bot struct {
	session  *discordgo.Session
	store    *store.Store
	ingester *ingest.Ingester
	renderer *renderer
	registry *sessionRegistry
	config   *config.Config
	logger   *zap.Logger
	appID    string
}

func New(cfg *config.Config, st *store.Store, ingester *ingest.Ingester, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session:  session,
		store:    st,
		ingester: ingester,
		renderer: &renderer{store: st},
		registry: newSessionRegistry(),
		config:   cfg,
		logger:   logger,
	}, nil
}

// Start opens the gateway, registers the slash commands globally, and sets
// the presence.
func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	b.appID = b.session.State.User.ID

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.appID, "", commandDefinitions()); err != nil {
		b.session.Close()
		return fmt.Errorf("failed to register commands: %w", err)
	}

	character := b.store.Config().CharacterName
	if err := b.session.UpdateWatchStatus(0, character+" combos"); err != nil {
		b.logger.Warn("failed to set presence", zap.Error(err))
	}

	b.logger.Info("bot started",
		zap.String("user", b.session.State.User.Username),
		zap.String("character", character))
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("gateway ready",
		zap.String("session_id", r.SessionID),
		zap.Int("guilds", len(r.Guilds)))
}

// Stop tears down all open menus and closes the gateway connection.
func (b *Bot) Stop() error {
	open := b.registry.count()
	b.registry.shutdownAll()
	if open > 0 {
		b.logger.Info("closed open menu sessions", zap.Int("count", open))
	}
	return b.session.Close()
}
