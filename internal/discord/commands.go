package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/menu"
)

// commandDefinitions declares the slash command surface registered at
// startup.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "combos",
			Description: "Show character combo menu",
		},
		{
			Name:        "update",
			Description: "Update combos or add resources",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Category to update (or 'resources' for adding resources)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "playlist_or_url",
					Description: "YouTube playlist ID/URL or resource URL",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "starter",
					Description: "Starter name (required for combo categories)",
				},
			},
		},
		{
			Name:        "admin",
			Description: "Administrative commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Initial bot setup",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add_starter",
					Description: "Add a starter to a category",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "category", Description: "Combo category", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "starter", Description: "Starter name", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove_starter",
					Description: "Remove a starter from a category",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "category", Description: "Combo category", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "starter", Description: "Starter name", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add_category",
					Description: "Add a new combo category",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Category name", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add_player",
					Description: "Add a notable player",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove_player",
					Description: "Remove a notable player",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Player name to remove", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "config",
					Description: "View current bot configuration",
				},
			},
		},
	}
}

// handleCombosCommand opens the main menu as a fresh ephemeral surface.
func (b *Bot) handleCombosCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	owner := interactionUserID(i)
	cfg := b.store.Config()
	session := menu.NewSession(b.store, owner, menu.MainMenu(), cfg.ViewTimeout())

	view := b.renderer.render(session.Screen())
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{view.embed},
			Components: view.components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to open combo menu", zap.Error(err))
		return
	}

	message, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		b.logger.Error("failed to resolve menu surface", zap.Error(err))
		return
	}
	b.registerSession(message.ID, i.Interaction.Token, session)
	b.logger.Info("combo menu opened", zap.String("user", owner))
}

// handleUpdateCommand ingests a playlist into a starter's combo set, or
// opens the add-resource modal when the category selector is "resources".
func (b *Bot) handleUpdateCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	if !b.config.IsOwner(userID) {
		b.respondEphemeral(s, i, "❌ You don't have permission to use this command.")
		return
	}

	options := optionMap(i.ApplicationCommandData().Options)
	category := options["category"]
	target := options["playlist_or_url"]
	starter := options["starter"]

	if strings.EqualFold(category, "resources") {
		b.respondModal(s, i, resourceModal(target))
		return
	}

	cfg := b.store.Config()
	if !cfg.HasCategory(category) {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Invalid category **%s**.\nValid categories: %s",
			category, strings.Join(cfg.ComboCategories, ", ")))
		return
	}
	if starter == "" {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Starter name is required for combo categories.\nUsage: `/update %s <playlist_url> <starter_name>`", category))
		return
	}
	if !cfg.HasStarter(category, starter) {
		starters := cfg.StartersFor(category)
		if len(starters) > 0 {
			b.respondEphemeral(s, i, fmt.Sprintf("❌ Invalid starter **%s** for %s.\nAvailable starters: %s",
				starter, category, strings.Join(starters, ", ")))
		} else {
			b.respondEphemeral(s, i, fmt.Sprintf("❌ No starters configured for %s.\nUse `/admin add_starter` to add starters first.", category))
		}
		return
	}

	playlistID, ok := b.resolvePlaylistID(target)
	if !ok {
		b.respondEphemeral(s, i, "❌ Invalid YouTube playlist URL or ID.\nPlease provide a valid YouTube playlist URL like:\n`https://www.youtube.com/playlist?list=PLxxxxxx`")
		return
	}

	// The fetch takes seconds; defer so the interaction token stays valid.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		b.logger.Error("failed to defer update response", zap.Error(err))
		return
	}

	result, err := b.ingester.Run(context.Background(), category, starter, playlistID)
	if err != nil {
		b.followupEphemeral(s, i, "❌ **Error fetching playlist:**\n"+userFacingError(err))
		return
	}
	if result.Imported == 0 {
		b.followupEphemeral(s, i, fmt.Sprintf("⚠️ No valid combos found in playlist **%s**.\nPlease ensure the playlist contains videos with proper notation in descriptions.", result.PlaylistTitle))
		return
	}

	b.followupEphemeral(s, i, fmt.Sprintf(
		"✅ **Successfully updated %s → %s**\n\n\U0001F4DC **Playlist:** %s\n\U0001F3AF **Combos Added:** %d\n\U0001F4DD **Note:** %s\n\nUse `/combos` to view the updated combos!",
		category, starter, result.PlaylistTitle, result.Imported, result.Note))
	b.logger.Info("combos updated",
		zap.String("category", category),
		zap.String("starter", starter),
		zap.Int("imported", result.Imported),
		zap.String("user", userID))
}

// handleAdminCommand dispatches /admin subcommands after the owner check.
func (b *Bot) handleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	if !b.config.IsOwner(userID) {
		b.respondEphemeral(s, i, "❌ You don't have permission to use admin commands.")
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	options := optionMap(sub.Options)

	switch sub.Name {
	case "setup":
		b.respondModal(s, i, setupModal(b.store.Config()))
	case "add_starter":
		b.adminAddStarter(s, i, options["category"], options["starter"])
	case "remove_starter":
		b.adminRemoveStarter(s, i, options["category"], options["starter"])
	case "add_category":
		b.adminAddCategory(s, i, options["name"])
	case "add_player":
		b.respondModal(s, i, playerModal())
	case "remove_player":
		b.adminRemovePlayer(s, i, options["name"])
	case "config":
		b.adminShowConfig(s, i)
	default:
		b.respondEphemeral(s, i, "❌ Unknown admin subcommand.")
	}
}

func (b *Bot) adminAddStarter(s *discordgo.Session, i *discordgo.InteractionCreate, category, starter string) {
	cfg := b.store.Config()
	if !cfg.HasCategory(category) {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Invalid category **%s**.\nValid categories: %s",
			category, strings.Join(cfg.ComboCategories, ", ")))
		return
	}
	starter = strings.TrimSpace(starter)
	if starter == "" {
		b.respondEphemeral(s, i, "❌ Starter name cannot be empty.")
		return
	}
	if !b.store.AddStarter(category, starter) {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Starter **%s** already exists in %s.", starter, category))
		return
	}
	if err := b.store.Save(true); err != nil {
		b.logger.Error("failed to save after add_starter", zap.Error(err))
		b.respondEphemeral(s, i, "❌ Failed to save the new starter. Please try again.")
		return
	}
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Added starter **%s** to %s.\nUse `/update %s <playlist_url> %s` to add combos.",
		starter, category, category, starter))
}

func (b *Bot) adminRemoveStarter(s *discordgo.Session, i *discordgo.InteractionCreate, category, starter string) {
	removedConfig, removedData := b.store.RemoveStarter(category, strings.TrimSpace(starter))
	if !removedConfig && !removedData {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Starter **%s** not found in %s.", starter, category))
		return
	}
	if err := b.store.Save(true); err != nil {
		b.logger.Error("failed to save after remove_starter", zap.Error(err))
		b.respondEphemeral(s, i, "❌ Failed to save the removal. Please try again.")
		return
	}
	detail := ""
	if removedData {
		detail = " Its combo data was removed as well."
	}
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Removed starter **%s** from %s.%s", starter, category, detail))
}

func (b *Bot) adminAddCategory(s *discordgo.Session, i *discordgo.InteractionCreate, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		b.respondEphemeral(s, i, "❌ Category name cannot be empty.")
		return
	}
	if !b.store.AddCategory(name) {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Category **%s** already exists.", name))
		return
	}
	if err := b.store.Save(true); err != nil {
		b.logger.Error("failed to save after add_category", zap.Error(err))
		b.respondEphemeral(s, i, "❌ Failed to save the new category. Please try again.")
		return
	}
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Added category **%s**.\nUse `/admin add_starter %s <starter_name>` to add starters.", name, name))
}

func (b *Bot) adminRemovePlayer(s *discordgo.Session, i *discordgo.InteractionCreate, name string) {
	name = strings.TrimSpace(name)
	if !b.store.RemovePlayer(name) {
		b.respondEphemeral(s, i, fmt.Sprintf("❌ Player **%s** not found.", name))
		return
	}
	if err := b.store.Save(true); err != nil {
		b.logger.Error("failed to save after remove_player", zap.Error(err))
		b.respondEphemeral(s, i, "❌ Failed to save the removal. Please try again.")
		return
	}
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Removed player **%s**.", name))
}

// adminShowConfig renders the configuration overview embed.
func (b *Bot) adminShowConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg := b.store.Config()
	stats := b.store.Stats()

	var categories []string
	for _, category := range cfg.ComboCategories {
		categories = append(categories, fmt.Sprintf("**%s:** %d starters", category, len(cfg.StartersFor(category))))
	}
	categoriesValue := "None configured"
	if len(categories) > 0 {
		categoriesValue = strings.Join(categories, "\n")
	}
	enderTitle := cfg.EnderTitle
	if enderTitle == "" {
		enderTitle = "Hidden"
	}
	routesTitle := cfg.RoutesTitle
	if routesTitle == "" {
		routesTitle = "Hidden"
	}

	embed := &discordgo.MessageEmbed{
		Title:     "⚙️ Bot Configuration",
		Color:     cfg.EmbedColor(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Configuration for " + cfg.CharacterName},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "\U0001F3AE Basic Info",
				Value: fmt.Sprintf("**Character:** %s\n**Color:** %s\n**Timeout:** %.0fs",
					cfg.CharacterName, cfg.MainEmbedColorHex, cfg.ViewTimeoutSeconds),
			},
			{
				Name:  "\U0001F4C2 Categories",
				Value: categoriesValue,
			},
			{
				Name: "\U0001F4C4 Page Sizes",
				Value: fmt.Sprintf("Starters: %d\nCombos: %d\nPlayers: %d\nResources: %d",
					cfg.PageSizes.Starters, cfg.PageSizes.Combos, cfg.PageSizes.Players, cfg.PageSizes.Resources),
				Inline: true,
			},
			{
				Name:   "ℹ️ Info Sections",
				Value:  fmt.Sprintf("Ender: %s\nRoutes: %s", enderTitle, routesTitle),
				Inline: true,
			},
			{
				Name: "\U0001F4CA Stats",
				Value: fmt.Sprintf("Total Starters: %d\nTotal Combos: %d\nResources: %d\nNotable Players: %d",
					stats.Starters, stats.Combos, stats.Resources, stats.Players),
				Inline: true,
			},
		},
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		b.logger.Error("failed to send config overview", zap.Error(err))
	}
}

// optionMap flattens string command options.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(options))
	for _, option := range options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			values[option.Name] = option.StringValue()
		}
	}
	return values
}
