package discord

import (
	goerrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/menu"
	"github.com/kapu/combot-go/internal/service/youtube"
	"github.com/kapu/combot-go/pkg/errors"
)

const (
	expiredNotice  = "⏰ This menu has expired. Use `/combos` to open a new one."
	notYoursNotice = "❌ This menu belongs to someone else. Use `/combos` to open your own."
	timedOutText   = "⏰ *Menu timed out. Use `/combos` to open a new one.*"
)

// onInteraction is the single gateway handler: slash commands, button
// presses, and modal submissions all land here.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "combos":
			b.handleCombosCommand(s, i)
		case "update":
			b.handleUpdateCommand(s, i)
		case "admin":
			b.handleAdminCommand(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		b.handleModalSubmit(s, i)
	}
}

// handleComponent routes a button press to its session. Surfaces are looked
// up by the message they live on, so a press against a message the registry
// no longer tracks means the menu expired or the process restarted.
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	t, ok := b.registry.get(i.Message.ID)
	if !ok {
		b.respondEphemeral(s, i, expiredNotice)
		return
	}

	actor := interactionUserID(i)
	session := t.session
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, cidCategoryPrefix):
		category := strings.TrimPrefix(customID, cidCategoryPrefix)
		screen, err := session.OpenCategory(actor, category)
		b.finishTransition(s, i, screen, err)

	case strings.HasPrefix(customID, cidStarterPrefix):
		b.openComboList(s, i, session, actor, strings.TrimPrefix(customID, cidStarterPrefix))

	case strings.HasPrefix(customID, cidComboPrefix):
		b.revealCombo(s, i, session, actor, strings.TrimPrefix(customID, cidComboPrefix))

	case strings.HasPrefix(customID, cidResourcePrefix):
		b.revealResource(s, i, session, actor, strings.TrimPrefix(customID, cidResourcePrefix))

	case strings.HasPrefix(customID, cidPlayerPrefix):
		index, err := strconv.Atoi(strings.TrimPrefix(customID, cidPlayerPrefix))
		if err != nil {
			return
		}
		screen, err := session.OpenPlayerDetail(actor, index)
		b.finishTransition(s, i, screen, err)

	case customID == cidResources:
		screen, err := session.OpenResources(actor)
		b.finishTransition(s, i, screen, err)

	case customID == cidResourceList:
		screen, err := session.OpenResourceList(actor)
		b.finishTransition(s, i, screen, err)

	case customID == cidPlayersMain:
		screen, err := session.OpenPlayerList(actor, true)
		b.finishTransition(s, i, screen, err)

	case customID == cidPlayersRes:
		screen, err := session.OpenPlayerList(actor, false)
		b.finishTransition(s, i, screen, err)

	case customID == cidEnderInfo:
		screen, err := session.OpenEnderInfo(actor)
		b.finishTransition(s, i, screen, err)

	case customID == cidRoutesInfo:
		screen, err := session.OpenRoutesInfo(actor)
		b.finishTransition(s, i, screen, err)

	case customID == cidBack:
		screen, err := session.Back(actor)
		if err == nil && screen.Kind == menu.KindClosed {
			b.registry.remove(i.Message.ID)
		}
		b.finishTransition(s, i, screen, err)

	case customID == cidClose:
		if err := session.Close(actor); err != nil {
			b.componentError(s, i, err)
			return
		}
		b.registry.remove(i.Message.ID)
		b.updateSurface(s, i, rendered{content: "✖️ *Menu closed.*"})

	case customID == cidPagePrev, customID == cidPageNext:
		delta := 1
		if customID == cidPagePrev {
			delta = -1
		}
		screen, changed, err := session.Paginate(actor, delta)
		if err != nil {
			b.componentError(s, i, err)
			return
		}
		if !changed {
			b.ackComponent(s, i)
			return
		}
		b.updateSurface(s, i, b.renderer.render(screen))

	case customID == cidPlayerPrev, customID == cidPlayerNext:
		delta := 1
		if customID == cidPlayerPrev {
			delta = -1
		}
		screen, changed, err := session.StepPlayer(actor, delta)
		if err != nil {
			b.componentError(s, i, err)
			return
		}
		if !changed {
			b.ackComponent(s, i)
			return
		}
		b.updateSurface(s, i, b.renderer.render(screen))
	}
}

// finishTransition redraws the surface in place, or reports why the action
// was rejected.
func (b *Bot) finishTransition(s *discordgo.Session, i *discordgo.InteractionCreate, screen menu.Screen, err error) {
	if err != nil {
		b.componentError(s, i, err)
		return
	}
	b.updateSurface(s, i, b.renderer.render(screen))
}

// openComboList opens a starter's combos as a fresh surface of its own, so
// the starter list stays behind it for browsing other starters.
func (b *Bot) openComboList(s *discordgo.Session, i *discordgo.InteractionCreate, session *menu.Session, actor, starter string) {
	parent := session.Screen()
	if err := session.ValidateStarter(actor, parent.Category, starter); err != nil {
		b.componentError(s, i, err)
		return
	}

	cfg := b.store.Config()
	combos := menu.NewSession(b.store, actor, menu.ComboList(parent.Category, starter), cfg.ViewTimeout())
	view := b.renderer.render(combos.Screen())
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{view.embed},
			Components: view.components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to open combo list", zap.Error(err))
		return
	}
	message, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		b.logger.Error("failed to resolve combo list surface", zap.Error(err))
		return
	}
	b.registerSession(message.ID, i.Interaction.Token, combos)
}

// revealCombo sends the full notation, notes, and video link for one combo
// as a one-shot ephemeral message.
func (b *Bot) revealCombo(s *discordgo.Session, i *discordgo.InteractionCreate, session *menu.Session, actor, rawIndex string) {
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return
	}
	if err := session.Touch(actor); err != nil {
		b.componentError(s, i, err)
		return
	}
	screen := session.Screen()
	combos := b.store.GetCombos(screen.Category, screen.Starter)
	if index < 0 || index >= len(combos) {
		b.respondEphemeral(s, i, "❌ That combo is no longer available.")
		return
	}
	b.respondEphemeral(s, i, comboDetail(screen.Starter, index, combos[index]))
}

// revealResource sends one resource's details and link as a one-shot
// ephemeral message.
func (b *Bot) revealResource(s *discordgo.Session, i *discordgo.InteractionCreate, session *menu.Session, actor, rawIndex string) {
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return
	}
	if err := session.Touch(actor); err != nil {
		b.componentError(s, i, err)
		return
	}
	_, resources := b.store.GetResources()
	if index < 0 || index >= len(resources) {
		b.respondEphemeral(s, i, "❌ That resource is no longer available.")
		return
	}
	b.respondEphemeral(s, i, resourceDetail(resources[index]))
}

func (b *Bot) componentError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	switch {
	case goerrors.Is(err, menu.ErrNotOwner):
		b.respondEphemeral(s, i, notYoursNotice)
	case goerrors.Is(err, menu.ErrClosed):
		b.registry.remove(i.Message.ID)
		b.respondEphemeral(s, i, expiredNotice)
	default:
		var validation *errors.ValidationError
		if goerrors.As(err, &validation) {
			b.respondEphemeral(s, i, "❌ "+validation.Message+". The menu may be out of date, use `/combos` to refresh.")
			return
		}
		b.logger.Error("component action failed", zap.Error(err))
		b.respondEphemeral(s, i, "❌ Something went wrong. Please try again.")
	}
}

// handleModalSubmit applies the three admin forms.
func (b *Bot) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	if !b.config.IsOwner(userID) {
		b.respondEphemeral(s, i, "❌ You don't have permission to use admin commands.")
		return
	}

	data := i.ModalSubmitData()
	values := modalValues(data)

	switch data.CustomID {
	case midSetup:
		mutate, message, ok := parseSetupSubmission(values)
		if !ok {
			b.respondEphemeral(s, i, "❌ "+message)
			return
		}
		b.store.UpdateConfig(mutate)
		if err := b.store.Save(true); err != nil {
			b.logger.Error("failed to save setup", zap.Error(err))
			b.respondEphemeral(s, i, "❌ Failed to save the configuration. Please try again.")
			return
		}
		cfg := b.store.Config()
		b.respondEphemeral(s, i, fmt.Sprintf("✅ **Setup complete for %s!**\nCategories: %s\nUse `/combos` to see the updated menu.",
			cfg.CharacterName, strings.Join(cfg.ComboCategories, ", ")))
		b.logger.Info("configuration updated", zap.String("user", userID))

	case midResource:
		resource, message, ok := parseResourceSubmission(values)
		if !ok {
			b.respondEphemeral(s, i, "❌ "+message)
			return
		}
		if err := b.store.AddResource(resource); err != nil {
			b.respondEphemeral(s, i, "❌ "+userFacingError(err))
			return
		}
		if err := b.store.Save(false); err != nil {
			b.logger.Error("failed to save resource", zap.Error(err))
		}
		b.respondEphemeral(s, i, fmt.Sprintf("✅ Added resource **%s** (%s).", resource.Name, resource.Type))
		b.logger.Info("resource added", zap.String("name", resource.Name), zap.String("user", userID))

	case midPlayer:
		player, message, ok := parsePlayerSubmission(values)
		if !ok {
			b.respondEphemeral(s, i, "❌ "+message)
			return
		}
		if err := b.store.AddPlayer(player); err != nil {
			b.respondEphemeral(s, i, "❌ "+userFacingError(err))
			return
		}
		if err := b.store.Save(true); err != nil {
			b.logger.Error("failed to save player", zap.Error(err))
			b.respondEphemeral(s, i, "❌ Failed to save the player. Please try again.")
			return
		}
		b.respondEphemeral(s, i, fmt.Sprintf("✅ Added player **%s**.", player.Name))
		b.logger.Info("player added", zap.String("name", player.Name), zap.String("user", userID))
	}
}

// registerSession tracks a surface and arms its inactivity timer. When the
// timer fires the message is edited in place to a timed-out notice; if the
// interaction token has already lapsed the edit failure is ignored.
func (b *Bot) registerSession(messageID, token string, session *menu.Session) {
	b.registry.put(messageID, token, session)
	session.StartTimeout(func() {
		b.registry.remove(messageID)
		b.expireSurface(token)
	})
}

func (b *Bot) expireSurface(token string) {
	content := timedOutText
	embeds := []*discordgo.MessageEmbed{}
	components := []discordgo.MessageComponent{}
	_, err := b.session.InteractionResponseEdit(&discordgo.Interaction{
		AppID: b.appID,
		Token: token,
	}, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		b.logger.Debug("could not edit timed-out surface", zap.Error(err))
	}
}

// updateSurface redraws the pressed message in place.
func (b *Bot) updateSurface(s *discordgo.Session, i *discordgo.InteractionCreate, view rendered) {
	data := &discordgo.InteractionResponseData{Content: view.content}
	if view.embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{view.embed}
	} else {
		data.Embeds = []*discordgo.MessageEmbed{}
	}
	if view.components != nil {
		data.Components = view.components
	} else {
		data.Components = []discordgo.MessageComponent{}
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err != nil {
		b.logger.Error("failed to update menu surface", zap.Error(err))
	}
}

// ackComponent acknowledges a press that changes nothing, like paging past
// the last page.
func (b *Bot) ackComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		b.logger.Debug("failed to acknowledge component", zap.Error(err))
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to send ephemeral response", zap.Error(err))
	}
}

func (b *Bot) followupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.logger.Error("failed to send followup", zap.Error(err))
	}
}

func (b *Bot) respondModal(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
	if err != nil {
		b.logger.Error("failed to open modal", zap.Error(err))
	}
}

func (b *Bot) resolvePlaylistID(input string) (string, bool) {
	return youtube.ResolvePlaylistID(input)
}

// userFacingError turns a service failure into a message safe to show.
func userFacingError(err error) string {
	var playlist *errors.PlaylistError
	if goerrors.As(err, &playlist) {
		switch playlist.Kind {
		case errors.PlaylistNotFound:
			return "Playlist not found. Please check the URL and make sure the playlist is public."
		case errors.PlaylistForbidden:
			return "Access to this playlist is forbidden. Please make sure it is public."
		case errors.PlaylistQuotaExceeded:
			return "YouTube API quota exceeded. Please try again later."
		case errors.PlaylistTransient:
			return "YouTube is temporarily unavailable. Please try again in a few minutes."
		}
	}
	var validation *errors.ValidationError
	if goerrors.As(err, &validation) {
		return validation.Message
	}
	var bot *errors.BotError
	if goerrors.As(err, &bot) {
		return bot.Message
	}
	return err.Error()
}

// interactionUserID resolves the invoking user for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
