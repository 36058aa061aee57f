package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/combot-go/internal/domain"
	"github.com/kapu/combot-go/internal/util"
)

// Modal custom IDs and field IDs.
const (
	midSetup    = cidPrefix + "modal:setup"
	midResource = cidPrefix + "modal:resource"
	midPlayer   = cidPrefix + "modal:player"

	fieldCharName    = "char_name"
	fieldThumbnail   = "thumbnail"
	fieldColor       = "color"
	fieldEnderTitle  = "ender_title"
	fieldRoutesTitle = "routes_title"

	fieldResName   = "name"
	fieldResType   = "type"
	fieldResLink   = "link"
	fieldResCredit = "credit"

	fieldPlayerName   = "player_name"
	fieldPlayerRegion = "region"
	fieldPlayerSocial = "social"
	fieldPlayerImage  = "image"
	fieldPlayerDesc   = "description"
)

func textInput(customID, label, placeholder string, required bool, maxLength int, style discordgo.TextInputStyle, value string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    customID,
				Label:       label,
				Placeholder: placeholder,
				Required:    required,
				MaxLength:   maxLength,
				Style:       style,
				Value:       value,
			},
		},
	}
}

// setupModal builds the bot-setup form, prefilled from the current
// configuration so re-running setup edits rather than resets.
func setupModal(cfg domain.Configuration) *discordgo.InteractionResponseData {
	colorValue := strings.TrimPrefix(cfg.MainEmbedColorHex, "0x")
	return &discordgo.InteractionResponseData{
		CustomID: midSetup,
		Title:    "Bot Setup",
		Components: []discordgo.MessageComponent{
			textInput(fieldCharName, "Character Name", "e.g., Carmine, Sol Badguy, Ryu", true, 50, discordgo.TextInputShort, cfg.CharacterName),
			textInput(fieldThumbnail, "Thumbnail URL (optional)", "https://i.imgur.com/example.png", false, 500, discordgo.TextInputShort, cfg.ThumbnailURL),
			textInput(fieldColor, "Embed Color (hex, without #)", "FF0000 for red, 00FF00 for green", false, 6, discordgo.TextInputShort, colorValue),
			textInput(fieldEnderTitle, "Ender Info Section Title (blank to hide)", "\U0001F4D1 Ender Optimization", false, 50, discordgo.TextInputShort, cfg.EnderTitle),
			textInput(fieldRoutesTitle, "Routes Section Title (blank to hide)", "✨ Special Routes", false, 50, discordgo.TextInputShort, cfg.RoutesTitle),
		},
	}
}

// resourceModal builds the add-resource form. The link may be prefilled from
// the /update invocation that opened the modal.
func resourceModal(link string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: midResource,
		Title:    "Add Resource",
		Components: []discordgo.MessageComponent{
			textInput(fieldResName, "Resource Name", "e.g., Frame Data Guide, Combo Video", true, 100, discordgo.TextInputShort, ""),
			textInput(fieldResType, "Resource Type", "e.g., video, document, spreadsheet, guide", true, 50, discordgo.TextInputShort, ""),
			textInput(fieldResLink, "Resource URL", "https://example.com/resource", true, 500, discordgo.TextInputShort, link),
			textInput(fieldResCredit, "Credit/Source (optional)", "e.g., Created by PlayerName, From FGC Wiki", false, 100, discordgo.TextInputShort, ""),
		},
	}
}

// playerModal builds the add-player form.
func playerModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: midPlayer,
		Title:    "Add Notable Player",
		Components: []discordgo.MessageComponent{
			textInput(fieldPlayerName, "Player Name", "e.g., Daigo, SonicFox, Tokido", true, 50, discordgo.TextInputShort, ""),
			textInput(fieldPlayerRegion, "Region Emoji", "\U0001F1FA\U0001F1F8 \U0001F1EF\U0001F1F5 \U0001F1F0\U0001F1F7 etc.", true, 10, discordgo.TextInputShort, ""),
			textInput(fieldPlayerSocial, "Social Media Link", "https://twitter.com/player", true, 200, discordgo.TextInputShort, ""),
			textInput(fieldPlayerImage, "Character Image URL", "https://i.imgur.com/character.png", true, 500, discordgo.TextInputShort, ""),
			textInput(fieldPlayerDesc, "Description (use \\n for line breaks)", "Famous for X combo\\nWon Y tournament", false, 800, discordgo.TextInputParagraph, ""),
		},
	}
}

// modalValues flattens a modal submission into a field-ID → value map.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				values[input.CustomID] = strings.TrimSpace(input.Value)
			}
		}
	}
	return values
}

// parseSetupSubmission validates the setup form and returns the fields to
// apply. An empty thumbnail or color keeps the existing value.
func parseSetupSubmission(values map[string]string) (func(*domain.Configuration), string, bool) {
	name := values[fieldCharName]
	if name == "" {
		return nil, "❌ Character name is required.", false
	}
	thumbnail := values[fieldThumbnail]
	if thumbnail != "" && !util.ValidateURL(thumbnail) {
		return nil, "❌ Invalid thumbnail URL. Please provide a valid HTTP/HTTPS URL.", false
	}
	color := ""
	if raw := values[fieldColor]; raw != "" {
		color = util.NormalizeColorHex(raw)
		if color == "" {
			return nil, "❌ Invalid color hex value. Please use 6-digit hex format (e.g., FF0000).", false
		}
	}
	enderTitle := values[fieldEnderTitle]
	routesTitle := values[fieldRoutesTitle]

	return func(cfg *domain.Configuration) {
		cfg.CharacterName = name
		cfg.EnderTitle = enderTitle
		cfg.RoutesTitle = routesTitle
		if thumbnail != "" {
			cfg.ThumbnailURL = thumbnail
		}
		if color != "" {
			cfg.MainEmbedColorHex = color
		}
	}, "", true
}

// parseResourceSubmission validates the add-resource form.
func parseResourceSubmission(values map[string]string) (domain.Resource, string, bool) {
	if values[fieldResName] == "" {
		return domain.Resource{}, "❌ Resource name is required.", false
	}
	if values[fieldResType] == "" {
		return domain.Resource{}, "❌ Resource type is required.", false
	}
	if !util.ValidateURL(values[fieldResLink]) {
		return domain.Resource{}, "❌ Invalid URL. Please provide a valid HTTP/HTTPS URL.", false
	}
	return domain.Resource{
		Name:   values[fieldResName],
		Type:   values[fieldResType],
		Link:   values[fieldResLink],
		Credit: values[fieldResCredit],
	}, "", true
}

// parsePlayerSubmission validates the add-player form. Description lines are
// split on a literal "\n" typed by the user, since modal short fields cannot
// carry real newlines consistently.
func parsePlayerSubmission(values map[string]string) (domain.Player, string, bool) {
	if values[fieldPlayerName] == "" {
		return domain.Player{}, "❌ Player name is required.", false
	}
	if values[fieldPlayerRegion] == "" {
		return domain.Player{}, "❌ Region emoji is required.", false
	}
	if !util.ValidateURL(values[fieldPlayerSocial]) {
		return domain.Player{}, "❌ Invalid social media URL. Please provide a valid HTTP/HTTPS URL.", false
	}
	if !util.ValidateURL(values[fieldPlayerImage]) {
		return domain.Player{}, "❌ Invalid image URL. Please provide a valid HTTP/HTTPS URL.", false
	}

	var descriptionLines []string
	if raw := values[fieldPlayerDesc]; raw != "" {
		for _, chunk := range strings.Split(raw, `\n`) {
			if line := strings.TrimSpace(chunk); line != "" {
				descriptionLines = append(descriptionLines, line)
			}
		}
	}

	return domain.Player{
		Name:             values[fieldPlayerName],
		RegionEmoji:      values[fieldPlayerRegion],
		SocialLink:       values[fieldPlayerSocial],
		ImageURL:         values[fieldPlayerImage],
		DescriptionLines: descriptionLines,
	}, "", true
}
