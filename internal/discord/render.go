package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/combot-go/internal/constants"
	"github.com/kapu/combot-go/internal/domain"
	"github.com/kapu/combot-go/internal/menu"
	"github.com/kapu/combot-go/internal/pagination"
	"github.com/kapu/combot-go/internal/store"
	"github.com/kapu/combot-go/internal/util"
)

// Component custom IDs. Surfaces are looked up by message ID, so IDs only
// carry the action and a small parameter, never session state.
const (
	cidPrefix = "combot:"

	cidCategoryPrefix = cidPrefix + "cat:"
	cidStarterPrefix  = cidPrefix + "starter:"
	cidComboPrefix    = cidPrefix + "combo:"
	cidResourcePrefix = cidPrefix + "resource:"
	cidPlayerPrefix   = cidPrefix + "player:"

	cidResources    = cidPrefix + "resources"
	cidResourceList = cidPrefix + "res:list"
	cidPlayersMain  = cidPrefix + "players:main"
	cidPlayersRes   = cidPrefix + "players:res"
	cidEnderInfo    = cidPrefix + "ender"
	cidRoutesInfo   = cidPrefix + "routes"

	cidBack       = cidPrefix + "back"
	cidClose      = cidPrefix + "close"
	cidPagePrev   = cidPrefix + "page:prev"
	cidPageNext   = cidPrefix + "page:next"
	cidPlayerPrev = cidPrefix + "pstep:prev"
	cidPlayerNext = cidPrefix + "pstep:next"
)

// renderer builds the embed and button set for each screen from live store
// data.
type renderer struct {
	store *store.Store
}

type rendered struct {
	content    string
	embed      *discordgo.MessageEmbed
	components []discordgo.MessageComponent
}

// render produces the full surface for a screen.
func (r *renderer) render(screen menu.Screen) rendered {
	cfg := r.store.Config()
	switch screen.Kind {
	case menu.KindMainMenu:
		return r.renderMainMenu(cfg)
	case menu.KindStarterList:
		return r.renderStarterList(cfg, screen)
	case menu.KindComboList:
		return r.renderComboList(cfg, screen)
	case menu.KindResourceMenu:
		return r.renderResourceMenu(cfg)
	case menu.KindResourceList:
		return r.renderResourceList(cfg, screen)
	case menu.KindPlayerList:
		return r.renderPlayerList(cfg, screen)
	case menu.KindPlayerDetail:
		return r.renderPlayerDetail(cfg, screen)
	case menu.KindEnderInfo:
		return r.renderEnderInfo(cfg)
	case menu.KindRoutesInfo:
		return r.renderRoutesInfo(cfg)
	default:
		return rendered{content: "✖️ *Menu closed.*"}
	}
}

func (r *renderer) renderMainMenu(cfg domain.Configuration) rendered {
	embed := &discordgo.MessageEmbed{
		Title:       "\U0001F3AE " + cfg.CharacterName + " Combos",
		Description: "Select a category to explore:",
		Color:       cfg.EmbedColor(),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use the buttons below to navigate"},
	}
	if len(cfg.ComboCategories) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "\U0001F4C2 Available Categories",
			Value: strings.Join(cfg.ComboCategories, ", "),
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "\U0001F4CA Bot Stats",
		Value: fmt.Sprintf("• %d categories\n• %d total starters\n• %d notable players",
			len(cfg.ComboCategories), cfg.TotalStarters(), len(cfg.NotablePlayers)),
		Inline: true,
	})

	styles := []discordgo.ButtonStyle{
		discordgo.PrimaryButton,
		discordgo.SuccessButton,
		discordgo.SecondaryButton,
	}
	var buttons []discordgo.MessageComponent
	for i, category := range cfg.ComboCategories {
		buttons = append(buttons, discordgo.Button{
			Label:    util.TruncateString(category, constants.Limits.ButtonLabel),
			Style:    styles[i%len(styles)],
			CustomID: cidCategoryPrefix + category,
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "\U0001F4DA Resources",
		Style:    discordgo.SecondaryButton,
		CustomID: cidResources,
	})
	if len(cfg.NotablePlayers) > 0 {
		buttons = append(buttons, discordgo.Button{
			Label:    "✨ Notable Players",
			Style:    discordgo.SecondaryButton,
			CustomID: cidPlayersMain,
		})
	}
	if cfg.EnderTitle != "" {
		buttons = append(buttons, discordgo.Button{
			Label:    util.TruncateString(cfg.EnderTitle, constants.Limits.ButtonLabel),
			Style:    discordgo.SecondaryButton,
			CustomID: cidEnderInfo,
		})
	}
	if cfg.RoutesTitle != "" {
		buttons = append(buttons, discordgo.Button{
			Label:    util.TruncateString(cfg.RoutesTitle, constants.Limits.ButtonLabel),
			Style:    discordgo.SecondaryButton,
			CustomID: cidRoutesInfo,
		})
	}
	buttons = append(buttons, closeButton())

	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderStarterList(cfg domain.Configuration, screen menu.Screen) rendered {
	starters := cfg.StartersFor(screen.Category)
	pager := pagination.New(len(starters), cfg.PageSizes.Starters)
	pager.SetPage(screen.Page)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("\U0001F539 %s Starters (Page %d/%d)",
			screen.Category, pager.Page()+1, pager.PageCount()),
		Color:     cfg.EmbedColor(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Select a starter to view its combos"},
	}

	var buttons []discordgo.MessageComponent
	if len(starters) == 0 {
		embed.Description = fmt.Sprintf("_No starters configured for %s yet. Use `/admin add_starter` to add some._", screen.Category)
	} else {
		start, _ := pager.Bounds()
		var lines []string
		totalCombos := 0
		for _, starter := range starters {
			totalCombos += r.store.GetComboCount(screen.Category, starter)
		}
		for i, starter := range pagination.Slice(pager, starters) {
			globalIndex := start + i
			count := r.store.GetComboCount(screen.Category, starter)
			note := "No combos yet"
			if count == 1 {
				note = "1 combo"
			} else if count > 1 {
				note = fmt.Sprintf("%d combos", count)
			}
			lines = append(lines, fmt.Sprintf("**%d. %s** - _%s_", globalIndex+1, starter, note))

			buttons = append(buttons, discordgo.Button{
				Label:    util.TruncateString(fmt.Sprintf("%d. %s", globalIndex+1, starter), constants.Limits.ButtonLabel),
				Style:    discordgo.PrimaryButton,
				CustomID: cidStarterPrefix + starter,
			})
		}
		embed.Description = strings.Join(lines, "\n")

		info := fmt.Sprintf("**Category:** %s\n**Total Starters:** %d", screen.Category, len(starters))
		if totalCombos > 0 {
			info += fmt.Sprintf("\n**Total Combos:** %d", totalCombos)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "\U0001F4CA Category Info",
			Value:  info,
			Inline: true,
		})
	}

	buttons = append(buttons, pageButtons(pager)...)
	buttons = append(buttons, backButton(), closeButton())
	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderComboList(cfg domain.Configuration, screen menu.Screen) rendered {
	combos := r.store.GetCombos(screen.Category, screen.Starter)
	pager := pagination.New(len(combos), cfg.PageSizes.Combos)
	pager.SetPage(screen.Page)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("\U0001F4DC %s Combos (Page %d/%d)",
			screen.Starter, pager.Page()+1, pager.PageCount()),
		Description: "Select a number for full details and video link.",
		Color:       cfg.EmbedColor(),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
	}

	var buttons []discordgo.MessageComponent
	if len(combos) == 0 {
		embed.Description = fmt.Sprintf("_No combos stored for %s yet. Use `/update` with a playlist to add some._", screen.Starter)
	} else {
		start, end := pager.Bounds()
		for i, combo := range pagination.Slice(pager, combos) {
			globalIndex := start + i
			fieldName := fmt.Sprintf("%d. %s", globalIndex+1,
				util.TruncateString(util.FormatNotation(combo.Notation), constants.Limits.EmbedFieldName))
			fieldValue := "_No specific notes._"
			if combo.HasNotes() {
				fieldValue = "**Note:** " + util.TruncateString(combo.Notes, constants.Limits.NotesPreview)
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  util.TruncateString(fieldName, constants.Limits.EmbedFieldName),
				Value: fieldValue,
			})
			buttons = append(buttons, discordgo.Button{
				Label:    fmt.Sprintf("%d", globalIndex+1),
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s%d", cidComboPrefix, globalIndex),
			})
		}
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing combos %d-%d of %d • Category: %s",
				start+1, end, len(combos), screen.Category),
		}
	}

	buttons = append(buttons, pageButtons(pager)...)
	buttons = append(buttons, discordgo.Button{
		Label:    "✖️ Close",
		Style:    discordgo.SecondaryButton,
		CustomID: cidClose,
	})
	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderResourceMenu(cfg domain.Configuration) rendered {
	embed := &discordgo.MessageEmbed{
		Title:       "\U0001F4DA Resources",
		Description: "Select a resource category to explore:",
		Color:       cfg.EmbedColor(),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use the buttons below to browse resources"},
	}
	stats := "• General resources available"
	if len(cfg.NotablePlayers) > 0 {
		stats += fmt.Sprintf("\n• %d notable players", len(cfg.NotablePlayers))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "\U0001F4CA Available Resources",
		Value: stats,
	})

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "\U0001F517 General Resources",
			Style:    discordgo.PrimaryButton,
			CustomID: cidResourceList,
		},
	}
	if len(cfg.NotablePlayers) > 0 {
		buttons = append(buttons, discordgo.Button{
			Label:    "✨ Notable Players",
			Style:    discordgo.PrimaryButton,
			CustomID: cidPlayersRes,
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "↩️ Main Menu",
		Style:    discordgo.SecondaryButton,
		CustomID: cidBack,
	}, closeButton())

	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderResourceList(cfg domain.Configuration, screen menu.Screen) rendered {
	note, resources := r.store.GetResources()
	pager := pagination.New(len(resources), cfg.PageSizes.Resources)
	pager.SetPage(screen.Page)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("\U0001F517 General Resources (Page %d/%d)",
			pager.Page()+1, pager.PageCount()),
		Color:     cfg.EmbedColor(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
	}

	var description strings.Builder
	if note != "" {
		description.WriteString(note + "\n\n")
	}

	var buttons []discordgo.MessageComponent
	if len(resources) == 0 {
		description.WriteString("_No resources configured yet._")
	} else {
		start, _ := pager.Bounds()
		for i, resource := range pagination.Slice(pager, resources) {
			globalIndex := start + i
			description.WriteString(fmt.Sprintf("**%d. %s** (%s)\n", globalIndex+1, resource.Name, resource.Type))
			buttons = append(buttons, discordgo.Button{
				Label:    util.TruncateString(fmt.Sprintf("%d. %s", globalIndex+1, resource.Name), constants.Limits.ButtonLabel),
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s%d", cidResourcePrefix, globalIndex),
			})
		}
		description.WriteString("\n**Select a resource for details and link.**")

		typeCounts := map[string]int{}
		var typeOrder []string
		for _, resource := range resources {
			key := strings.ToLower(resource.Type)
			if typeCounts[key] == 0 {
				typeOrder = append(typeOrder, key)
			}
			typeCounts[key]++
		}
		var summary []string
		for _, key := range typeOrder {
			summary = append(summary, fmt.Sprintf("%d %s", typeCounts[key], key))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "\U0001F4CA Resource Types",
			Value: strings.Join(summary, ", "),
		})
	}
	embed.Description = util.TruncateString(description.String(), constants.Limits.EmbedDescription)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: pageInfo(pager)}

	buttons = append(buttons, pageButtons(pager)...)
	buttons = append(buttons, backButton(), closeButton())
	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderPlayerList(cfg domain.Configuration, screen menu.Screen) rendered {
	players := cfg.NotablePlayers
	pager := pagination.New(len(players), cfg.PageSizes.Players)
	pager.SetPage(screen.Page)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("✨ Notable Players (Page %d/%d)",
			pager.Page()+1, pager.PageCount()),
		Color:     cfg.EmbedColor(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: pageInfo(pager)},
	}

	var buttons []discordgo.MessageComponent
	if len(players) == 0 {
		embed.Description = "_No notable players configured yet._"
	} else {
		start, _ := pager.Bounds()
		var lines []string
		for i, player := range pagination.Slice(pager, players) {
			globalIndex := start + i
			lines = append(lines, strings.TrimSpace(
				fmt.Sprintf("**%d. %s** %s", globalIndex+1, player.Name, player.RegionEmoji)))
			buttons = append(buttons, discordgo.Button{
				Label:    util.TruncateString(fmt.Sprintf("%d. %s", globalIndex+1, player.Name), constants.Limits.ButtonLabel),
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s%d", cidPlayerPrefix, globalIndex),
			})
		}
		embed.Description = strings.Join(lines, "\n") + "\n\n**Select a player for details.**"
	}

	buttons = append(buttons, pageButtons(pager)...)
	buttons = append(buttons, backButton(), closeButton())
	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderPlayerDetail(cfg domain.Configuration, screen menu.Screen) rendered {
	players := cfg.NotablePlayers
	if screen.PlayerIndex < 0 || screen.PlayerIndex >= len(players) {
		return rendered{embed: &discordgo.MessageEmbed{
			Title:       "❌ Error",
			Description: "Player not found.",
			Color:       domain.DefaultEmbedColor,
		}}
	}
	player := players[screen.PlayerIndex]

	description := "_No description available._"
	if len(player.DescriptionLines) > 0 {
		description = strings.Join(player.DescriptionLines, "\n")
	}
	embed := &discordgo.MessageEmbed{
		Title:       strings.TrimSpace(player.Name + " " + player.RegionEmoji),
		Description: util.TruncateString(description, constants.Limits.EmbedDescription),
		Color:       cfg.EmbedColor(),
		URL:         player.SocialLink,
	}
	if player.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: player.ImageURL}
	}

	position := fmt.Sprintf("Player %d of %d", screen.PlayerIndex+1, len(players))
	if player.ColorFooter != "" {
		position = player.ColorFooter + " • " + position
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: position}

	if player.SocialLink != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "\U0001F517 " + player.SocialPlatform(),
			Value: fmt.Sprintf("[Visit Profile](%s)", player.SocialLink),
		})
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "◀ Previous",
			Style:    discordgo.SecondaryButton,
			CustomID: cidPlayerPrev,
			Disabled: screen.PlayerIndex == 0,
		},
		discordgo.Button{
			Label:    "Next ▶",
			Style:    discordgo.SecondaryButton,
			CustomID: cidPlayerNext,
			Disabled: screen.PlayerIndex >= len(players)-1,
		},
		backButton(),
		closeButton(),
	}
	return rendered{embed: embed, components: buttonRows(buttons)}
}

func (r *renderer) renderEnderInfo(cfg domain.Configuration) rendered {
	embed := &discordgo.MessageEmbed{
		Title:     cfg.EnderTitle,
		Color:     cfg.EmbedColor(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
	}
	if len(cfg.EnderInfo) > 0 {
		embed.Description = util.TruncateString(strings.Join(cfg.EnderInfo, "\n"), constants.Limits.EmbedDescription)
	} else {
		embed.Description = "_No ender information configured yet._"
	}
	if cfg.EnderCredit != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: cfg.EnderCredit}
	}
	return rendered{embed: embed, components: buttonRows([]discordgo.MessageComponent{backButton(), closeButton()})}
}

func (r *renderer) renderRoutesInfo(cfg domain.Configuration) rendered {
	embed := &discordgo.MessageEmbed{
		Title:     cfg.RoutesTitle,
		Color:     cfg.EmbedColor(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: cfg.ThumbnailURL},
	}
	if len(cfg.InterestingRoutes) > 0 {
		var lines []string
		for _, route := range cfg.InterestingRoutes {
			lines = append(lines, "• "+route)
		}
		embed.Description = util.TruncateString(strings.Join(lines, "\n"), constants.Limits.EmbedDescription)
	} else {
		embed.Description = "_No interesting routes configured yet._"
	}
	return rendered{embed: embed, components: buttonRows([]discordgo.MessageComponent{backButton(), closeButton()})}
}

// comboDetail formats the one-shot ephemeral reveal for a single combo.
func comboDetail(starter string, index int, combo domain.Combo) string {
	notation := util.TruncateString(util.FormatNotation(combo.Notation), constants.Limits.NotationPreview)
	content := fmt.Sprintf("**Combo #%d for %s**\n\n**Notation:**\n```%s```\n", index+1, starter, notation)
	if combo.HasNotes() {
		content += "**Notes:**\n" + util.TruncateString(combo.Notes, constants.Limits.NotationPreview) + "\n"
	}
	content += "\n\U0001F3A5 **Video:** " + combo.Link
	return util.TruncateString(content, constants.Limits.MessageContent)
}

// resourceDetail formats the one-shot ephemeral reveal for a resource.
func resourceDetail(resource domain.Resource) string {
	content := fmt.Sprintf("**Resource: %s**\n\n**Type:** `%s`\n", resource.Name, resource.Type)
	if resource.Credit != "" {
		content += "**Credit:** " + resource.Credit + "\n"
	}
	content += "\n\U0001F517 **Link:** " + resource.Link

	typeHints := map[string]string{
		"video":       "\U0001F3A5 Video content",
		"document":    "\U0001F4C4 Text document",
		"spreadsheet": "\U0001F4CA Data spreadsheet",
		"guide":       "\U0001F4D6 Tutorial or guide",
		"tool":        "\U0001F527 Utility or tool",
		"website":     "\U0001F310 Website or web app",
	}
	if hint, ok := typeHints[strings.ToLower(resource.Type)]; ok {
		content += "\n\n" + hint
	}
	return util.TruncateString(content, constants.Limits.MessageContent)
}

func pageInfo(pager *pagination.Paginator) string {
	return fmt.Sprintf("Page %d/%d • %d total", pager.Page()+1, pager.PageCount(), pager.Count())
}

func pageButtons(pager *pagination.Paginator) []discordgo.MessageComponent {
	if pager.PageCount() <= 1 {
		return nil
	}
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "◀ Prev",
			Style:    discordgo.SecondaryButton,
			CustomID: cidPagePrev,
			Disabled: !pager.HasPrev(),
		},
		discordgo.Button{
			Label:    "Next ▶",
			Style:    discordgo.SecondaryButton,
			CustomID: cidPageNext,
			Disabled: !pager.HasNext(),
		},
	}
}

func backButton() discordgo.Button {
	return discordgo.Button{
		Label:    "↩️ Back",
		Style:    discordgo.SecondaryButton,
		CustomID: cidBack,
	}
}

func closeButton() discordgo.Button {
	return discordgo.Button{
		Label:    "✖️ Close",
		Style:    discordgo.SecondaryButton,
		CustomID: cidClose,
	}
}

// buttonRows chunks buttons into action rows of five, capped at the five
// rows a message may carry.
func buttonRows(buttons []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for len(buttons) > 0 && len(rows) < 5 {
		size := len(buttons)
		if size > 5 {
			size = 5
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons[:size]})
		buttons = buttons[size:]
	}
	return rows
}
