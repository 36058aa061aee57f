package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/combot-go/internal/constants"
)

// DefaultEmbedColor is the fallback accent (dark red) used when the stored
// hex value does not parse.
const DefaultEmbedColor = 0x992D22

type PageSizes struct {
	Starters  int
	Combos    int
	Players   int
	Resources int
}

// Configuration is the singleton deployment configuration. It is persisted
// flat inside the stored document's "config" object, with the page sizes
// flattened into four sibling keys.
type Configuration struct {
	CharacterName      string
	ThumbnailURL       string
	MainEmbedColorHex  string
	ComboCategories    []string
	Starters           map[string][]string
	EnderTitle         string
	EnderInfo          []string
	EnderCredit        string
	RoutesTitle        string
	InterestingRoutes  []string
	NotablePlayers     []Player
	PageSizes          PageSizes
	ViewTimeoutSeconds float64
}

func DefaultConfiguration() Configuration {
	return Configuration{
		CharacterName:      "Character",
		ThumbnailURL:       "https://i.imgur.com/default.png",
		MainEmbedColorHex:  "0x7289DA",
		ComboCategories:    []string{"Midscreen", "Corner"},
		Starters:           map[string][]string{},
		EnderTitle:         "\U0001F4D1 Ender Info",
		EnderInfo:          []string{},
		EnderCredit:        "",
		RoutesTitle:        "\U0001F4CC Interesting Routes",
		InterestingRoutes:  []string{},
		NotablePlayers:     []Player{},
		PageSizes:          PageSizes{Starters: 10, Combos: 5, Players: 5, Resources: 10},
		ViewTimeoutSeconds: 180,
	}
}

// configDocument is the flat JSON shape. Pointer fields distinguish absent
// keys, so unknown keys are dropped and missing keys keep their defaults.
type configDocument struct {
	CharacterName      *string              `json:"character_name,omitempty"`
	ThumbnailURL       *string              `json:"thumbnail_url,omitempty"`
	MainEmbedColorHex  *string              `json:"main_embed_color_hex,omitempty"`
	ComboCategories    *[]string            `json:"combo_categories,omitempty"`
	Starters           *map[string][]string `json:"starters,omitempty"`
	EnderTitle         *string              `json:"info_section_ender_title,omitempty"`
	EnderInfo          *[]string            `json:"ender_info,omitempty"`
	EnderCredit        *string              `json:"ender_info_credit,omitempty"`
	RoutesTitle        *string              `json:"info_section_routes_title,omitempty"`
	InterestingRoutes  *[]string            `json:"interesting_routes,omitempty"`
	NotablePlayers     *[]Player            `json:"notable_players,omitempty"`
	PageSizeStarters   *int                 `json:"page_size_starters,omitempty"`
	PageSizeCombos     *int                 `json:"page_size_combos,omitempty"`
	PageSizePlayers    *int                 `json:"page_size_players,omitempty"`
	PageSizeResources  *int                 `json:"page_size_resources,omitempty"`
	ViewTimeoutSeconds *float64             `json:"view_timeout_seconds,omitempty"`
}

// ConfigurationFromDocument builds a Configuration from the raw "config"
// object, starting from defaults so that absent keys are backfilled, and
// reconciles the category/starter invariant.
func ConfigurationFromDocument(raw json.RawMessage) (Configuration, error) {
	cfg := DefaultConfiguration()
	if len(raw) == 0 {
		cfg.Reconcile()
		return cfg, nil
	}

	var doc configDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Configuration{}, err
	}

	if doc.CharacterName != nil {
		cfg.CharacterName = *doc.CharacterName
	}
	if doc.ThumbnailURL != nil {
		cfg.ThumbnailURL = *doc.ThumbnailURL
	}
	if doc.MainEmbedColorHex != nil {
		cfg.MainEmbedColorHex = *doc.MainEmbedColorHex
	}
	if doc.ComboCategories != nil {
		cfg.ComboCategories = *doc.ComboCategories
	}
	if doc.Starters != nil {
		cfg.Starters = *doc.Starters
	}
	if doc.EnderTitle != nil {
		cfg.EnderTitle = *doc.EnderTitle
	}
	if doc.EnderInfo != nil {
		cfg.EnderInfo = *doc.EnderInfo
	}
	if doc.EnderCredit != nil {
		cfg.EnderCredit = *doc.EnderCredit
	}
	if doc.RoutesTitle != nil {
		cfg.RoutesTitle = *doc.RoutesTitle
	}
	if doc.InterestingRoutes != nil {
		cfg.InterestingRoutes = *doc.InterestingRoutes
	}
	if doc.NotablePlayers != nil {
		cfg.NotablePlayers = *doc.NotablePlayers
	}
	if doc.PageSizeStarters != nil {
		cfg.PageSizes.Starters = *doc.PageSizeStarters
	}
	if doc.PageSizeCombos != nil {
		cfg.PageSizes.Combos = *doc.PageSizeCombos
	}
	if doc.PageSizePlayers != nil {
		cfg.PageSizes.Players = *doc.PageSizePlayers
	}
	if doc.PageSizeResources != nil {
		cfg.PageSizes.Resources = *doc.PageSizeResources
	}
	if doc.ViewTimeoutSeconds != nil {
		cfg.ViewTimeoutSeconds = *doc.ViewTimeoutSeconds
	}

	cfg.Reconcile()
	return cfg, nil
}

// ToDocument serializes the configuration into its flat JSON shape.
func (c *Configuration) ToDocument() (json.RawMessage, error) {
	doc := configDocument{
		CharacterName:      &c.CharacterName,
		ThumbnailURL:       &c.ThumbnailURL,
		MainEmbedColorHex:  &c.MainEmbedColorHex,
		ComboCategories:    &c.ComboCategories,
		Starters:           &c.Starters,
		EnderTitle:         &c.EnderTitle,
		EnderInfo:          &c.EnderInfo,
		EnderCredit:        &c.EnderCredit,
		RoutesTitle:        &c.RoutesTitle,
		InterestingRoutes:  &c.InterestingRoutes,
		NotablePlayers:     &c.NotablePlayers,
		PageSizeStarters:   &c.PageSizes.Starters,
		PageSizeCombos:     &c.PageSizes.Combos,
		PageSizePlayers:    &c.PageSizes.Players,
		PageSizeResources:  &c.PageSizes.Resources,
		ViewTimeoutSeconds: &c.ViewTimeoutSeconds,
	}
	return json.Marshal(doc)
}

// Reconcile enforces the category/starter invariant: every configured
// category owns a starters entry, and every starters key is a known category.
func (c *Configuration) Reconcile() {
	if c.Starters == nil {
		c.Starters = map[string][]string{}
	}
	for _, category := range c.ComboCategories {
		if _, ok := c.Starters[category]; !ok {
			c.Starters[category] = []string{}
		}
	}

	var orphans []string
	for category := range c.Starters {
		if !containsString(c.ComboCategories, category) {
			orphans = append(orphans, category)
		}
	}
	sort.Strings(orphans)
	c.ComboCategories = append(c.ComboCategories, orphans...)
}

// EmbedColor parses the configured hex accent, falling back to the default
// color when the value is malformed.
func (c *Configuration) EmbedColor() int {
	hex := strings.TrimPrefix(strings.TrimSpace(c.MainEmbedColorHex), "0x")
	hex = strings.TrimPrefix(hex, "#")
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || value > 0xFFFFFF {
		return DefaultEmbedColor
	}
	return int(value)
}

func (c *Configuration) ViewTimeout() time.Duration {
	if c.ViewTimeoutSeconds <= 0 {
		return constants.View.DefaultTimeout
	}
	return time.Duration(c.ViewTimeoutSeconds * float64(time.Second))
}

func (c *Configuration) HasCategory(name string) bool {
	return containsString(c.ComboCategories, name)
}

func (c *Configuration) StartersFor(category string) []string {
	return c.Starters[category]
}

func (c *Configuration) HasStarter(category, starter string) bool {
	return containsString(c.Starters[category], starter)
}

// FindPlayer locates a player by case-insensitive name. Names are the only
// player identity the document carries.
func (c *Configuration) FindPlayer(name string) (Player, bool) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.NotablePlayers {
		if strings.ToLower(p.Name) == lowered {
			return p, true
		}
	}
	return Player{}, false
}

func (c *Configuration) TotalStarters() int {
	total := 0
	for _, starters := range c.Starters {
		total += len(starters)
	}
	return total
}

// Clone returns a deep copy so callers cannot alias the store's document.
func (c *Configuration) Clone() Configuration {
	clone := *c
	clone.ComboCategories = append([]string(nil), c.ComboCategories...)
	clone.EnderInfo = append([]string(nil), c.EnderInfo...)
	clone.InterestingRoutes = append([]string(nil), c.InterestingRoutes...)
	clone.Starters = make(map[string][]string, len(c.Starters))
	for category, starters := range c.Starters {
		clone.Starters[category] = append([]string(nil), starters...)
	}
	clone.NotablePlayers = make([]Player, len(c.NotablePlayers))
	for i, p := range c.NotablePlayers {
		clone.NotablePlayers[i] = p
		clone.NotablePlayers[i].DescriptionLines = append([]string(nil), p.DescriptionLines...)
	}
	return clone
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
