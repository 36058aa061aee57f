package domain

import (
	"encoding/json"
	"testing"
)

func TestNewComboBlankNotesSentinel(t *testing.T) {
	combo, err := NewCombo("5A > 5B", "   ", "https://youtu.be/abc123defgh")
	if err != nil {
		t.Fatalf("NewCombo failed: %v", err)
	}
	if combo.Notes != NoNotesProvided {
		t.Errorf("expected sentinel notes, got %q", combo.Notes)
	}
	if combo.HasNotes() {
		t.Error("sentinel notes should not count as real notes")
	}
}

func TestNewComboRejectsBlankNotation(t *testing.T) {
	if _, err := NewCombo("  ", "notes", "https://youtu.be/abc123defgh"); err == nil {
		t.Fatal("expected validation error for blank notation")
	}
}

func TestNewPlayerRejectsBadSocialLink(t *testing.T) {
	if _, err := NewPlayer("Daru", "\U0001F1EF\U0001F1F5", "not a url", "", nil, ""); err == nil {
		t.Fatal("expected validation error for malformed social link")
	}
}

func TestPlayerSocialPlatform(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://twitter.com/daru_i_b", "Twitter/X"},
		{"https://x.com/daru_i_b", "Twitter/X"},
		{"https://www.youtube.com/@someone", "YouTube"},
		{"https://www.twitch.tv/someone", "Twitch"},
		{"https://example.com/profile", "Social Media"},
	}
	for _, tc := range cases {
		p := Player{SocialLink: tc.link}
		if got := p.SocialPlatform(); got != tc.want {
			t.Errorf("SocialPlatform(%q) = %q, want %q", tc.link, got, tc.want)
		}
	}
}

func TestConfigurationFromDocumentDefaults(t *testing.T) {
	cfg, err := ConfigurationFromDocument(nil)
	if err != nil {
		t.Fatalf("ConfigurationFromDocument failed: %v", err)
	}
	if cfg.CharacterName != "Character" {
		t.Errorf("default character name = %q", cfg.CharacterName)
	}
	if len(cfg.ComboCategories) != 2 || cfg.ComboCategories[0] != "Midscreen" || cfg.ComboCategories[1] != "Corner" {
		t.Errorf("default categories = %v", cfg.ComboCategories)
	}
	for _, category := range cfg.ComboCategories {
		if _, ok := cfg.Starters[category]; !ok {
			t.Errorf("category %q missing a starters entry", category)
		}
	}
	if cfg.PageSizes != (PageSizes{Starters: 10, Combos: 5, Players: 5, Resources: 10}) {
		t.Errorf("default page sizes = %+v", cfg.PageSizes)
	}
	if cfg.ViewTimeoutSeconds != 180 {
		t.Errorf("default view timeout = %v", cfg.ViewTimeoutSeconds)
	}
}

func TestConfigurationFromDocumentDropsUnknownKeys(t *testing.T) {
	raw := json.RawMessage(`{
		"character_name": "Jack-O",
		"page_size_combos": 8,
		"legacy_field": "should vanish"
	}`)
	cfg, err := ConfigurationFromDocument(raw)
	if err != nil {
		t.Fatalf("ConfigurationFromDocument failed: %v", err)
	}
	if cfg.CharacterName != "Jack-O" {
		t.Errorf("character name = %q", cfg.CharacterName)
	}
	if cfg.PageSizes.Combos != 8 {
		t.Errorf("combos page size = %d", cfg.PageSizes.Combos)
	}
	if cfg.PageSizes.Starters != 10 {
		t.Errorf("missing page size should keep default, got %d", cfg.PageSizes.Starters)
	}

	doc, err := cfg.ToDocument()
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	var round map[string]json.RawMessage
	if err := json.Unmarshal(doc, &round); err != nil {
		t.Fatalf("round-trip unmarshal failed: %v", err)
	}
	if _, ok := round["legacy_field"]; ok {
		t.Error("unknown key survived the round trip")
	}
	for _, key := range []string{"page_size_starters", "page_size_combos", "page_size_players", "page_size_resources"} {
		if _, ok := round[key]; !ok {
			t.Errorf("flattened key %q missing from document", key)
		}
	}
}

func TestConfigurationReconcileAddsOrphans(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Starters["Throw"] = []string{"6D"}
	cfg.Reconcile()
	if !cfg.HasCategory("Throw") {
		t.Error("orphan starter key was not added to the category list")
	}
	if _, ok := cfg.Starters["Midscreen"]; !ok {
		t.Error("known category lost its starters entry")
	}
}

func TestEmbedColor(t *testing.T) {
	cases := []struct {
		hex  string
		want int
	}{
		{"0x7289DA", 0x7289DA},
		{"#FF0000", 0xFF0000},
		{"ABCDEF", 0xABCDEF},
		{"not-a-color", DefaultEmbedColor},
		{"", DefaultEmbedColor},
	}
	for _, tc := range cases {
		cfg := Configuration{MainEmbedColorHex: tc.hex}
		if got := cfg.EmbedColor(); got != tc.want {
			t.Errorf("EmbedColor(%q) = %#x, want %#x", tc.hex, got, tc.want)
		}
	}
}

func TestConfigurationCloneIsDeep(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Starters["Midscreen"] = []string{"5K"}
	cfg.NotablePlayers = []Player{{Name: "Daru", DescriptionLines: []string{"line"}}}

	clone := cfg.Clone()
	clone.Starters["Midscreen"][0] = "changed"
	clone.ComboCategories[0] = "changed"
	clone.NotablePlayers[0].DescriptionLines[0] = "changed"

	if cfg.Starters["Midscreen"][0] == "changed" {
		t.Error("clone shares starters backing array")
	}
	if cfg.ComboCategories[0] == "changed" {
		t.Error("clone shares category backing array")
	}
	if cfg.NotablePlayers[0].DescriptionLines[0] == "changed" {
		t.Error("clone shares player description backing array")
	}
}

func TestFindPlayerCaseInsensitive(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.NotablePlayers = []Player{{Name: "Daru"}}
	if _, ok := cfg.FindPlayer("dArU"); !ok {
		t.Error("expected case-insensitive player lookup to match")
	}
	if _, ok := cfg.FindPlayer("nobody"); ok {
		t.Error("unexpected match for unknown player")
	}
}
