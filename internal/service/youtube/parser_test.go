package youtube

import (
	"strings"
	"testing"

	"github.com/kapu/combot-go/internal/domain"
)

func TestResolvePlaylistID(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"https://www.youtube.com/playlist?list=PLabc123def456", "PLabc123def456", true},
		{"https://youtube.com/playlist?list=PLabc123def456", "PLabc123def456", true},
		{"https://m.youtube.com/playlist?list=PLabc123def456", "PLabc123def456", true},
		{"https://www.youtube.com/watch?v=xyz&list=PLabc123def456", "PLabc123def456", true},
		{"PLabc123def456", "PLabc123def456", true},
		{"RDabc123def456", "RDabc123def456", true},
		{"abc123def456xyz", "abc123def456xyz", true}, // prefix is optional
		{"https://www.youtube.com/watch?v=xyz", "", false},
		{"https://vimeo.com/playlist?list=PLabc123def456", "", false},
		{"short", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolvePlaylistID(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ResolvePlaylistID(%q) = (%q, %v), want (%q, %v)",
				tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseVideoDescriptionLabels(t *testing.T) {
	description := "Some intro text\nNotation: 5A,5B,2C\nNotes: works midscreen only\nExtra line"
	notation, notes := parseVideoDescription(description)
	if notation != "5A >5B >2C" {
		t.Errorf("notation = %q", notation)
	}
	if notes != "works midscreen only" {
		t.Errorf("notes = %q", notes)
	}
}

func TestParseVideoDescriptionAlternateLabels(t *testing.T) {
	cases := []struct {
		description  string
		wantNotation string
		wantNotes    string
	}{
		{"Combo: 2D->236K", "2D >236K", domain.NoNotesProvided},
		{"Input: 5K 2D", "5K 2D", domain.NoNotesProvided},
		{"INPUTS: 5K 2D", "5K 2D", domain.NoNotesProvided},
		{"Tip: delay the second hit", domain.UnknownNotation, "delay the second hit"},
		{"Comment: corner only", domain.UnknownNotation, "corner only"},
		{"nothing labeled here", domain.UnknownNotation, domain.NoNotesProvided},
		{"", domain.UnknownNotation, domain.NoNotesProvided},
	}
	for _, tc := range cases {
		notation, notes := parseVideoDescription(tc.description)
		if notation != tc.wantNotation || notes != tc.wantNotes {
			t.Errorf("parseVideoDescription(%q) = (%q, %q), want (%q, %q)",
				tc.description, notation, notes, tc.wantNotation, tc.wantNotes)
		}
	}
}

func TestParseVideoDescriptionFirstLineOnly(t *testing.T) {
	notation, _ := parseVideoDescription("Notation: 5K > 2D\ncontinued on next line")
	if notation != "5K > 2D" {
		t.Errorf("notation should stop at the first line, got %q", notation)
	}
}

func TestParseVideoDescriptionCaps(t *testing.T) {
	long := strings.Repeat("x", 600)
	notation, notes := parseVideoDescription("Notation: " + long + "\nNotes: " + long)
	if len(notation) != 500 {
		t.Errorf("notation length = %d, want 500", len(notation))
	}
	if len(notes) != 300 {
		t.Errorf("notes length = %d, want 300", len(notes))
	}
}

func TestParsePlaylistNote(t *testing.T) {
	cases := []struct {
		description string
		want        string
	}{
		{"Note: all combos are meterless\nmore text", "all combos are meterless"},
		{"note: lowercase label works", "lowercase label works"},
		{"Short first line\nsecond line", "Short first line"},
		{strings.Repeat("x", 250) + "\nsecond", "No overall notes provided."},
		{"", "No overall notes provided."},
	}
	for _, tc := range cases {
		if got := parsePlaylistNote(tc.description); got != tc.want {
			t.Errorf("parsePlaylistNote(%.30q...) = %q, want %q", tc.description, got, tc.want)
		}
	}
}
