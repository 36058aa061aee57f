package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/kapu/combot-go/internal/constants"
	"github.com/kapu/combot-go/internal/domain"
)

// playlistIDPattern matches a bare playlist ID: an optional well-known
// prefix followed by at least ten ID characters.
var playlistIDPattern = regexp.MustCompile(`^(PL|UU|FL|OL|RD)?[a-zA-Z0-9_-]{10,}$`)

var (
	notationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)notation:\s*(.+)`),
		regexp.MustCompile(`(?im)combo:\s*(.+)`),
		regexp.MustCompile(`(?im)inputs?:\s*(.+)`),
	}
	notesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)notes?:\s*(.+)`),
		regexp.MustCompile(`(?im)tips?:\s*(.+)`),
		regexp.MustCompile(`(?im)comments?:\s*(.+)`),
	}
	playlistNotePattern = regexp.MustCompile(`(?im)note:\s*(.+)`)
)

var playlistHosts = map[string]bool{
	"www.youtube.com": true,
	"youtube.com":     true,
	"m.youtube.com":   true,
}

// ResolvePlaylistID extracts a playlist ID from a YouTube URL or validates a
// bare ID. Accepts /playlist?list=... URLs, /watch URLs carrying a list
// parameter, and raw IDs.
func ResolvePlaylistID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if parsed, err := url.Parse(input); err == nil && playlistHosts[parsed.Hostname()] {
		if parsed.Path == "/playlist" || strings.HasPrefix(parsed.Path, "/watch") {
			if id := parsed.Query().Get("list"); id != "" {
				return id, true
			}
		}
		return "", false
	}

	if playlistIDPattern.MatchString(input) {
		return input, true
	}
	return "", false
}

// parseVideoDescription scans a video description for the labeled notation
// and notes lines. Only the first line after each label counts; missing
// fields fall back to the domain sentinels.
func parseVideoDescription(description string) (notation, notes string) {
	notation = domain.UnknownNotation
	notes = domain.NoNotesProvided
	if description == "" {
		return notation, notes
	}

	for _, pattern := range notationPatterns {
		if found := firstLineMatch(pattern, description); found != "" {
			// Normalize common separators into the house arrow style.
			notation = strings.ReplaceAll(found, ",", " >")
			notation = strings.ReplaceAll(notation, "->", " >")
			break
		}
	}
	for _, pattern := range notesPatterns {
		if found := firstLineMatch(pattern, description); found != "" {
			notes = found
			break
		}
	}

	return truncate(notation, constants.Playlist.MaxNotation), truncate(notes, constants.Playlist.MaxNotes)
}

// parsePlaylistNote derives the overall playlist note from its description:
// a labeled Note: line wins, then a short first line, then a fixed fallback.
func parsePlaylistNote(description string) string {
	const fallback = "No overall notes provided."
	if description == "" {
		return fallback
	}

	if found := firstLineMatch(playlistNotePattern, description); found != "" {
		return found
	}

	firstLine := strings.TrimSpace(strings.SplitN(description, "\n", 2)[0])
	if firstLine != "" && len(firstLine) <= constants.Playlist.MaxNoteLine {
		return firstLine
	}
	return fallback
}

// firstLineMatch returns the trimmed first line of the pattern's capture
// group, or empty when the pattern does not match.
func firstLineMatch(pattern *regexp.Regexp, text string) string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	captured := strings.SplitN(match[1], "\n", 2)[0]
	return strings.TrimSpace(captured)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
