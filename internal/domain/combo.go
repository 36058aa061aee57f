package domain

import (
	"strings"

	"github.com/kapu/combot-go/pkg/errors"
)

// Sentinel values used when a video description carries no parseable fields.
const (
	UnknownNotation = "Unknown Notation"
	NoNotesProvided = "No Notes Provided"
)

type Combo struct {
	Notation string `json:"notation"`
	Notes    string `json:"notes"`
	Link     string `json:"link"`
}

// NewCombo validates and constructs a combo entry. Notation and link must be
// non-blank; empty notes collapse to the NoNotesProvided sentinel.
func NewCombo(notation, notes, link string) (Combo, error) {
	if strings.TrimSpace(notation) == "" {
		return Combo{}, errors.NewValidationError("combo notation cannot be empty", "notation", notation)
	}
	if strings.TrimSpace(link) == "" {
		return Combo{}, errors.NewValidationError("combo link cannot be empty", "link", link)
	}
	if strings.TrimSpace(notes) == "" {
		notes = NoNotesProvided
	}
	return Combo{Notation: notation, Notes: notes, Link: link}, nil
}

// HasNotes reports whether the combo carries real notes rather than the
// sentinel.
func (c Combo) HasNotes() bool {
	return strings.TrimSpace(c.Notes) != "" && c.Notes != NoNotesProvided
}
