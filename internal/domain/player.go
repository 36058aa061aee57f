package domain

import (
	"strings"

	"github.com/kapu/combot-go/internal/util"
	"github.com/kapu/combot-go/pkg/errors"
)

type Player struct {
	Name             string   `json:"name"`
	RegionEmoji      string   `json:"region_emoji"`
	SocialLink       string   `json:"social_link"`
	ImageURL         string   `json:"image_url"`
	DescriptionLines []string `json:"description_lines"`
	ColorFooter      string   `json:"color_footer"`
}

// NewPlayer validates and constructs a notable-player entry. The social link
// must be a syntactically valid URL since it is rendered as the embed link.
func NewPlayer(name, regionEmoji, socialLink, imageURL string, descriptionLines []string, colorFooter string) (Player, error) {
	if strings.TrimSpace(name) == "" {
		return Player{}, errors.NewValidationError("player name cannot be empty", "name", name)
	}
	if strings.TrimSpace(socialLink) == "" {
		return Player{}, errors.NewValidationError("player social link cannot be empty", "social_link", socialLink)
	}
	if !util.ValidateURL(socialLink) {
		return Player{}, errors.NewValidationError("player social link must be a valid URL", "social_link", socialLink)
	}
	if descriptionLines == nil {
		descriptionLines = []string{}
	}
	return Player{
		Name:             name,
		RegionEmoji:      regionEmoji,
		SocialLink:       socialLink,
		ImageURL:         imageURL,
		DescriptionLines: descriptionLines,
		ColorFooter:      colorFooter,
	}, nil
}

// SocialPlatform derives a display label from the social link's host.
func (p Player) SocialPlatform() string {
	link := strings.ToLower(p.SocialLink)
	switch {
	case strings.Contains(link, "twitter.com"), strings.Contains(link, "x.com"):
		return "Twitter/X"
	case strings.Contains(link, "youtube.com"):
		return "YouTube"
	case strings.Contains(link, "twitch.tv"):
		return "Twitch"
	case strings.Contains(link, "instagram.com"):
		return "Instagram"
	default:
		return "Social Media"
	}
}
