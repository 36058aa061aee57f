// Package youtube fetches playlist metadata and videos from the YouTube
// Data API v3 and parses combo fields out of video descriptions.
package youtube

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/kapu/combot-go/internal/constants"
	"github.com/kapu/combot-go/internal/service/cache"
	"github.com/kapu/combot-go/pkg/errors"
)

// Video is one playable playlist entry with its parsed combo fields.
type Video struct {
	Title    string `json:"title"`
	Notation string `json:"notation"`
	Notes    string `json:"notes"`
	Link     string `json:"link"`
}

// Playlist is the fetched playlist: its title, the overall note parsed from
// the playlist description, and the surviving videos in playlist order.
type Playlist struct {
	Title  string  `json:"title"`
	Note   string  `json:"note"`
	Videos []Video `json:"videos"`
}

type Service struct {
	api    *youtubeapi.Service
	cache  *cache.Service
	logger *zap.Logger
}

// NewService builds the YouTube client. The cache may be nil, in which case
// every fetch hits the API.
func NewService(ctx context.Context, apiKey string, cacheSvc *cache.Service, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, errors.NewValidationError("YouTube API key is required", "api_key", "")
	}

	api, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.NewPlaylistError("failed to create YouTube client", errors.PlaylistTransient, "", err)
	}

	logger.Info("YouTube service initialized", zap.Bool("cache", cacheSvc != nil))
	return &Service{api: api, cache: cacheSvc, logger: logger}, nil
}

func cacheKey(playlistID string) string {
	return "combot:playlist:" + playlistID
}

// FetchPlaylist loads a playlist's metadata and its videos, consulting the
// cache first. Deleted and private videos are dropped; the remaining list is
// capped to keep one ingestion from draining the API quota.
func (s *Service) FetchPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if playlistID == "" {
		return nil, errors.NewValidationError("playlist ID cannot be empty", "playlist_id", "")
	}

	var cached Playlist
	if hit, err := s.cache.Get(ctx, cacheKey(playlistID), &cached); err == nil && hit {
		s.logger.Debug("playlist cache hit", zap.String("playlistId", playlistID))
		return &cached, nil
	}

	s.logger.Info("fetching playlist", zap.String("playlistId", playlistID))

	meta, err := s.api.Playlists.List([]string{"snippet", "status"}).
		Id(playlistID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapAPIError(err, playlistID)
	}
	if len(meta.Items) == 0 {
		return nil, errors.NewPlaylistError("playlist not found or is private", errors.PlaylistNotFound, playlistID, nil)
	}

	item := meta.Items[0]
	if item.Status != nil && item.Status.PrivacyStatus == "private" {
		return nil, errors.NewPlaylistError("playlist is private", errors.PlaylistForbidden, playlistID, nil)
	}

	playlist := &Playlist{
		Title: item.Snippet.Title,
		Note:  parsePlaylistNote(item.Snippet.Description),
	}

	videos, err := s.fetchVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos

	s.logger.Info("playlist fetched",
		zap.String("playlistId", playlistID),
		zap.String("title", playlist.Title),
		zap.Int("videos", len(videos)))

	if err := s.cache.Set(ctx, cacheKey(playlistID), playlist, constants.Playlist.CacheTTL); err != nil {
		s.logger.Warn("failed to cache playlist", zap.String("playlistId", playlistID), zap.Error(err))
	}
	return playlist, nil
}

// fetchVideos pages through the playlist items up to the ingestion cap.
func (s *Service) fetchVideos(ctx context.Context, playlistID string) ([]Video, error) {
	videos := make([]Video, 0, constants.Playlist.PageSize)
	pageToken := ""

	for len(videos) < constants.Playlist.MaxItems {
		remaining := int64(constants.Playlist.MaxItems - len(videos))
		if remaining > constants.Playlist.PageSize {
			remaining = constants.Playlist.PageSize
		}

		call := s.api.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(remaining).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, mapAPIError(err, playlistID)
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, item := range resp.Items {
			if video, ok := processItem(item); ok {
				videos = append(videos, video)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return videos, nil
}

// processItem turns one playlist item into a Video, dropping entries without
// a video ID and placeholders for deleted or private videos.
func processItem(item *youtubeapi.PlaylistItem) (Video, bool) {
	if item.Snippet == nil || item.Snippet.ResourceId == nil {
		return Video{}, false
	}
	videoID := item.Snippet.ResourceId.VideoId
	if videoID == "" {
		return Video{}, false
	}

	title := item.Snippet.Title
	if title == "Deleted video" || title == "Private video" {
		return Video{}, false
	}
	if title == "" {
		title = "Untitled Video"
	}

	notation, notes := parseVideoDescription(item.Snippet.Description)
	return Video{
		Title:    title,
		Notation: notation,
		Notes:    notes,
		Link:     "https://youtu.be/" + videoID,
	}, true
}

// mapAPIError translates googleapi failures into playlist errors the
// frontend can phrase for the user.
func mapAPIError(err error, playlistID string) error {
	apiErr, ok := err.(*googleapi.Error)
	if !ok {
		return errors.NewPlaylistError("failed to fetch playlist", errors.PlaylistTransient, playlistID, err)
	}

	switch apiErr.Code {
	case 400, 404:
		return errors.NewPlaylistError("playlist not found", errors.PlaylistNotFound, playlistID, err)
	case 403:
		for _, item := range apiErr.Errors {
			if item.Reason == "quotaExceeded" || item.Reason == "dailyLimitExceeded" {
				return errors.NewPlaylistError("YouTube API quota exceeded", errors.PlaylistQuotaExceeded, playlistID, err)
			}
		}
		if strings.Contains(apiErr.Message, "quota") {
			return errors.NewPlaylistError("YouTube API quota exceeded", errors.PlaylistQuotaExceeded, playlistID, err)
		}
		return errors.NewPlaylistError("access to playlist is forbidden", errors.PlaylistForbidden, playlistID, err)
	case 500, 503:
		return errors.NewPlaylistError("YouTube API is temporarily unavailable", errors.PlaylistTransient, playlistID, err)
	default:
		return errors.NewPlaylistError("YouTube API request failed", errors.PlaylistTransient, playlistID, err)
	}
}
