// Package ingest turns fetched playlists into stored combo sets.
package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/domain"
	"github.com/kapu/combot-go/internal/service/youtube"
)

// PlaylistProvider is the slice of the YouTube service the ingester needs.
type PlaylistProvider interface {
	FetchPlaylist(ctx context.Context, playlistID string) (*youtube.Playlist, error)
}

// Result summarizes one ingestion run.
type Result struct {
	PlaylistTitle string
	Note          string
	Imported      int
	Skipped       int
}

// ComboSink is the slice of the store the ingester writes through.
type ComboSink interface {
	UpdateCombos(category, starter string, combos []domain.Combo, note string)
	Save(force bool) error
}

type Ingester struct {
	provider PlaylistProvider
	sink     ComboSink
	logger   *zap.Logger
}

func New(provider PlaylistProvider, sink ComboSink, logger *zap.Logger) *Ingester {
	return &Ingester{provider: provider, sink: sink, logger: logger}
}

// Run fetches the playlist and replaces the combo set for the given
// category/starter pair. Videos that fail combo validation are skipped with
// a warning rather than aborting the run, and the result is flushed to disk
// immediately since ingestion is an explicit admin action.
func (i *Ingester) Run(ctx context.Context, category, starter, playlistID string) (*Result, error) {
	playlist, err := i.provider.FetchPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	combos := make([]domain.Combo, 0, len(playlist.Videos))
	skipped := 0
	for _, video := range playlist.Videos {
		combo, err := domain.NewCombo(video.Notation, video.Notes, video.Link)
		if err != nil {
			skipped++
			i.logger.Warn("skipping unmappable video",
				zap.String("title", video.Title),
				zap.Error(err))
			continue
		}
		combos = append(combos, combo)
	}

	i.sink.UpdateCombos(category, starter, combos, playlist.Note)
	if err := i.sink.Save(true); err != nil {
		return nil, err
	}

	i.logger.Info("playlist ingested",
		zap.String("category", category),
		zap.String("starter", starter),
		zap.String("playlist", playlist.Title),
		zap.Int("imported", len(combos)),
		zap.Int("skipped", skipped))

	return &Result{
		PlaylistTitle: playlist.Title,
		Note:          playlist.Note,
		Imported:      len(combos),
		Skipped:       skipped,
	}, nil
}
