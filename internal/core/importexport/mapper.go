package importexport

import (
	"time"

	"github.com/goldbarth/arcflow/internal/core/types"
)

// ToEnvelope maps domain entities into the schema-v1 DTO tree, videos
// ordered by position, per spec.md §4.5's export pipeline step 1.
func ToEnvelope(playlists []types.Playlist, selectedPlaylistID *string, exportedAt time.Time) types.Envelope {
	dtos := make([]types.PlaylistDTO, 0, len(playlists))
	for _, p := range playlists {
		videos := append([]types.VideoItem{}, p.Videos...)
		sortByPosition(videos)
		vdtos := make([]types.VideoDTO, 0, len(videos))
		for _, v := range videos {
			vdtos = append(vdtos, videoToDTO(v))
		}
		dtos = append(dtos, types.PlaylistDTO{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			CreatedAtUTC: p.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAtUTC: p.UpdatedAt.UTC().Format(time.RFC3339),
			Videos:       vdtos,
		})
	}
	return types.Envelope{
		SchemaVersion:      SchemaVersion,
		ExportedAtUTC:      exportedAt.UTC().Format(time.RFC3339),
		Playlists:          dtos,
		SelectedPlaylistID: selectedPlaylistID,
	}
}

func videoToDTO(v types.VideoItem) types.VideoDTO {
	var dur *int
	if v.Duration > 0 {
		s := int(v.Duration.Seconds())
		dur = &s
	}
	return types.VideoDTO{
		ID:           v.ID,
		YouTubeID:    v.YoutubeID,
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		DurationSec:  dur,
		Position:     v.Position,
		AddedAtUTC:   v.AddedAt.UTC().Format(time.RFC3339),
	}
}

func sortByPosition(videos []types.VideoItem) {
	for i := 1; i < len(videos); i++ {
		for j := i; j > 0 && videos[j].Position < videos[j-1].Position; j-- {
			videos[j], videos[j-1] = videos[j-1], videos[j]
		}
	}
}

// FromEnvelope converts a validated envelope into domain entities, per
// spec.md §4.5's import pipeline step 5. Timestamps that fail to parse
// fall back to the zero time rather than failing the whole import, since
// validation (not parsing) is the gate for import acceptance.
func FromEnvelope(env types.Envelope) []types.Playlist {
	out := make([]types.Playlist, 0, len(env.Playlists))
	for _, p := range env.Playlists {
		videos := make([]types.VideoItem, 0, len(p.Videos))
		for _, v := range p.Videos {
			videos = append(videos, types.VideoItem{
				ID:           v.ID,
				YoutubeID:    v.YouTubeID,
				Title:        v.Title,
				ThumbnailURL: v.ThumbnailURL,
				Duration:     durationFromDTO(v.DurationSec),
				AddedAt:      parseTimeOrZero(v.AddedAtUTC),
				Position:     v.Position,
				PlaylistID:   p.ID,
			})
		}
		out = append(out, types.Playlist{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   parseTimeOrZero(p.CreatedAtUTC),
			UpdatedAt:   parseTimeOrZero(p.UpdatedAtUTC),
			Videos:      videos,
		})
	}
	return out
}

func durationFromDTO(sec *int) time.Duration {
	if sec == nil {
		return 0
	}
	return time.Duration(*sec) * time.Second
}

func parseTimeOrZero(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
