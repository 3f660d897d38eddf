package importexport

import (
	"encoding/json"
	"fmt"

	"github.com/goldbarth/arcflow/internal/core/types"
)

// Serialize renders an Envelope as pretty-printed, lower-camel-case JSON.
func Serialize(env types.Envelope) ([]byte, error) {
	w := wireEnvelope{
		SchemaVersion:      env.SchemaVersion,
		ExportedAtUTC:      env.ExportedAtUTC,
		SelectedPlaylistID: env.SelectedPlaylistID,
	}
	for _, p := range env.Playlists {
		wp := wirePlaylist{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			CreatedAtUTC: p.CreatedAtUTC,
			UpdatedAtUTC: p.UpdatedAtUTC,
		}
		for _, v := range p.Videos {
			wp.Videos = append(wp.Videos, wireVideo{
				ID:           v.ID,
				YouTubeID:    v.YouTubeID,
				Title:        v.Title,
				ThumbnailURL: v.ThumbnailURL,
				DurationSec:  v.DurationSec,
				Position:     v.Position,
				AddedAtUTC:   v.AddedAtUTC,
			})
		}
		w.Playlists = append(w.Playlists, wp)
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize envelope: %w", err)
	}
	return data, nil
}

// Deserialize parses JSON text into an Envelope. Unknown fields are
// ignored, matching spec.md §4.5.
func Deserialize(data []byte) (types.Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return types.Envelope{}, fmt.Errorf("parse envelope: %w", err)
	}
	env := types.Envelope{
		SchemaVersion:      w.SchemaVersion,
		ExportedAtUTC:      w.ExportedAtUTC,
		SelectedPlaylistID: w.SelectedPlaylistID,
	}
	for _, wp := range w.Playlists {
		p := types.PlaylistDTO{
			ID:           wp.ID,
			Name:         wp.Name,
			Description:  wp.Description,
			CreatedAtUTC: wp.CreatedAtUTC,
			UpdatedAtUTC: wp.UpdatedAtUTC,
		}
		for _, wv := range wp.Videos {
			p.Videos = append(p.Videos, types.VideoDTO{
				ID:           wv.ID,
				YouTubeID:    wv.YouTubeID,
				Title:        wv.Title,
				ThumbnailURL: wv.ThumbnailURL,
				DurationSec:  wv.DurationSec,
				Position:     wv.Position,
				AddedAtUTC:   wv.AddedAtUTC,
			})
		}
		env.Playlists = append(env.Playlists, p)
	}
	return env, nil
}
