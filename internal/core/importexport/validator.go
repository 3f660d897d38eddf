package importexport

import (
	"fmt"

	"github.com/goldbarth/arcflow/internal/core/types"
)

// CheckSchemaVersion rejects an envelope newer than SchemaVersion, per
// spec.md §4.5 step 2.
func CheckSchemaVersion(env types.Envelope) *types.ImportError {
	if env.SchemaVersion > SchemaVersion {
		return &types.ImportError{
			Kind:    types.ImportErrUnsupportedSchema,
			Message: fmt.Sprintf("schema version %d is newer than supported version %d", env.SchemaVersion, SchemaVersion),
		}
	}
	return nil
}

// Validate checks content rules from spec.md §4.5 step 3: every
// playlist.name non-empty; every video.youTubeId and video.title
// non-empty; positions non-negative integers.
func Validate(env types.Envelope) *types.ImportError {
	for pi, p := range env.Playlists {
		if p.Name == "" {
			return &types.ImportError{
				Kind:    types.ImportErrValidation,
				Field:   fmt.Sprintf("playlists[%d].name", pi),
				Message: "playlist name must not be empty",
			}
		}
		for vi, v := range p.Videos {
			if v.YouTubeID == "" {
				return &types.ImportError{
					Kind:    types.ImportErrValidation,
					Field:   fmt.Sprintf("playlists[%d].videos[%d].youTubeId", pi, vi),
					Message: "video youTubeId must not be empty",
				}
			}
			if v.Title == "" {
				return &types.ImportError{
					Kind:    types.ImportErrValidation,
					Field:   fmt.Sprintf("playlists[%d].videos[%d].title", pi, vi),
					Message: "video title must not be empty",
				}
			}
			if v.Position < 0 {
				return &types.ImportError{
					Kind:    types.ImportErrValidation,
					Field:   fmt.Sprintf("playlists[%d].videos[%d].position", pi, vi),
					Message: "video position must be a non-negative integer",
				}
			}
		}
	}
	return nil
}

// CheckIDCollisions rejects an envelope whose playlist or video ids repeat
// within the envelope, per spec.md §4.5 step 4 (mode is ReplaceAll, so
// pre-existing database ids are irrelevant once erased).
func CheckIDCollisions(env types.Envelope) *types.ImportError {
	seen := make(map[string]bool)
	for _, p := range env.Playlists {
		if p.ID != "" {
			if seen[p.ID] {
				return &types.ImportError{Kind: types.ImportErrIDCollision, Field: "playlists[].id", Message: "duplicate playlist id: " + p.ID}
			}
			seen[p.ID] = true
		}
		for _, v := range p.Videos {
			if v.ID == "" {
				continue
			}
			if seen[v.ID] {
				return &types.ImportError{Kind: types.ImportErrIDCollision, Field: "videos[].id", Message: "duplicate video id: " + v.ID}
			}
			seen[v.ID] = true
		}
	}
	return nil
}
