// Package playlistservice is the PlaylistService collaborator interface
// from spec.md §6, plus a bbolt-backed implementation repurposing the
// teacher's cache.go (same storage engine, now the authoritative catalog
// rather than a read-through API cache).
package playlistservice

import "github.com/goldbarth/arcflow/internal/core/types"

// Service is the narrow interface the core consumes. Any failure should be
// categorized by the caller (effects package) into an OperationError.
type Service interface {
	GetAll() ([]types.Playlist, error)
	GetByID(id string) (*types.Playlist, error)
	Create(p types.Playlist) error
	Update(p types.Playlist) error
	Delete(id string) error
	AddVideoToPlaylist(playlistID string, v types.VideoItem) error
	RemoveVideoFromPlaylist(playlistID, videoID string) error
	UpdateVideoPositions(playlistID string, videos []types.VideoItem) error
	ReplaceAllPlaylists(playlists []types.Playlist) error
}
