package effects

import "github.com/goldbarth/arcflow/internal/core/types"

// handlePersist runs persistence for both ImportApplied and
// PersistRequested, spec.md §4.6: a no-op if not dirty; otherwise snapshot
// the loaded entity tree and replace the durable catalog wholesale.
func (c Collaborators) handlePersist(getState func() types.RootState, dispatch func(types.Action)) {
	state := getState()
	if !state.Persistence.IsDirty {
		return
	}
	if !isPlaylistsReady(state.Playlists.Kind) {
		return
	}
	if err := c.Playlists.ReplaceAllPlaylists(state.Playlists.Playlists); err != nil {
		dispatch(types.PersistFailed{Message: err.Error()})
		return
	}
	dispatch(types.PersistSucceeded{})
}
