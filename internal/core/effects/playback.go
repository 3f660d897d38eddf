package effects

import "github.com/goldbarth/arcflow/internal/core/types"

// handleLoadCurrent asks the player collaborator to load whatever video the
// reducer just put into Player.Loading, per spec.md §4.6's row for
// SelectVideo/NextRequested/PrevRequested. If the reducer left Player in
// any other kind (a rejected or no-op navigation), there is nothing to load.
func (c Collaborators) handleLoadCurrent(getState func() types.RootState) {
	player := getState().Player
	if player.Kind != types.PlayerLoading {
		return
	}
	if err := c.Player.Load(player.VideoID, player.Autoplay); err != nil {
		c.Log.Warn().Err(err).Str("videoId", player.VideoID).Msg("player load failed")
	}
}

// handleSortChanged persists the current playlist's reordered positions.
func (c Collaborators) handleSortChanged(getState func() types.RootState, dispatch func(types.Action)) {
	q := getState().Queue
	if q.SelectedPlaylistID == nil {
		return
	}
	if err := c.Playlists.UpdateVideoPositions(*q.SelectedPlaylistID, q.Videos); err != nil {
		dispatch(operationFailed(types.CategoryTransient, "SortChanged", "failed to persist reordered positions", types.OperationContext{PlaylistID: *q.SelectedPlaylistID}, err))
	}
}
