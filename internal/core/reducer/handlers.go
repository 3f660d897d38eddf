package reducer

import (
	"sort"
	"time"

	"github.com/goldbarth/arcflow/internal/core/playback"
	"github.com/goldbarth/arcflow/internal/core/types"
)

func handleInitialize(state types.RootState) types.RootState {
	state.Playlists = types.NewPlaylistsLoading()
	return state
}

func handleSelectPlaylist(state types.RootState, a types.SelectPlaylist) types.RootState {
	if state.Queue.SelectedPlaylistID != nil && *state.Queue.SelectedPlaylistID == a.PlaylistID {
		return state
	}
	id := a.PlaylistID
	state.Queue = types.QueueState{
		SelectedPlaylistID: &id,
		RepeatMode:         state.Queue.RepeatMode,
		ShuffleEnabled:     state.Queue.ShuffleEnabled,
		ShuffleSeed:        state.Queue.ShuffleSeed,
	}
	state.Player = types.NewPlayerEmpty()
	return state
}

func handlePlaylistsLoaded(state types.RootState, a types.PlaylistsLoaded) types.RootState {
	state.Playlists = types.NewPlaylistsResult(a.Playlists)
	return state
}

func handlePlaylistLoaded(state types.RootState, a types.PlaylistLoaded) types.RootState {
	videos := append([]types.VideoItem{}, a.Playlist.Videos...)
	sort.Slice(videos, func(i, j int) bool { return videos[i].Position < videos[j].Position })
	id := a.Playlist.ID
	state.Queue = types.QueueState{
		SelectedPlaylistID: &id,
		Videos:             videos,
		RepeatMode:         state.Queue.RepeatMode,
		ShuffleEnabled:     state.Queue.ShuffleEnabled,
		ShuffleSeed:        state.Queue.ShuffleSeed,
	}
	return state
}

func handleSelectVideo(state types.RootState, a types.SelectVideo) types.RootState {
	q := state.Queue
	if a.Index < 0 || a.Index >= len(q.Videos) {
		return state
	}
	if q.CurrentIndex != nil && *q.CurrentIndex == a.Index {
		return state
	}
	if q.ShuffleEnabled && q.CurrentItemID != nil {
		history := append(append([]string{}, q.PlaybackHistory...), *q.CurrentItemID)
		if len(history) > types.PlaybackHistoryCap {
			history = history[len(history)-types.PlaybackHistoryCap:]
		}
		q.PlaybackHistory = history
	}
	idx := a.Index
	video := q.Videos[idx]
	q.CurrentIndex = &idx
	id := video.ID
	q.CurrentItemID = &id
	state.Queue = q
	state.Player = types.NewPlayerLoading(video.YoutubeID, a.Autoplay)
	return state
}

func handleSortChanged(state types.RootState, a types.SortChanged) types.RootState {
	q := state.Queue
	n := len(q.Videos)
	if a.OldIndex < 0 || a.OldIndex >= n || a.NewIndex < 0 || a.NewIndex >= n || a.OldIndex == a.NewIndex {
		return state
	}
	videos := append([]types.VideoItem{}, q.Videos...)
	moved := videos[a.OldIndex]
	videos = append(videos[:a.OldIndex], videos[a.OldIndex+1:]...)
	tail := append([]types.VideoItem{moved}, videos[a.NewIndex:]...)
	videos = append(videos[:a.NewIndex], tail...)
	for i := range videos {
		videos[i] = videos[i].WithPosition(i)
	}
	q.Videos = videos

	if q.CurrentIndex != nil {
		cur := *q.CurrentIndex
		var newCur int
		switch {
		case cur == a.OldIndex:
			newCur = a.NewIndex
		case a.OldIndex < cur && cur <= a.NewIndex:
			newCur = cur - 1
		case a.NewIndex <= cur && cur < a.OldIndex:
			newCur = cur + 1
		default:
			newCur = cur
		}
		q.CurrentIndex = &newCur
	}
	state.Queue = q
	return state
}

func handlePlayerStateChanged(state types.RootState, a types.PlayerStateChanged) types.RootState {
	if a.YTStateCode == -1 {
		return state
	}
	if state.Player.Kind != types.PlayerLoading && state.Player.VideoID != a.VideoID {
		return state
	}
	switch a.YTStateCode {
	case 3:
		state.Player = types.NewPlayerBuffering(a.VideoID)
	case 1:
		state.Player = types.NewPlayerPlaying(a.VideoID)
	case 2, 5, 0:
		state.Player = types.NewPlayerPaused(a.VideoID)
	}
	return state
}

func handleShuffleSet(state types.RootState, a types.ShuffleSet) types.RootState {
	q := state.Queue
	q.ShuffleEnabled = a.Enabled
	if a.Enabled {
		seed := time.Now().UnixNano()
		if a.Seed != nil {
			seed = *a.Seed
		}
		q.ShuffleSeed = seed
		q.ShuffleOrder = playback.GenerateShuffleOrder(q.Videos, q.CurrentItemID, seed)
		q.PlaybackHistory = nil
	} else {
		q.ShuffleOrder = nil
		q.PlaybackHistory = nil
	}
	state.Queue = q
	return state
}

func handleRepeatSet(state types.RootState, a types.RepeatSet) types.RootState {
	state.Queue.RepeatMode = a.Mode
	return state
}

func applyDecision(state types.RootState, decision playback.Decision, newQueue types.QueueState) types.RootState {
	state.Queue = newQueue
	switch decision.Kind {
	case playback.AdvanceTo:
		idx := -1
		var youtubeID string
		for i, v := range newQueue.Videos {
			if v.ID == decision.VideoItemID {
				idx = i
				youtubeID = v.YoutubeID
				break
			}
		}
		if idx >= 0 {
			id := decision.VideoItemID
			state.Queue.CurrentIndex = &idx
			state.Queue.CurrentItemID = &id
			state.Player = types.NewPlayerLoading(youtubeID, true)
		}
	case playback.Stop:
		if newQueue.CurrentItemID != nil {
			for _, v := range newQueue.Videos {
				if v.ID == *newQueue.CurrentItemID {
					state.Player = types.NewPlayerPaused(v.YoutubeID)
					return state
				}
			}
		}
		state.Player = types.NewPlayerEmpty()
	case playback.NoOp:
		// queue update only, already applied above.
	}
	return state
}

func handleNextRequested(state types.RootState) types.RootState {
	decision, newQueue := playback.ComputeNext(state.Queue)
	return applyDecision(state, decision, newQueue)
}

func handlePrevRequested(state types.RootState) types.RootState {
	decision, newQueue := playback.ComputePrev(state.Queue)
	return applyDecision(state, decision, newQueue)
}

func handlePlaybackAdvanced(state types.RootState, a types.PlaybackAdvanced) types.RootState {
	q := state.Queue
	idx := -1
	var youtubeID string
	for i, v := range q.Videos {
		if v.ID == a.VideoItemID {
			idx = i
			youtubeID = v.YoutubeID
			break
		}
	}
	if idx < 0 {
		return state
	}
	id := a.VideoItemID
	q.CurrentIndex = &idx
	q.CurrentItemID = &id
	state.Queue = q
	state.Player = types.NewPlayerLoading(youtubeID, a.Autoplay)
	return state
}

func handlePlaybackStopped(state types.RootState) types.RootState {
	if state.Queue.CurrentItemID != nil {
		for _, v := range state.Queue.Videos {
			if v.ID == *state.Queue.CurrentItemID {
				state.Player = types.NewPlayerPaused(v.YoutubeID)
				return state
			}
		}
	}
	state.Player = types.NewPlayerEmpty()
	return state
}

func handleOperationFailed(state types.RootState, a types.OperationFailed) types.RootState {
	n := types.Notification{
		Severity:      a.Err.Category.Severity(),
		Message:       a.Err.Message,
		CorrelationID: a.Err.Context.CorrelationID,
		Timestamp:     time.Now(),
		Dismissible:   true,
	}
	state.Notifications = append(append([]types.Notification{}, state.Notifications...), n)
	return state
}

func handleShowNotification(state types.RootState, a types.ShowNotification) types.RootState {
	state.Notifications = append(append([]types.Notification{}, state.Notifications...), a.Notification)
	return state
}

func handleDismissNotification(state types.RootState, a types.DismissNotification) types.RootState {
	out := make([]types.Notification, 0, len(state.Notifications))
	for _, n := range state.Notifications {
		if n.CorrelationID != a.CorrelationID {
			out = append(out, n)
		}
	}
	state.Notifications = out
	return state
}

func handleExportRequested(state types.RootState) types.RootState {
	state.ImportExport = types.ImportExportState{Kind: types.IEExportInProgress}
	return state
}

func handleExportPrepared(state types.RootState, a types.ExportPrepared) types.RootState {
	env := a.Envelope
	state.ImportExport = types.ImportExportState{Kind: types.IEExportInProgress, Envelope: &env}
	return state
}

func handleExportSucceeded(state types.RootState, a types.ExportSucceeded) types.RootState {
	t, _ := time.Parse(time.RFC3339, a.ExportedAtUTC)
	state.ImportExport = types.ImportExportState{Kind: types.IEExportSucceeded, ExportedAtUTC: t}
	return state
}

func handleExportFailed(state types.RootState, a types.ExportFailed) types.RootState {
	err := a.Err
	state.ImportExport = types.ImportExportState{Kind: types.IEExportFailed, ExportError: &err}
	return state
}

func handleImportRequested(state types.RootState) types.RootState {
	state.ImportExport = types.ImportExportState{Kind: types.IEImportParsing}
	return state
}

func handleImportParsed(state types.RootState, a types.ImportParsed) types.RootState {
	env := a.Envelope
	state.ImportExport = types.ImportExportState{Kind: types.IEImportParsed, Envelope: &env}
	return state
}

func handleImportValidated(state types.RootState, a types.ImportValidated) types.RootState {
	env := a.Envelope
	state.ImportExport = types.ImportExportState{Kind: types.IEImportValidated, Envelope: &env}
	return state
}

func handleImportApplied(state types.RootState, a types.ImportApplied) types.RootState {
	state.Playlists = types.NewPlaylistsResult(a.Playlists)
	state.Queue = types.QueueState{SelectedPlaylistID: a.SelectedPlaylistID}
	state.Player = types.NewPlayerEmpty()
	state.Persistence.IsDirty = true
	state.ImportExport = types.ImportExportState{Kind: types.IEImportApplied}
	return state
}

func handleImportSucceeded(state types.RootState, a types.ImportSucceeded) types.RootState {
	state.ImportExport = types.ImportExportState{
		Kind:          types.IEImportSucceeded,
		PlaylistCount: a.PlaylistCount,
		VideoCount:    a.VideoCount,
	}
	return state
}

func handleImportFailed(state types.RootState, a types.ImportFailed) types.RootState {
	err := a.Err
	state.ImportExport = types.ImportExportState{Kind: types.IEImportFailed, ImportError: &err}
	return state
}

func handlePersistSucceeded(state types.RootState) types.RootState {
	state.Persistence.IsDirty = false
	state.Persistence.LastPersistAttemptUTC = time.Now()
	state.Persistence.LastPersistError = ""
	return state
}

func handlePersistFailed(state types.RootState, a types.PersistFailed) types.RootState {
	state.Persistence.LastPersistAttemptUTC = time.Now()
	state.Persistence.LastPersistError = a.Message
	return state
}
