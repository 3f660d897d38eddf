// Package reducer implements the pure (State, Action) -> State transition
// from spec.md §4.3. Reduce never performs I/O; per-action handlers never
// throw on well-formed input because the Action union is closed.
package reducer

import (
	"reflect"

	"github.com/goldbarth/arcflow/internal/core/playback"
	"github.com/goldbarth/arcflow/internal/core/types"
	"github.com/goldbarth/arcflow/internal/core/undo"
)

// Reduce is the reducer's public entry point, spec.md §4.3 steps 1-5.
func Reduce(state types.RootState, action types.Action) types.RootState {
	switch action.(type) {
	case types.UndoRequested:
		return applyUndo(state)
	case types.RedoRequested:
		return applyRedo(state)
	}

	oldQueue := state.Queue
	pre := undo.Capture(oldQueue)

	newState := dispatchHandler(state, action)

	policy := undo.Classify(action)
	switch policy {
	case undo.PlaybackTransient:
		newState.Queue.Past = oldQueue.Past
		newState.Queue.Future = oldQueue.Future
	case undo.Boundary:
		newState.Queue.Past = nil
		newState.Queue.Future = nil
	case undo.Undoable:
		if queueDataChanged(oldQueue, newState.Queue, pre) {
			newState.Queue.Past = undo.PushPast(oldQueue.Past, pre)
			newState.Queue.Future = nil
		} else {
			newState.Queue.Past = oldQueue.Past
			newState.Queue.Future = oldQueue.Future
		}
	default: // Neutral
		newState.Queue.Past = oldQueue.Past
		newState.Queue.Future = oldQueue.Future
	}

	if videosChanged(oldQueue.Videos, newState.Queue.Videos) {
		newState.Queue = playback.RepairPlaybackStructures(newState.Queue)
	}

	newState.Queue = validateQueue(newState.Queue)
	return newState
}

// queueDataChanged implements spec.md §4.3 step 3's Undoable change test:
// selectedPlaylistId, currentIndex, or the videos slice differs from pre.
func queueDataChanged(oldQueue, newQueue types.QueueState, pre types.QueueSnapshot) bool {
	if !stringPtrEqual(pre.SelectedPlaylistID, newQueue.SelectedPlaylistID) {
		return true
	}
	if !intPtrEqual(pre.CurrentIndex, newQueue.CurrentIndex) {
		return true
	}
	return videosChanged(oldQueue.Videos, newQueue.Videos)
}

func videosChanged(a, b []types.VideoItem) bool {
	return !reflect.DeepEqual(a, b)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func applyUndo(state types.RootState) types.RootState {
	q := state.Queue
	if len(q.Past) == 0 {
		return state
	}
	s := q.Past[len(q.Past)-1]
	c := undo.Capture(q)
	newQueue := undo.Restore(q, s)
	newQueue.Past = q.Past[:len(q.Past)-1]
	newQueue.Future = append(append([]types.QueueSnapshot{}, q.Future...), c)
	if len(newQueue.Future) > types.UndoStackCap {
		newQueue.Future = newQueue.Future[len(newQueue.Future)-types.UndoStackCap:]
	}
	state.Queue = validateQueue(playback.RepairPlaybackStructures(newQueue))
	return state
}

func applyRedo(state types.RootState) types.RootState {
	q := state.Queue
	if len(q.Future) == 0 {
		return state
	}
	s := q.Future[len(q.Future)-1]
	c := undo.Capture(q)
	newQueue := undo.Restore(q, s)
	newQueue.Future = q.Future[:len(q.Future)-1]
	newQueue.Past = append(append([]types.QueueSnapshot{}, q.Past...), c)
	if len(newQueue.Past) > types.UndoStackCap {
		newQueue.Past = newQueue.Past[len(newQueue.Past)-types.UndoStackCap:]
	}
	state.Queue = validateQueue(playback.RepairPlaybackStructures(newQueue))
	return state
}

// validateQueue implements spec.md §4.3 step 5.
func validateQueue(q types.QueueState) types.QueueState {
	if q.CurrentIndex != nil {
		if len(q.Videos) == 0 || *q.CurrentIndex < 0 || *q.CurrentIndex >= len(q.Videos) {
			q.CurrentIndex = nil
		}
	}
	if q.CurrentItemID != nil {
		found := false
		for _, v := range q.Videos {
			if v.ID == *q.CurrentItemID {
				found = true
				break
			}
		}
		if !found {
			q.CurrentItemID = nil
		}
	}
	return q
}

func dispatchHandler(state types.RootState, action types.Action) types.RootState {
	switch a := action.(type) {
	case types.Initialize:
		return handleInitialize(state)
	case types.SelectPlaylist:
		return handleSelectPlaylist(state, a)
	case types.PlaylistsLoaded:
		return handlePlaylistsLoaded(state, a)
	case types.PlaylistLoaded:
		return handlePlaylistLoaded(state, a)
	case types.SelectVideo:
		return handleSelectVideo(state, a)
	case types.SortChanged:
		return handleSortChanged(state, a)
	case types.PlayerStateChanged:
		return handlePlayerStateChanged(state, a)
	case types.ShuffleSet:
		return handleShuffleSet(state, a)
	case types.RepeatSet:
		return handleRepeatSet(state, a)
	case types.NextRequested:
		return handleNextRequested(state)
	case types.PrevRequested:
		return handlePrevRequested(state)
	case types.PlaybackAdvanced:
		return handlePlaybackAdvanced(state, a)
	case types.PlaybackStopped:
		return handlePlaybackStopped(state)
	case types.OperationFailed:
		return handleOperationFailed(state, a)
	case types.ShowNotification:
		return handleShowNotification(state, a)
	case types.DismissNotification:
		return handleDismissNotification(state, a)
	case types.ExportRequested:
		return handleExportRequested(state)
	case types.ExportPrepared:
		return handleExportPrepared(state, a)
	case types.ExportSucceeded:
		return handleExportSucceeded(state, a)
	case types.ExportFailed:
		return handleExportFailed(state, a)
	case types.ImportRequested:
		return handleImportRequested(state)
	case types.ImportParsed:
		return handleImportParsed(state, a)
	case types.ImportValidated:
		return handleImportValidated(state, a)
	case types.ImportApplied:
		return handleImportApplied(state, a)
	case types.ImportSucceeded:
		return handleImportSucceeded(state, a)
	case types.ImportFailed:
		return handleImportFailed(state, a)
	case types.PersistRequested:
		return state
	case types.PersistSucceeded:
		return handlePersistSucceeded(state)
	case types.PersistFailed:
		return handlePersistFailed(state, a)
	case types.VideoEnded, types.CreatePlaylist, types.AddVideo, types.CleanupRequested:
		return state
	default:
		panic("reducer: unrecognised action type, the Action union is no longer closed")
	}
}
