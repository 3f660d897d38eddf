// Package undo implements UndoPolicy (spec.md §4.2) and QueueSnapshot
// capture/restore (spec.md §3 "Ownership").
package undo

import "github.com/goldbarth/arcflow/internal/core/types"

// Policy is the exhaustive classification of an action's effect on undo
// history.
type Policy int

const (
	Undoable Policy = iota
	Boundary
	PlaybackTransient
	Neutral
)

// Classify returns the exactly-one Policy for action, per spec.md §4.2's
// table. The default branch is Neutral ("all others"), so Classify is
// total over the closed Action union.
func Classify(action types.Action) Policy {
	switch action.(type) {
	case types.SelectVideo, types.SortChanged:
		return Undoable
	case types.PlaylistLoaded, types.SelectPlaylist, types.ImportApplied:
		return Boundary
	case types.NextRequested, types.PrevRequested, types.PlaybackAdvanced,
		types.PlaybackStopped, types.ShuffleSet, types.RepeatSet:
		return PlaybackTransient
	default:
		return Neutral
	}
}

// Capture produces a QueueSnapshot sufficient to restore q later.
func Capture(q types.QueueState) types.QueueSnapshot {
	var selected *string
	if q.SelectedPlaylistID != nil {
		v := *q.SelectedPlaylistID
		selected = &v
	}
	var curIdx *int
	if q.CurrentIndex != nil {
		v := *q.CurrentIndex
		curIdx = &v
	}
	var curID *string
	if q.CurrentItemID != nil {
		v := *q.CurrentItemID
		curID = &v
	}
	videos := make([]types.VideoItem, len(q.Videos))
	copy(videos, q.Videos)
	shuffleOrder := append([]string{}, q.ShuffleOrder...)
	history := append([]string{}, q.PlaybackHistory...)

	return types.QueueSnapshot{
		SelectedPlaylistID: selected,
		Videos:             videos,
		CurrentIndex:       curIdx,
		CurrentItemID:      curID,
		ShuffleOrder:        shuffleOrder,
		PlaybackHistory:     history,
		RepeatMode:          q.RepeatMode,
		ShuffleEnabled:      q.ShuffleEnabled,
		ShuffleSeed:         q.ShuffleSeed,
	}
}

// Restore rebuilds a QueueState from a snapshot, keeping Past/Future from
// the queue passed in (the caller is responsible for stack bookkeeping).
func Restore(current types.QueueState, s types.QueueSnapshot) types.QueueState {
	q := current
	q.SelectedPlaylistID = s.SelectedPlaylistID
	q.Videos = s.Videos
	q.CurrentIndex = s.CurrentIndex
	q.CurrentItemID = s.CurrentItemID
	q.ShuffleOrder = s.ShuffleOrder
	q.PlaybackHistory = s.PlaybackHistory
	q.RepeatMode = s.RepeatMode
	q.ShuffleEnabled = s.ShuffleEnabled
	q.ShuffleSeed = s.ShuffleSeed
	return q
}

// PushPast appends s to past, dropping the oldest entry if over cap.
func PushPast(past []types.QueueSnapshot, s types.QueueSnapshot) []types.QueueSnapshot {
	out := append(append([]types.QueueSnapshot{}, past...), s)
	if len(out) > types.UndoStackCap {
		out = out[len(out)-types.UndoStackCap:]
	}
	return out
}
