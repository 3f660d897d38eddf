package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldbarth/arcflow/internal/core/types"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestClassifyUndoable(t *testing.T) {
	assert.Equal(t, Undoable, Classify(types.SelectVideo{}))
	assert.Equal(t, Undoable, Classify(types.SortChanged{}))
}

func TestClassifyBoundary(t *testing.T) {
	assert.Equal(t, Boundary, Classify(types.PlaylistLoaded{}))
	assert.Equal(t, Boundary, Classify(types.SelectPlaylist{}))
	assert.Equal(t, Boundary, Classify(types.ImportApplied{}))
}

func TestClassifyPlaybackTransient(t *testing.T) {
	assert.Equal(t, PlaybackTransient, Classify(types.NextRequested{}))
	assert.Equal(t, PlaybackTransient, Classify(types.PrevRequested{}))
	assert.Equal(t, PlaybackTransient, Classify(types.PlaybackAdvanced{}))
	assert.Equal(t, PlaybackTransient, Classify(types.PlaybackStopped{}))
	assert.Equal(t, PlaybackTransient, Classify(types.ShuffleSet{}))
	assert.Equal(t, PlaybackTransient, Classify(types.RepeatSet{}))
}

func TestClassifyNeutralIsTheDefault(t *testing.T) {
	assert.Equal(t, Neutral, Classify(types.Initialize{}))
	assert.Equal(t, Neutral, Classify(types.UndoRequested{}))
	assert.Equal(t, Neutral, Classify(types.OperationFailed{}))
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	q := types.QueueState{
		SelectedPlaylistID: strPtr("pl-1"),
		Videos:             []types.VideoItem{{ID: "a"}, {ID: "b"}},
		CurrentIndex:       intPtr(1),
		CurrentItemID:      strPtr("b"),
		ShuffleOrder:       []string{"b", "a"},
		ShuffleSeed:        9,
		ShuffleEnabled:     true,
		PlaybackHistory:    []string{"a"},
		RepeatMode:         types.RepeatAll,
		Past:               []types.QueueSnapshot{{}},
		Future:             []types.QueueSnapshot{{}},
	}
	snap := Capture(q)

	mutated := q
	mutated.SelectedPlaylistID = strPtr("pl-2")
	mutated.Videos = []types.VideoItem{{ID: "c"}}
	mutated.CurrentIndex = intPtr(0)
	mutated.CurrentItemID = strPtr("c")
	mutated.ShuffleOrder = []string{"c"}
	mutated.ShuffleSeed = 1
	mutated.ShuffleEnabled = false
	mutated.PlaybackHistory = nil
	mutated.RepeatMode = types.RepeatOff

	restored := Restore(mutated, snap)
	assert.Equal(t, *q.SelectedPlaylistID, *restored.SelectedPlaylistID)
	assert.Equal(t, q.Videos, restored.Videos)
	assert.Equal(t, *q.CurrentIndex, *restored.CurrentIndex)
	assert.Equal(t, *q.CurrentItemID, *restored.CurrentItemID)
	assert.Equal(t, q.ShuffleOrder, restored.ShuffleOrder)
	assert.Equal(t, q.ShuffleSeed, restored.ShuffleSeed)
	assert.Equal(t, q.ShuffleEnabled, restored.ShuffleEnabled)
	assert.Equal(t, q.PlaybackHistory, restored.PlaybackHistory)
	assert.Equal(t, q.RepeatMode, restored.RepeatMode)
	// Past/Future are stack bookkeeping the caller owns, untouched by Restore.
	assert.Equal(t, mutated.Past, restored.Past)
	assert.Equal(t, mutated.Future, restored.Future)
}

func TestCaptureIsIndependentOfSourceMutation(t *testing.T) {
	id := "pl-1"
	q := types.QueueState{
		SelectedPlaylistID: &id,
		Videos:             []types.VideoItem{{ID: "a"}},
		ShuffleOrder:       []string{"a"},
		PlaybackHistory:    []string{"a"},
	}
	snap := Capture(q)

	id = "pl-2"
	q.Videos[0].ID = "mutated"
	q.ShuffleOrder[0] = "mutated"
	q.PlaybackHistory[0] = "mutated"

	assert.Equal(t, "pl-1", *snap.SelectedPlaylistID)
	assert.Equal(t, "a", snap.Videos[0].ID)
	assert.Equal(t, "a", snap.ShuffleOrder[0])
	assert.Equal(t, "a", snap.PlaybackHistory[0])
}

func TestPushPastAppends(t *testing.T) {
	past := []types.QueueSnapshot{{ShuffleSeed: 1}}
	out := PushPast(past, types.QueueSnapshot{ShuffleSeed: 2})
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[1].ShuffleSeed)
	// original slice untouched
	assert.Len(t, past, 1)
}

func TestPushPastCapsAtStackLimit(t *testing.T) {
	var past []types.QueueSnapshot
	for i := 0; i < types.UndoStackCap+5; i++ {
		past = PushPast(past, types.QueueSnapshot{ShuffleSeed: int64(i)})
	}
	require.Len(t, past, types.UndoStackCap)
	assert.Equal(t, int64(5), past[0].ShuffleSeed)
	assert.Equal(t, int64(types.UndoStackCap+4), past[len(past)-1].ShuffleSeed)
}
