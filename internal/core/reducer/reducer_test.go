package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldbarth/arcflow/internal/core/types"
)

func strPtr(s string) *string { return &s }

func videoItems(ids ...string) []types.VideoItem {
	out := make([]types.VideoItem, len(ids))
	for i, id := range ids {
		out[i] = types.VideoItem{ID: id, YoutubeID: "yt-" + id, Position: i}
	}
	return out
}

func loadedQueue(ids ...string) types.RootState {
	state := types.NewRootState()
	state.Playlists = types.NewPlaylistsResult([]types.Playlist{{ID: "pl-1", Name: "Mix", Videos: videoItems(ids...)}})
	state = Reduce(state, types.PlaylistLoaded{Playlist: types.Playlist{ID: "pl-1", Videos: videoItems(ids...)}})
	return state
}

func TestSelectPlaylistResetsQueue(t *testing.T) {
	state := loadedQueue("a", "b")
	state = Reduce(state, types.SelectVideo{Index: 1})
	state = Reduce(state, types.SelectPlaylist{PlaylistID: "pl-2"})
	assert.Equal(t, "pl-2", *state.Queue.SelectedPlaylistID)
	assert.Empty(t, state.Queue.Videos)
	assert.Equal(t, types.PlayerEmpty, state.Player.Kind)
}

func TestSelectPlaylistIsNoOpWhenAlreadySelected(t *testing.T) {
	state := loadedQueue("a", "b")
	before := state.Queue
	state = Reduce(state, types.SelectPlaylist{PlaylistID: "pl-1"})
	assert.Equal(t, before, state.Queue)
}

func TestPlaylistLoadedSortsVideosByPosition(t *testing.T) {
	unordered := types.Playlist{ID: "pl-1", Videos: []types.VideoItem{
		{ID: "b", Position: 1},
		{ID: "a", Position: 0},
	}}
	state := Reduce(types.NewRootState(), types.PlaylistLoaded{Playlist: unordered})
	require.Len(t, state.Queue.Videos, 2)
	assert.Equal(t, "a", state.Queue.Videos[0].ID)
	assert.Equal(t, "b", state.Queue.Videos[1].ID)
}

// E1: sequential playback, RepeatOff, reaching the end of the queue stops.
func TestE1SequentialEndOfQueueStops(t *testing.T) {
	state := loadedQueue("a", "b")
	state = Reduce(state, types.SelectVideo{Index: 0, Autoplay: true})
	state = Reduce(state, types.NextRequested{})
	assert.Equal(t, "b", *state.Queue.CurrentItemID)
	state = Reduce(state, types.NextRequested{})
	assert.Equal(t, "b", *state.Queue.CurrentItemID)
	assert.Equal(t, types.PlayerPaused, state.Player.Kind)
}

// E2: RepeatAll wraps back to the first video at the end of the queue.
func TestE2RepeatAllWraps(t *testing.T) {
	state := loadedQueue("a", "b", "c")
	state = Reduce(state, types.RepeatSet{Mode: types.RepeatAll})
	state = Reduce(state, types.SelectVideo{Index: 2, Autoplay: true})
	state = Reduce(state, types.NextRequested{})
	require.NotNil(t, state.Queue.CurrentItemID)
	assert.Equal(t, "a", *state.Queue.CurrentItemID)
}

// E3: enabling shuffle then disabling it returns the queue to sequential
// navigation without losing the video list.
func TestE3ShuffleRoundTrip(t *testing.T) {
	state := loadedQueue("a", "b", "c")
	seed := int64(11)
	state = Reduce(state, types.ShuffleSet{Enabled: true, Seed: &seed})
	require.True(t, state.Queue.ShuffleEnabled)
	require.NotEmpty(t, state.Queue.ShuffleOrder)

	state = Reduce(state, types.ShuffleSet{Enabled: false})
	assert.False(t, state.Queue.ShuffleEnabled)
	assert.Nil(t, state.Queue.ShuffleOrder)
	assert.Len(t, state.Queue.Videos, 3)
}

// E4: undoing a SortChanged restores the prior video order and positions.
func TestE4UndoSortChangedRestoresPositions(t *testing.T) {
	state := loadedQueue("a", "b", "c")
	before := append([]types.VideoItem{}, state.Queue.Videos...)

	state = Reduce(state, types.SortChanged{OldIndex: 0, NewIndex: 2})
	assert.Equal(t, "b", state.Queue.Videos[0].ID)
	require.Len(t, state.Queue.Past, 1)

	state = Reduce(state, types.UndoRequested{})
	assert.Equal(t, before, state.Queue.Videos)
	assert.Empty(t, state.Queue.Past)
	require.Len(t, state.Queue.Future, 1)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	state := loadedQueue("a", "b", "c")
	state = Reduce(state, types.SortChanged{OldIndex: 0, NewIndex: 1})
	afterSort := state.Queue.Videos

	state = Reduce(state, types.UndoRequested{})
	state = Reduce(state, types.RedoRequested{})
	assert.Equal(t, afterSort, state.Queue.Videos)
	assert.Empty(t, state.Queue.Future)
}

func TestUndoRequestedIsNoOpWhenPastIsEmpty(t *testing.T) {
	state := loadedQueue("a", "b")
	before := state
	state = Reduce(state, types.UndoRequested{})
	assert.Equal(t, before, state)
}

func TestBoundaryActionClearsUndoStacks(t *testing.T) {
	state := loadedQueue("a", "b", "c")
	state = Reduce(state, types.SortChanged{OldIndex: 0, NewIndex: 2})
	require.Len(t, state.Queue.Past, 1)

	state = Reduce(state, types.PlaylistLoaded{Playlist: types.Playlist{ID: "pl-1", Videos: videoItems("a", "b")}})
	assert.Empty(t, state.Queue.Past)
	assert.Empty(t, state.Queue.Future)
}

func TestPlaybackTransientActionPreservesUndoStacks(t *testing.T) {
	state := loadedQueue("a", "b", "c")
	state = Reduce(state, types.SortChanged{OldIndex: 0, NewIndex: 2})
	require.Len(t, state.Queue.Past, 1)

	state = Reduce(state, types.NextRequested{})
	assert.Len(t, state.Queue.Past, 1)
}

func TestSelectVideoWithSameIndexIsNoOp(t *testing.T) {
	state := loadedQueue("a", "b")
	state = Reduce(state, types.SelectVideo{Index: 0, Autoplay: true})
	afterFirst := state
	state = Reduce(state, types.SelectVideo{Index: 0, Autoplay: true})
	assert.Equal(t, afterFirst, state)
}

func TestOperationFailedAppendsNotificationWithSeverity(t *testing.T) {
	state := Reduce(types.NewRootState(), types.OperationFailed{Err: types.OperationError{
		Category: types.CategoryExternal,
		Message:  "boom",
		Context:  types.OperationContext{CorrelationID: "corr-1"},
	}})
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, types.SeverityError, state.Notifications[0].Severity)
	assert.Equal(t, "corr-1", state.Notifications[0].CorrelationID)
}

func TestDismissNotificationRemovesByCorrelationID(t *testing.T) {
	state := types.NewRootState()
	state.Notifications = []types.Notification{
		{CorrelationID: "keep"},
		{CorrelationID: "drop"},
	}
	state = Reduce(state, types.DismissNotification{CorrelationID: "drop"})
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, "keep", state.Notifications[0].CorrelationID)
}

func TestImportAppliedMarksPersistenceDirtyAndClearsPlayer(t *testing.T) {
	state := loadedQueue("a", "b")
	state = Reduce(state, types.SelectVideo{Index: 0, Autoplay: true})
	state = Reduce(state, types.ImportApplied{
		Playlists:          []types.Playlist{{ID: "pl-new", Videos: videoItems("x")}},
		SelectedPlaylistID: strPtr("pl-new"),
	})
	assert.True(t, state.Persistence.IsDirty)
	assert.Equal(t, types.PlayerEmpty, state.Player.Kind)
	assert.Equal(t, "pl-new", *state.Queue.SelectedPlaylistID)
}

