package types

// Action is the closed union every dispatched value belongs to. Concrete
// action types implement it with a marker method so the compiler enforces
// that only known actions reach the reducer's type switch; the switch's
// default branch panics, matching spec.md's "no throwing except on
// unrecognised action (must be impossible under a closed union)".
type Action interface {
	isAction()
}

type action struct{}

func (action) isAction() {}

// Initialize kicks off the playlists load.
type Initialize struct{ action }

// SelectPlaylist switches the active playlist by id.
type SelectPlaylist struct {
	action
	PlaylistID string
}

// PlaylistsLoaded carries the playlist-service's list result.
type PlaylistsLoaded struct {
	action
	Playlists []Playlist
}

// PlaylistLoaded carries a single fully-loaded playlist (with videos).
type PlaylistLoaded struct {
	action
	Playlist Playlist
}

// SelectVideo moves the cursor to videos[Index].
type SelectVideo struct {
	action
	Index    int
	Autoplay bool
}

// SortChanged reorders a video from OldIndex to NewIndex.
type SortChanged struct {
	action
	OldIndex int
	NewIndex int
}

// PlayerStateChanged carries a raw YouTube iframe-API state code.
type PlayerStateChanged struct {
	action
	YTStateCode int
	VideoID     string
}

// ShuffleSet toggles shuffle, optionally pinning the seed.
type ShuffleSet struct {
	action
	Enabled bool
	Seed    *int64
}

// RepeatSet changes the repeat mode.
type RepeatSet struct {
	action
	Mode RepeatMode
}

// NextRequested asks PlaybackNavigation to advance.
type NextRequested struct{ action }

// PrevRequested asks PlaybackNavigation to go back.
type PrevRequested struct{ action }

// PlaybackAdvanced commits a navigation decision's AdvanceTo target,
// independent of whether it originated from NextRequested or
// PrevRequested — used when an external source (e.g. the player
// collaborator reporting that autoplay already moved on) needs to
// reconcile the cursor without re-running navigation.
type PlaybackAdvanced struct {
	action
	VideoItemID string
	Autoplay    bool
}

// PlaybackStopped records that navigation produced Stop.
type PlaybackStopped struct{ action }

// OperationFailed carries a collaborator failure.
type OperationFailed struct {
	action
	Err OperationError
}

// ShowNotification appends a notification directly (e.g. success toasts).
type ShowNotification struct {
	action
	Notification Notification
}

// DismissNotification removes a notification by correlation id.
type DismissNotification struct {
	action
	CorrelationID string
}

// ExportRequested begins the export pipeline.
type ExportRequested struct{ action }

// ExportPrepared carries the serialized envelope awaiting save.
type ExportPrepared struct {
	action
	Envelope Envelope
}

// ExportSucceeded records a completed export.
type ExportSucceeded struct {
	action
	ExportedAtUTC string
}

// ExportFailed carries the failing stage's error.
type ExportFailed struct {
	action
	Err ExportError
}

// ImportRequested carries raw JSON text to import.
type ImportRequested struct {
	action
	JSONText string
}

// ImportParsed carries a successfully deserialized envelope.
type ImportParsed struct {
	action
	Envelope Envelope
}

// ImportValidated marks an envelope as passing validation.
type ImportValidated struct {
	action
	Envelope Envelope
}

// ImportApplied is the single state-replacing import action.
type ImportApplied struct {
	action
	Playlists          []Playlist
	SelectedPlaylistID *string
}

// ImportSucceeded records import completion counts.
type ImportSucceeded struct {
	action
	PlaylistCount int
	VideoCount    int
}

// ImportFailed carries the failing stage's error.
type ImportFailed struct {
	action
	Err ImportError
}

// PersistRequested asks the persistence effect to run (effect-only).
type PersistRequested struct{ action }

// PersistSucceeded records a completed persist.
type PersistSucceeded struct{ action }

// PersistFailed carries the persistence failure message.
type PersistFailed struct {
	action
	Message string
}

// UndoRequested pops one snapshot off Past.
type UndoRequested struct{ action }

// RedoRequested pops one snapshot off Future.
type RedoRequested struct{ action }

// VideoEnded is the player collaborator's onEnded callback, translated.
type VideoEnded struct{ action }

// CreatePlaylist asks the playlist-service to create a new playlist.
type CreatePlaylist struct {
	action
	Name        string
	Description string
}

// AddVideo asks the playlist-service to add a video to a playlist.
type AddVideo struct {
	action
	PlaylistID string
	YoutubeID  string
	Title      string
	Paid       bool
	AddedBy    string
}

// CleanupRequested prunes videos older than the configured retention
// window (SPEC_FULL.md §4 "Periodic stale-item cleanup").
type CleanupRequested struct{ action }
