package types

import "time"

// PlaylistsKind discriminates PlaylistsState.
type PlaylistsKind int

const (
	PlaylistsLoading PlaylistsKind = iota
	PlaylistsLoadedKind
	PlaylistsEmpty
	PlaylistsError
)

// PlaylistsState is the variant Loading | Loaded(playlists) | Empty | Error(message).
type PlaylistsState struct {
	Kind      PlaylistsKind
	Playlists []Playlist
	Message   string
}

func NewPlaylistsLoading() PlaylistsState { return PlaylistsState{Kind: PlaylistsLoading} }

func NewPlaylistsResult(playlists []Playlist) PlaylistsState {
	if len(playlists) == 0 {
		return PlaylistsState{Kind: PlaylistsEmpty}
	}
	return PlaylistsState{Kind: PlaylistsLoadedKind, Playlists: playlists}
}

func NewPlaylistsError(message string) PlaylistsState {
	return PlaylistsState{Kind: PlaylistsError, Message: message}
}

// RepeatMode is Off | All | One.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// QueueSnapshot is an immutable capture of the queue sufficient to restore
// it, including per-item positions. Owned by past/future stacks.
type QueueSnapshot struct {
	SelectedPlaylistID *string
	Videos             []VideoItem
	CurrentIndex       *int
	CurrentItemID      *string
	ShuffleOrder       []string
	PlaybackHistory    []string
	RepeatMode         RepeatMode
	ShuffleEnabled     bool
	ShuffleSeed        int64
}

const (
	PlaybackHistoryCap = 100
	UndoStackCap       = 30
)

// QueueState is the video queue and playback cursor.
type QueueState struct {
	SelectedPlaylistID *string
	Videos             []VideoItem
	CurrentIndex       *int
	CurrentItemID      *string
	RepeatMode         RepeatMode
	ShuffleEnabled     bool
	ShuffleOrder       []string
	ShuffleSeed        int64
	PlaybackHistory    []string
	Past               []QueueSnapshot
	Future             []QueueSnapshot
}

func NewQueueState() QueueState {
	return QueueState{}
}

// PlayerKind discriminates PlayerState.
type PlayerKind int

const (
	PlayerEmpty PlayerKind = iota
	PlayerLoading
	PlayerBuffering
	PlayerPlaying
	PlayerPaused
	PlayerError
)

// PlayerState is Empty | Loading(videoId, autoplay) | Buffering(videoId) |
// Playing(videoId) | Paused(videoId) | Error(message).
type PlayerState struct {
	Kind     PlayerKind
	VideoID  string
	Autoplay bool
	Message  string
}

func NewPlayerEmpty() PlayerState { return PlayerState{Kind: PlayerEmpty} }

func NewPlayerLoading(videoID string, autoplay bool) PlayerState {
	return PlayerState{Kind: PlayerLoading, VideoID: videoID, Autoplay: autoplay}
}

func NewPlayerBuffering(videoID string) PlayerState {
	return PlayerState{Kind: PlayerBuffering, VideoID: videoID}
}

func NewPlayerPlaying(videoID string) PlayerState {
	return PlayerState{Kind: PlayerPlaying, VideoID: videoID}
}

func NewPlayerPaused(videoID string) PlayerState {
	return PlayerState{Kind: PlayerPaused, VideoID: videoID}
}

func NewPlayerError(message string) PlayerState {
	return PlayerState{Kind: PlayerError, Message: message}
}

// ImportExportKind discriminates ImportExportState.
type ImportExportKind int

const (
	IEIdle ImportExportKind = iota
	IEExportInProgress
	IEExportSucceeded
	IEExportFailed
	IEImportParsing
	IEImportParsed
	IEImportValidated
	IEImportApplied
	IEImportSucceeded
	IEImportFailed
)

// ImportExportState is the Idle | ExportInProgress | ExportSucceeded(...) |
// ... union from spec.md §3.
type ImportExportState struct {
	Kind           ImportExportKind
	ExportedAtUTC  time.Time
	Envelope       *Envelope
	ExportError    *ExportError
	ImportError    *ImportError
	PlaylistCount  int
	VideoCount     int
}

func NewImportExportIdle() ImportExportState { return ImportExportState{Kind: IEIdle} }

// PersistenceState tracks dirty/error bits for the persistence effect.
type PersistenceState struct {
	IsDirty               bool
	LastPersistAttemptUTC time.Time
	LastPersistError      string
}

// Severity of a Notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Notification is a single user-visible message.
type Notification struct {
	Severity      Severity
	Message       string
	CorrelationID string
	Timestamp     time.Time
	Dismissible   bool
}

// RootState composes all six slices. Every slice is immutable and
// replaced as a whole on change.
type RootState struct {
	Playlists    PlaylistsState
	Queue        QueueState
	Player       PlayerState
	ImportExport ImportExportState
	Persistence  PersistenceState
	Notifications []Notification
}

// NewRootState returns the initial state prior to Initialize.
func NewRootState() RootState {
	return RootState{
		Playlists:    PlaylistsState{Kind: PlaylistsLoading},
		Queue:        NewQueueState(),
		Player:       NewPlayerEmpty(),
		ImportExport: NewImportExportIdle(),
		Persistence:  PersistenceState{},
	}
}
