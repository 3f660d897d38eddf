// Package effects implements the effect table from spec.md §4.6: the only
// place collaborators are called. Every handler receives the action, a
// getState closure reading the post-reduce snapshot, and a dispatch
// closure enqueueing follow-ups; handlers never mutate state directly.
package effects

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goldbarth/arcflow/internal/collaborators/download"
	"github.com/goldbarth/arcflow/internal/collaborators/player"
	"github.com/goldbarth/arcflow/internal/collaborators/playlistservice"
	"github.com/goldbarth/arcflow/internal/collaborators/youtube"
	"github.com/goldbarth/arcflow/internal/config"
	"github.com/goldbarth/arcflow/internal/core/store"
	"github.com/goldbarth/arcflow/internal/core/types"
	"github.com/goldbarth/arcflow/internal/notify"
)

// Collaborators bundles everything an effect handler may call out to.
type Collaborators struct {
	Playlists playlistservice.Service
	Player    player.Player
	Download  download.Download
	YouTube   *youtube.Client
	Config    *config.Manager
	Log       zerolog.Logger
}

// Run returns a store.EffectRunner closing over c, dispatching to the
// handler named by the effect table. UndoRequested/RedoRequested are
// intentionally absent: they produce no collaborator calls (spec.md §4.6).
func Run(c Collaborators) store.EffectRunner {
	log := c.Log.With().Str("component", "effects").Logger()
	return func(action types.Action, getState func() types.RootState, dispatch func(types.Action)) {
		switch a := action.(type) {
		case types.Initialize:
			c.handleInitialize(getState, dispatch)
		case types.SelectPlaylist:
			c.handleSelectPlaylist(a, dispatch)
		case types.SelectVideo, types.NextRequested, types.PrevRequested:
			c.handleLoadCurrent(getState)
		case types.SortChanged:
			c.handleSortChanged(getState, dispatch)
		case types.VideoEnded:
			dispatch(types.NextRequested{})
		case types.CreatePlaylist:
			c.handleCreatePlaylist(a, dispatch)
		case types.AddVideo:
			c.handleAddVideo(a, getState, dispatch)
		case types.ExportRequested:
			c.handleExportRequested(getState, dispatch)
		case types.ImportRequested:
			c.handleImportRequested(a, dispatch)
		case types.ImportApplied, types.PersistRequested:
			c.handlePersist(getState, dispatch)
		case types.CleanupRequested:
			c.handleCleanup(getState, dispatch)
		default:
			log.Debug().Msg("no effect for action")
		}
	}
}

func newCorrelationID() string { return uuid.NewString() }

func operationFailed(category types.ErrorCategory, op, detail string, ctx types.OperationContext, inner error) types.OperationFailed {
	ctx.CorrelationID = newCorrelationID()
	ctx.Operation = op
	return types.OperationFailed{Err: types.OperationError{
		Category: category,
		Message:  notify.Message(category, op, detail),
		Context:  ctx,
		Inner:    inner,
	}}
}

func successNotification(message string) types.ShowNotification {
	return types.ShowNotification{Notification: types.Notification{
		Severity:      types.SeverityInfo,
		Message:       message,
		CorrelationID: newCorrelationID(),
		Timestamp:     time.Now(),
		Dismissible:   true,
	}}
}

func isPlaylistsReady(kind types.PlaylistsKind) bool {
	return kind == types.PlaylistsLoadedKind || kind == types.PlaylistsEmpty
}

func videoCount(playlists []types.Playlist) int {
	n := 0
	for _, p := range playlists {
		n += len(p.Videos)
	}
	return n
}
