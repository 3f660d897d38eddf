package effects

import (
	"fmt"
	"time"

	"github.com/goldbarth/arcflow/internal/core/importexport"
	"github.com/goldbarth/arcflow/internal/core/types"
)

// handleExportRequested runs the export pipeline, spec.md §4.5: map the
// loaded playlists to DTOs, wrap in an envelope, serialize, then ask the
// download collaborator to save it. Progresses
// ExportRequested -> ExportPrepared -> ExportSucceeded, or ExportFailed at
// the earliest failing stage.
func (c Collaborators) handleExportRequested(getState func() types.RootState, dispatch func(types.Action)) {
	state := getState()
	if !isPlaylistsReady(state.Playlists.Kind) {
		dispatch(types.ExportFailed{Err: types.ExportError{Kind: types.ExportErrInterop, Message: "playlists are not loaded"}})
		return
	}

	now := time.Now()
	env := importexport.ToEnvelope(state.Playlists.Playlists, state.Queue.SelectedPlaylistID, now)
	dispatch(types.ExportPrepared{Envelope: env})

	data, err := importexport.Serialize(env)
	if err != nil {
		dispatch(types.ExportFailed{Err: types.ExportError{Kind: types.ExportErrSerialization, Message: err.Error()}})
		return
	}

	fileName := fmt.Sprintf("arcflow-export-%s.json", now.UTC().Format("2006-01-02"))
	if err := c.Download.Save(fileName, string(data)); err != nil {
		dispatch(types.ExportFailed{Err: types.ExportError{Kind: types.ExportErrInterop, Message: err.Error()}})
		return
	}

	dispatch(types.ExportSucceeded{ExportedAtUTC: env.ExportedAtUTC})
}

// handleImportRequested runs the import pipeline, spec.md §4.5 steps 1-5,
// dispatching each transitional action as it clears a stage. ImportApplied
// triggers its own effect (persistence) once it is processed.
func (c Collaborators) handleImportRequested(a types.ImportRequested, dispatch func(types.Action)) {
	env, err := importexport.Deserialize([]byte(a.JSONText))
	if err != nil {
		dispatch(types.ImportFailed{Err: types.ImportError{Kind: types.ImportErrParse, Message: err.Error()}})
		return
	}
	dispatch(types.ImportParsed{Envelope: env})

	if ie := importexport.CheckSchemaVersion(env); ie != nil {
		dispatch(types.ImportFailed{Err: *ie})
		return
	}
	if ie := importexport.Validate(env); ie != nil {
		dispatch(types.ImportFailed{Err: *ie})
		return
	}
	if ie := importexport.CheckIDCollisions(env); ie != nil {
		dispatch(types.ImportFailed{Err: *ie})
		return
	}
	dispatch(types.ImportValidated{Envelope: env})

	playlists := importexport.FromEnvelope(env)
	dispatch(types.ImportApplied{Playlists: playlists, SelectedPlaylistID: env.SelectedPlaylistID})
	dispatch(types.ImportSucceeded{PlaylistCount: len(playlists), VideoCount: videoCount(playlists)})
}
