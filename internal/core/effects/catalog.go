package effects

import (
	"time"

	"github.com/google/uuid"

	"github.com/goldbarth/arcflow/internal/collaborators/youtube"
	"github.com/goldbarth/arcflow/internal/core/types"
)

func (c Collaborators) handleInitialize(getState func() types.RootState, dispatch func(types.Action)) {
	playlists, err := c.Playlists.GetAll()
	if err != nil {
		dispatch(operationFailed(types.CategoryTransient, "Initialize", "failed to load playlists", types.OperationContext{}, err))
		return
	}
	dispatch(types.PlaylistsLoaded{Playlists: playlists})
	if len(playlists) > 0 {
		dispatch(types.SelectPlaylist{PlaylistID: playlists[0].ID})
	}
}

func (c Collaborators) handleSelectPlaylist(a types.SelectPlaylist, dispatch func(types.Action)) {
	p, err := c.Playlists.GetByID(a.PlaylistID)
	if err != nil {
		dispatch(operationFailed(types.CategoryTransient, "SelectPlaylist", "failed to load playlist", types.OperationContext{PlaylistID: a.PlaylistID}, err))
		return
	}
	if p == nil {
		dispatch(operationFailed(types.CategoryNotFound, "SelectPlaylist", "playlist not found", types.OperationContext{PlaylistID: a.PlaylistID}, nil))
		return
	}
	dispatch(types.PlaylistLoaded{Playlist: *p})
	if len(p.Videos) > 0 {
		dispatch(types.SelectVideo{Index: 0, Autoplay: false})
	}
}

func (c Collaborators) handleCreatePlaylist(a types.CreatePlaylist, dispatch func(types.Action)) {
	if a.Name == "" {
		dispatch(operationFailed(types.CategoryValidation, "CreatePlaylist", "playlist name must not be empty", types.OperationContext{}, nil))
		return
	}
	now := time.Now()
	p := types.Playlist{ID: uuid.NewString(), Name: a.Name, Description: a.Description, CreatedAt: now, UpdatedAt: now}
	if err := c.Playlists.Create(p); err != nil {
		dispatch(operationFailed(types.CategoryExternal, "CreatePlaylist", "failed to create playlist", types.OperationContext{PlaylistID: p.ID}, err))
		return
	}
	all, err := c.Playlists.GetAll()
	if err != nil {
		dispatch(operationFailed(types.CategoryTransient, "CreatePlaylist", "failed to reload playlists", types.OperationContext{}, err))
		return
	}
	dispatch(types.PlaylistsLoaded{Playlists: all})
	dispatch(types.SelectPlaylist{PlaylistID: p.ID})
	dispatch(successNotification("Playlist \"" + p.Name + "\" created"))
}

// handleAddVideo resolves metadata, applies the admission rules
// supplemented from the teacher (maximum duration, minimum views, repeat
// limit, queue capacity), appends the video, reloads the playlist, and — for
// donation-gated (paid) adds — issues a follow-up SortChanged moving the
// new video to the front, per SPEC_FULL.md §4's donation-gated priority
// queueing and DESIGN.md's Open Question O1.
func (c Collaborators) handleAddVideo(a types.AddVideo, getState func() types.RootState, dispatch func(types.Action)) {
	videoID := youtube.ExtractID(a.YoutubeID)
	if videoID == "" {
		dispatch(operationFailed(types.CategoryValidation, "AddVideo", "invalid YouTube URL or id", types.OperationContext{PlaylistID: a.PlaylistID}, nil))
		return
	}

	cfg := c.Config.Get()

	info, err := c.YouTube.GetVideoInfo(videoID)
	if err != nil {
		dispatch(operationFailed(types.CategoryExternal, "AddVideo", "failed to fetch video metadata", types.OperationContext{PlaylistID: a.PlaylistID, VideoID: videoID}, err))
		return
	}
	if cfg.MaxDurationMinutes > 0 && info.Duration > time.Duration(cfg.MaxDurationMinutes)*time.Minute {
		dispatch(operationFailed(types.CategoryValidation, "AddVideo", "video exceeds the maximum allowed duration", types.OperationContext{PlaylistID: a.PlaylistID, VideoID: videoID}, nil))
		return
	}
	if cfg.MinViews > 0 && info.Views < cfg.MinViews {
		dispatch(operationFailed(types.CategoryValidation, "AddVideo", "video has insufficient views", types.OperationContext{PlaylistID: a.PlaylistID, VideoID: videoID}, nil))
		return
	}

	state := getState()
	if cfg.RepeatLimit > 0 && recentlyPlayed(state.Queue.Videos, state.Queue.PlaybackHistory, videoID, cfg.RepeatLimit) {
		dispatch(operationFailed(types.CategoryValidation, "AddVideo", "video was played too recently", types.OperationContext{PlaylistID: a.PlaylistID, VideoID: videoID}, nil))
		return
	}

	p, err := c.Playlists.GetByID(a.PlaylistID)
	if err != nil {
		dispatch(operationFailed(types.CategoryTransient, "AddVideo", "failed to load playlist", types.OperationContext{PlaylistID: a.PlaylistID}, err))
		return
	}
	if p == nil {
		dispatch(operationFailed(types.CategoryNotFound, "AddVideo", "playlist not found", types.OperationContext{PlaylistID: a.PlaylistID}, nil))
		return
	}
	if cfg.MaxQueueSize > 0 && len(p.Videos) >= cfg.MaxQueueSize {
		dispatch(operationFailed(types.CategoryValidation, "AddVideo", "queue is full", types.OperationContext{PlaylistID: a.PlaylistID}, nil))
		return
	}

	title := a.Title
	if title == "" {
		title = info.Title
	}
	addedBy := a.AddedBy
	if addedBy == "" {
		addedBy = "User"
	}
	video := types.VideoItem{
		ID:         uuid.NewString(),
		YoutubeID:  videoID,
		Title:      title,
		Duration:   info.Duration,
		AddedAt:    time.Now(),
		Position:   len(p.Videos),
		PlaylistID: a.PlaylistID,
	}
	if err := c.Playlists.AddVideoToPlaylist(a.PlaylistID, video); err != nil {
		dispatch(operationFailed(types.CategoryExternal, "AddVideo", "failed to add video to playlist", types.OperationContext{PlaylistID: a.PlaylistID, VideoID: videoID}, err))
		return
	}

	updated, err := c.Playlists.GetByID(a.PlaylistID)
	if err != nil || updated == nil {
		dispatch(operationFailed(types.CategoryTransient, "AddVideo", "failed to reload playlist after add", types.OperationContext{PlaylistID: a.PlaylistID}, err))
		return
	}
	dispatch(types.PlaylistLoaded{Playlist: *updated})
	dispatch(successNotification("Added \"" + title + "\" to the queue"))

	if a.Paid {
		newIndex := len(updated.Videos) - 1
		if newIndex > 0 {
			dispatch(types.SortChanged{OldIndex: newIndex, NewIndex: 0})
		}
	}
}

// recentlyPlayed implements the teacher's canRepeat rejection
// (player.go:351-364, main.go:356-365): PlaybackHistory holds VideoItem.ID
// values (pushed by playback.ComputeNext and the reducer's SelectVideo
// handler), a different namespace
// than the raw YouTube id passed in, so history entries are resolved back
// to YouTube ids via videos before comparing.
func recentlyPlayed(videos []types.VideoItem, history []string, videoID string, limit int) bool {
	youtubeIDByItemID := make(map[string]string, len(videos))
	for _, v := range videos {
		youtubeIDByItemID[v.ID] = v.YoutubeID
	}
	count := 0
	for i := len(history) - 1; i >= 0 && count < limit; i-- {
		if youtubeIDByItemID[history[i]] == videoID {
			count++
		}
	}
	return count >= limit
}

func (c Collaborators) handleCleanup(getState func() types.RootState, dispatch func(types.Action)) {
	cfg := c.Config.Get()
	if cfg.CleanupAfterHours <= 0 {
		return
	}
	cutoff := time.Now().Add(-time.Duration(cfg.CleanupAfterHours) * time.Hour)

	playlists, err := c.Playlists.GetAll()
	if err != nil {
		dispatch(operationFailed(types.CategoryTransient, "CleanupRequested", "failed to load playlists for cleanup", types.OperationContext{}, err))
		return
	}

	pruned := false
	for _, p := range playlists {
		for _, v := range p.Videos {
			if v.AddedAt.Before(cutoff) {
				if err := c.Playlists.RemoveVideoFromPlaylist(p.ID, v.ID); err != nil {
					dispatch(operationFailed(types.CategoryTransient, "CleanupRequested", "failed to prune stale video", types.OperationContext{PlaylistID: p.ID, VideoID: v.ID}, err))
					continue
				}
				pruned = true
			}
		}
	}
	if !pruned {
		return
	}

	all, err := c.Playlists.GetAll()
	if err != nil {
		dispatch(operationFailed(types.CategoryTransient, "CleanupRequested", "failed to reload playlists after cleanup", types.OperationContext{}, err))
		return
	}
	dispatch(types.PlaylistsLoaded{Playlists: all})

	selected := getState().Queue.SelectedPlaylistID
	if selected == nil {
		return
	}
	for _, p := range all {
		if p.ID == *selected {
			dispatch(types.PlaylistLoaded{Playlist: p})
			return
		}
	}
}
