package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/goldbarth/arcflow/internal/api"
	"github.com/goldbarth/arcflow/internal/collaborators/download"
	"github.com/goldbarth/arcflow/internal/collaborators/player"
	"github.com/goldbarth/arcflow/internal/collaborators/playlistservice"
	"github.com/goldbarth/arcflow/internal/collaborators/youtube"
	"github.com/goldbarth/arcflow/internal/config"
	"github.com/goldbarth/arcflow/internal/core/effects"
	"github.com/goldbarth/arcflow/internal/core/store"
	"github.com/goldbarth/arcflow/internal/core/types"
)

func main() {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	configPath := "config.json"
	if v := os.Getenv("ARCFLOW_CONFIG"); v != "" {
		configPath = v
	}
	cfgManager, err := config.Load(configPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	go func() {
		if err := cfgManager.Watch(); err != nil {
			logger.Warn().Err(err).Msg("config watcher stopped")
		}
	}()

	cfg := cfgManager.Get()

	catalog, err := playlistservice.Open(cfg.BoltPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open catalog store")
	}
	defer catalog.Close()

	ytClient := youtube.NewClient(cfg.YouTubeAPIKey)
	downloader := download.NewFilesystem(cfg.ExportDir, logger)
	playerBridge := player.NewBridge(logger)

	collaborators := effects.Collaborators{
		Playlists: catalog,
		Player:    playerBridge,
		Download:  downloader,
		YouTube:   ytClient,
		Config:    cfgManager,
		Log:       logger,
	}

	st := store.New(types.NewRootState(), effects.Run(collaborators), logger)
	defer st.Dispose()

	playerBridge.OnStateChanged(func(ytStateCode int, videoID string) {
		st.Dispatch(types.PlayerStateChanged{YTStateCode: ytStateCode, VideoID: videoID})
	})
	playerBridge.OnEnded(func() {
		st.Dispatch(types.VideoEnded{})
	})

	hub := api.NewHub()
	api.BroadcastLoop(st, hub)

	server := api.NewServer(st, hub, playerBridge)
	mux := http.NewServeMux()
	server.Register(mux)

	go cleanupLoop(st, cfgManager)

	st.Dispatch(types.Initialize{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Msg("arcflow server starting")
	logger.Fatal().Err(http.ListenAndServe(addr, mux)).Msg("server failed")
}

// cleanupLoop dispatches the periodic stale-item cleanup supplemented from
// the teacher's cleanupOldTracks ticker (SPEC_FULL.md §4).
func cleanupLoop(st *store.Store, cfgManager *config.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if cfgManager.Get().CleanupAfterHours > 0 {
			st.Dispatch(types.CleanupRequested{})
		}
	}
}
