// Package config owns arcflow's runtime configuration, loaded from a JSON
// file and hot-reloaded on write. Grounded directly on the teacher's
// config.go: same struct shape, same fsnotify watch loop, extended with
// ExportDir for the download collaborator.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Config holds the tunables the effects table and collaborators consult.
type Config struct {
	Port               int    `json:"port"`
	MaxDurationMinutes int    `json:"max_duration_minutes"`
	MinViews           int    `json:"min_views"`
	RepeatLimit        int    `json:"repeat_limit"`
	CleanupAfterHours  int    `json:"cleanup_after_hours"`
	MaxQueueSize       int    `json:"max_queue_size"`
	YouTubeAPIKey      string `json:"youtube_api_key"`
	ExportDir          string `json:"export_dir"`
	BoltPath           string `json:"bolt_path"`
}

func normalize(cfg *Config) {
	if cfg.MaxQueueSize == 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if cfg.BoltPath == "" {
		cfg.BoltPath = "arcflow.db"
	}
}

// Manager owns the current Config under a RWMutex and watches its source
// file for writes.
type Manager struct {
	mu   sync.RWMutex
	cfg  Config
	path string
	log  zerolog.Logger
}

// Load reads path, normalizes defaults, and returns a ready Manager.
func Load(path string, log zerolog.Logger) (*Manager, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manager{cfg: cfg, path: path, log: log.With().Str("component", "config").Logger()}, nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	normalize(&cfg)
	return cfg, nil
}

// Get returns a copy of the current config.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch blocks, reloading the config whenever path is written. Intended to
// run in its own goroutine; returns only on a fatal watcher setup error.
func (m *Manager) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) == filepath.Base(m.path) && event.Has(fsnotify.Write) {
				m.reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (m *Manager) reload() {
	cfg, err := readConfig(m.path)
	if err != nil {
		m.log.Warn().Err(err).Msg("config reload failed")
		return
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	m.log.Info().Msg("config reloaded")
}
