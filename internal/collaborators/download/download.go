// Package download is the Download collaborator interface from spec.md §6.
// In a browser the export pipeline triggers a client-side file save; this
// headless service instead writes the export text under Config.ExportDir,
// grounded on the teacher's own file-writing in cache.go's snapshot export.
package download

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Download is the narrow interface the export effect consumes.
type Download interface {
	Save(fileName, textContent string) error
}

// Filesystem saves exported text under a configured directory.
type Filesystem struct {
	dir string
	log zerolog.Logger
}

func NewFilesystem(dir string, log zerolog.Logger) *Filesystem {
	return &Filesystem{dir: dir, log: log.With().Str("component", "download").Logger()}
}

func (f *Filesystem) Save(fileName, textContent string) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to prepare export directory: %w", err)
	}
	path := filepath.Join(f.dir, filepath.Base(fileName))
	if err := os.WriteFile(path, []byte(textContent), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	f.log.Info().Str("path", path).Msg("export saved")
	return nil
}
