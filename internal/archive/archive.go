// Package archive reads emoji records back from a directory written by
// the sink's per-record variant.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/M3t0r/slack-emoji/internal/domain"
)

// Load parses every <name>.json file in dir into a record. Entries that
// are not regular .json files, and files that fail to parse, are
// skipped with a diagnostic; subdirectories are not descended into.
// Only a completely unreadable directory fails the whole load.
func Load(dir string) ([]domain.Emoji, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read archive directory: %w", err)
	}

	var list []domain.Emoji
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping unreadable record")
			continue
		}

		var e domain.Emoji
		if err := json.Unmarshal(data, &e); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping malformed record")
			continue
		}
		list = append(list, e)
	}
	return list, nil
}
