// Package songlist loads catalog entries from song list files.
package songlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shirafune/gmrank/internal/domain/model"
)

// document mirrors the song list file shape.
type document struct {
	SelectedSongs []model.CatalogEntry `json:"selected_songs" yaml:"selected_songs"`
}

// Load reads catalog entries from a JSON or YAML song list, selected by file
// extension. Entry validation (names, ordinals, duplicates) belongs to the
// catalog package; this only decodes the file.
func Load(path string) ([]model.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read song list: %w", err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse song list %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse song list %s: %w", path, err)
		}
	}
	return doc.SelectedSongs, nil
}
