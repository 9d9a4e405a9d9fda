package session

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/cinegraph/cinegraph/errors"
	"github.com/cinegraph/cinegraph/graph"
)

// Prefs holds user preferences that survive restarts.
type Prefs struct {
	// LayoutMode is the last active layout mode.
	LayoutMode string `toml:"layout_mode"`
}

// DefaultPrefs returns preferences for a first run.
func DefaultPrefs() Prefs {
	return Prefs{LayoutMode: string(graph.ModeSimilarity)}
}

// PrefsPath returns the default preferences file location.
func PrefsPath() string {
	return filepath.Join(ConfigDir(), "prefs.toml")
}

// LoadPrefs reads preferences from path. A missing file or an unknown
// stored mode yields defaults rather than an error.
func LoadPrefs(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPrefs(), nil
		}
		return DefaultPrefs(), errors.Wrap(err, "failed to read prefs file")
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return DefaultPrefs(), errors.Wrap(err, "failed to parse prefs file")
	}
	if !graph.Mode(p.LayoutMode).Valid() {
		p.LayoutMode = string(graph.ModeSimilarity)
	}
	return p, nil
}

// SavePrefs writes preferences to path, creating parent directories as
// needed.
func SavePrefs(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create prefs directory")
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "failed to encode prefs")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write prefs file")
	}
	return nil
}
