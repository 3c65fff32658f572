// Package config loads reqgen's scan configuration.
//
// Configuration is loaded once at startup and treated as immutable. Defaults
// are compiled in; a project may extend them with an optional .reqgen.toml
// file in its root:
//
//	ignore = ["build", "dist"]
//
//	[aliases]
//	cv2 = "opencv-python"
//	yaml = "pyyaml"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/larajo/reqgen/pkg/errors"
)

// Filename is the optional per-project configuration file.
const Filename = ".reqgen.toml"

// Config holds scanner configuration: the import-name alias table and the
// directory names pruned during traversal.
type Config struct {
	// Aliases maps an import-time module name to its installed distribution
	// name. Some packages are imported under a different name than the one
	// pip installs them as (e.g., "pil" is installed as "pillow").
	Aliases map[string]string `toml:"aliases"`

	// Ignore lists directory names skipped during the project scan.
	Ignore []string `toml:"ignore"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Aliases: map[string]string{
			"pil": "pillow",
		},
		Ignore: []string{".git", "__pycache__", ".vscode", ".venv"},
	}
}

// Load returns the configuration for the project at dir: the defaults,
// extended by a .reqgen.toml file if one exists. A missing file is not an
// error; an unparsable one is.
//
// File aliases are merged over the defaults (file entries win on conflict);
// file ignore entries are appended to the default set, deduplicated.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", Filename)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", Filename)
	}

	for imp, dist := range file.Aliases {
		cfg.Aliases[imp] = dist
	}

	seen := make(map[string]bool, len(cfg.Ignore))
	for _, name := range cfg.Ignore {
		seen[name] = true
	}
	for _, name := range file.Ignore {
		if !seen[name] {
			seen[name] = true
			cfg.Ignore = append(cfg.Ignore, name)
		}
	}

	return cfg, nil
}
