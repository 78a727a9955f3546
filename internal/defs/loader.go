// internal/defs/loader.go
package defs

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var embeddedLevels embed.FS

// LoadLevelConfig reads a level file from disk, applies defaults and validates it.
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}
	return ParseLevelConfig(data, filepath)
}

// ParseLevelConfig decodes level YAML; source is used only in error messages.
func ParseLevelConfig(data []byte, source string) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", source, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", source, err)
	}
	return &cfg, nil
}

// LoadEmbeddedLevels loads the levels shipped with the binary, sorted by Order.
func LoadEmbeddedLevels() ([]*LevelConfig, error) {
	return loadLevelsFS(embeddedLevels, "levels")
}

// LoadLevelsDir loads every *.yaml file in dir, sorted by Order.
func LoadLevelsDir(dir string) ([]*LevelConfig, error) {
	return loadLevelsFS(os.DirFS(dir), ".")
}

func loadLevelsFS(fsys fs.FS, dir string) ([]*LevelConfig, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list level files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no level files found in %s", dir)
	}

	levels := make([]*LevelConfig, 0, len(files))
	ids := make(map[string]string, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read level file %s: %w", file, err)
		}
		cfg, err := ParseLevelConfig(data, file)
		if err != nil {
			return nil, err
		}
		if prev, dup := ids[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate level id %q in %s and %s", cfg.ID, prev, file)
		}
		ids[cfg.ID] = file
		levels = append(levels, cfg)
	}

	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Order < levels[j].Order })
	log.Printf("Loaded %d level definitions", len(levels))
	return levels, nil
}

type unitFile struct {
	Units []UnitDefinition `yaml:"units"`
}

// LoadUnitDefinitions reads unit definitions from a YAML file.
func LoadUnitDefinitions(filepath string) ([]UnitDefinition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit definitions file: %w", err)
	}
	var file unitFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unit definitions: %w", err)
	}
	if err := ValidateUnits(file.Units); err != nil {
		return nil, err
	}
	log.Printf("Loaded %d unit definitions", len(file.Units))
	return file.Units, nil
}

// ValidateUnits checks every definition and ID uniqueness.
func ValidateUnits(units []UnitDefinition) error {
	if len(units) == 0 {
		return fmt.Errorf("at least one unit definition is required")
	}
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if err := validateUnit(u); err != nil {
			return err
		}
		if seen[u.ID] {
			return fmt.Errorf("duplicate unit id %q", u.ID)
		}
		seen[u.ID] = true
	}
	return nil
}
