package lysa

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings mirrors the host tool's per-project export panel. Directories
// are forward-slash separated and relative to ProjectDirectory.
type Settings struct {
	ProjectDirectory     string            `toml:"project_directory"`
	SceneDirectory       string            `toml:"scene_directory"`
	ModelsDirectory      string            `toml:"models_directory"`
	Export               ExportMode        `toml:"export"`
	Resources            ResourceMode      `toml:"resources"`
	ResourcesDescription bool              `toml:"resources_description"`
	ConvertAssets        bool              `toml:"convert_assets"`
	LinkFile             string            `toml:"link_file"`
	Threads              int               `toml:"threads"`
	Format               CompressionFormat `toml:"format"`
	ReconcileMeshNames   bool              `toml:"reconcile_mesh_names"`
}

// DefaultSettings returns the host panel defaults.
func DefaultSettings() Settings {
	return Settings{
		SceneDirectory:       "res/scenes",
		ModelsDirectory:      "res/models",
		Export:               ExportScene,
		Resources:            ResourceExport,
		ResourcesDescription: true,
		ConvertAssets:        true,
		Format:               FormatBC7,
		ReconcileMeshNames:   true,
	}
}

// LoadSettings reads a TOML settings file over the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Pre-flight validation failures. All abort before any document is built.
var (
	ErrMissingSaveLocation     = errors.New("missing save location")
	ErrInvalidProjectDirectory = errors.New("invalid project directory")
	ErrInvalidSceneDirectory   = errors.New("invalid scene directory")
	ErrInvalidModelsDirectory  = errors.New("invalid models directory")
)

// Validate runs the pre-flight checks the host tool performs before an
// export: the source file must be saved and the configured directories
// must exist. sourcePath is the saved host file the export is named after.
func (s Settings) Validate(sourcePath string) error {
	if sourcePath == "" {
		return ErrMissingSaveLocation
	}
	if s.ProjectDirectory == "" {
		return fmt.Errorf("%w: not set", ErrInvalidProjectDirectory)
	}
	if !isDir(s.ProjectDirectory) {
		return fmt.Errorf("%w: %s", ErrInvalidProjectDirectory, s.ProjectDirectory)
	}
	if s.SceneDirectory == "" {
		return fmt.Errorf("%w: not set", ErrInvalidSceneDirectory)
	}
	if !isDir(s.ScenePath()) {
		return fmt.Errorf("%w: %s", ErrInvalidSceneDirectory, s.SceneDirectory)
	}
	if s.ModelsDirectory == "" {
		return fmt.Errorf("%w: not set", ErrInvalidModelsDirectory)
	}
	if !isDir(s.ModelsPath()) {
		return fmt.Errorf("%w: %s", ErrInvalidModelsDirectory, s.ModelsDirectory)
	}
	switch s.Format {
	case FormatBC1, FormatBC2, FormatBC3, FormatBC7:
	default:
		return fmt.Errorf("unknown compression format %q", s.Format)
	}
	return nil
}

// ScenePath returns the absolute scene resource directory.
func (s Settings) ScenePath() string {
	return filepath.Join(s.ProjectDirectory, filepath.FromSlash(s.SceneDirectory))
}

// ModelsPath returns the absolute models resource directory.
func (s Settings) ModelsPath() string {
	return filepath.Join(s.ProjectDirectory, filepath.FromSlash(s.ModelsDirectory))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
