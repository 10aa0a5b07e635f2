package lysa

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.SceneDirectory != "res/scenes" || s.ModelsDirectory != "res/models" {
		t.Fatalf("directory defaults wrong: %+v", s)
	}
	if s.Export != ExportScene || s.Resources != ResourceExport {
		t.Fatalf("mode defaults wrong: %+v", s)
	}
	if s.Format != FormatBC7 || !s.ReconcileMeshNames || !s.ConvertAssets || !s.ResourcesDescription {
		t.Fatalf("flag defaults wrong: %+v", s)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.toml")
	body := `
project_directory = "/game"
export = "resources"
format = "bc1"
threads = 4
reconcile_mesh_names = false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.ProjectDirectory != "/game" || s.Export != ExportResources {
		t.Fatalf("overrides lost: %+v", s)
	}
	if s.Format != FormatBC1 || s.Threads != 4 || s.ReconcileMeshNames {
		t.Fatalf("overrides lost: %+v", s)
	}
	// Untouched keys keep their defaults.
	if s.SceneDirectory != "res/scenes" || !s.ConvertAssets {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestValidatePreflight(t *testing.T) {
	project := t.TempDir()
	s := DefaultSettings()
	s.ProjectDirectory = project

	if err := s.Validate(""); !errors.Is(err, ErrMissingSaveLocation) {
		t.Fatalf("expected ErrMissingSaveLocation, got %v", err)
	}

	if err := s.Validate("level.blend"); !errors.Is(err, ErrInvalidSceneDirectory) {
		t.Fatalf("expected ErrInvalidSceneDirectory, got %v", err)
	}
	if err := os.MkdirAll(s.ScenePath(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := s.Validate("level.blend"); !errors.Is(err, ErrInvalidModelsDirectory) {
		t.Fatalf("expected ErrInvalidModelsDirectory, got %v", err)
	}
	if err := os.MkdirAll(s.ModelsPath(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := s.Validate("level.blend"); err != nil {
		t.Fatalf("expected valid settings, got %v", err)
	}

	s.Format = "bc9"
	if err := s.Validate("level.blend"); err == nil {
		t.Fatal("unknown compression format must fail")
	}
}

func TestValidateProjectDirectory(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate("level.blend"); !errors.Is(err, ErrInvalidProjectDirectory) {
		t.Fatalf("unset project must fail: %v", err)
	}
	s.ProjectDirectory = filepath.Join(t.TempDir(), "missing")
	if err := s.Validate("level.blend"); !errors.Is(err, ErrInvalidProjectDirectory) {
		t.Fatalf("missing project dir must fail: %v", err)
	}
}
