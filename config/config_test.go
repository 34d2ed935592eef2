package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rank.Candidates != 100 {
		t.Errorf("expected Candidates=100, got %d", cfg.Rank.Candidates)
	}
	if cfg.Rank.MinRatings != 50 {
		t.Errorf("expected MinRatings=50, got %d", cfg.Rank.MinRatings)
	}
	if cfg.Recommend.SlateSize != 10 {
		t.Errorf("expected SlateSize=10, got %d", cfg.Recommend.SlateSize)
	}
	if !cfg.Recommend.Diversify {
		t.Error("expected Diversify=true by default")
	}
	if len(cfg.Ingest.Includes) == 0 {
		t.Error("expected default include patterns")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "reco.yaml")

	content := `
rank:
  candidates: 250
  min_ratings: 10
recommend:
  slate_size: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Rank.Candidates != 250 {
		t.Errorf("expected Candidates=250, got %d", cfg.Rank.Candidates)
	}
	if cfg.Rank.MinRatings != 10 {
		t.Errorf("expected MinRatings=10, got %d", cfg.Rank.MinRatings)
	}
	if cfg.Recommend.SlateSize != 5 {
		t.Errorf("expected SlateSize=5, got %d", cfg.Recommend.SlateSize)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "reco.yaml")

	content := `
recommend:
  slate_size: 25
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Recommend.SlateSize != 25 {
		t.Errorf("expected SlateSize=25, got %d", cfg.Recommend.SlateSize)
	}
}

func TestLoadFromDir_Defaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Recommend.SlateSize != 10 {
		t.Errorf("expected default SlateSize=10, got %d", cfg.Recommend.SlateSize)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "reco.yaml")

	cfg := DefaultConfig()
	cfg.Rank.Candidates = 42
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Rank.Candidates != 42 {
		t.Errorf("expected Candidates=42 after reload, got %d", loaded.Rank.Candidates)
	}
}

func TestCatalogDBPath(t *testing.T) {
	path := CatalogDBPath("/data/ml-1m")
	want := filepath.Join("/data/ml-1m", ".reco", "catalog.db")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
}
