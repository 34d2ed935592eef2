package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"reco/internal/adapter/fs"
	"reco/internal/adapter/memstore"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	movies := `1::Toy Story (1995)::Animation|Children's|Comedy
2::Jumanji (1995)::Adventure|Children's|Fantasy
3::Heat (1995)::Action|Crime|Thriller
`
	ratings := `1::1::5::978300760
2::1::3::978302109
1::2::4::978301968
3::999::5::978300275
`
	if err := os.WriteFile(filepath.Join(dir, "movies.dat"), []byte(movies), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ratings.dat"), []byte(ratings), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestIngest(t *testing.T) {
	dir := writeDataset(t)
	st := memstore.NewMemoryStore()
	walker := fs.NewWalker([]string{"**/*.dat"}, nil)

	uc := NewIngestUseCase(st, walker)
	result, err := uc.Ingest(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MoviesLoaded != 3 {
		t.Errorf("expected 3 movies, got %d", result.MoviesLoaded)
	}
	if result.RatingsLoaded != 3 {
		t.Errorf("expected 3 ratings, got %d", result.RatingsLoaded)
	}
	if result.RatingsSkipped != 1 {
		t.Errorf("expected 1 skipped rating (unknown movie), got %d", result.RatingsSkipped)
	}

	stat, err := st.GetRatingStat(1)
	if err != nil {
		t.Fatalf("expected rating stat for movie 1: %v", err)
	}
	if stat.Count != 2 || stat.Sum != 8 {
		t.Errorf("movie 1: expected count 2 sum 8, got count %d sum %f", stat.Count, stat.Sum)
	}

	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalMovies != 3 {
		t.Errorf("expected TotalMovies=3, got %d", stats.TotalMovies)
	}
	if stats.TotalRatings != 3 {
		t.Errorf("expected TotalRatings=3, got %d", stats.TotalRatings)
	}
	if stats.DistinctGenres != 8 {
		t.Errorf("expected 8 distinct genres, got %d", stats.DistinctGenres)
	}
}

func TestIngestProgress(t *testing.T) {
	dir := writeDataset(t)
	st := memstore.NewMemoryStore()
	walker := fs.NewWalker([]string{"**/*.dat"}, nil)

	var calls int
	var lastProcessed, lastTotal int
	uc := NewIngestUseCase(st, walker)
	_, err := uc.Ingest(dir, func(processed, total int, currentFile string) {
		calls++
		lastProcessed, lastTotal = processed, total
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls == 0 {
		t.Fatal("expected progress callbacks")
	}
	if lastProcessed != lastTotal {
		t.Errorf("expected final progress %d/%d to be complete", lastProcessed, lastTotal)
	}
}

func TestIngestNoMoviesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ratings.dat"), []byte("1::1::5::0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	st := memstore.NewMemoryStore()
	walker := fs.NewWalker([]string{"**/*.dat"}, nil)

	uc := NewIngestUseCase(st, walker)
	if _, err := uc.Ingest(dir, nil); err == nil {
		t.Error("expected error when no movies file is present")
	}
}

func TestIngestNoRatingsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "movies.dat"), []byte("1::Solo::Drama\n"), 0644); err != nil {
		t.Fatal(err)
	}

	st := memstore.NewMemoryStore()
	walker := fs.NewWalker([]string{"**/*.dat"}, nil)

	uc := NewIngestUseCase(st, walker)
	result, err := uc.Ingest(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MoviesLoaded != 1 {
		t.Errorf("expected 1 movie, got %d", result.MoviesLoaded)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about missing ratings")
	}
}
