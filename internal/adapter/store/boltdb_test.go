package store

import (
	"path/filepath"
	"testing"

	"reco/config"
	"reco/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestMovieRoundTrip(t *testing.T) {
	st := newTestStore(t)

	movie := domain.Movie{ID: 1, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}}
	if err := st.PutMovie(movie); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetMovie(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != movie.Title {
		t.Errorf("expected title %q, got %q", movie.Title, got.Title)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Animation" {
		t.Errorf("unexpected genres: %v", got.Genres)
	}

	if _, err := st.GetMovie(999); err == nil {
		t.Error("expected error for missing movie")
	}
}

func TestBatchIngestAndList(t *testing.T) {
	st := newTestStore(t)

	movies := []domain.Movie{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Action"}},
	}
	stats := []domain.RatingStat{
		{MovieID: 1, Count: 3, Sum: 12},
		{MovieID: 2, Count: 1, Sum: 5},
	}
	if err := st.BatchIngest(movies, stats); err != nil {
		t.Fatal(err)
	}

	gotMovies, err := st.ListMovies()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotMovies) != 2 {
		t.Errorf("expected 2 movies, got %d", len(gotMovies))
	}

	gotStats, err := st.ListRatingStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotStats) != 2 {
		t.Errorf("expected 2 rating stats, got %d", len(gotStats))
	}

	stat, err := st.GetRatingStat(1)
	if err != nil {
		t.Fatal(err)
	}
	if stat.Count != 3 || stat.Sum != 12 {
		t.Errorf("expected count 3 sum 12, got count %d sum %f", stat.Count, stat.Sum)
	}
	if stat.Mean() != 4 {
		t.Errorf("expected mean 4, got %f", stat.Mean())
	}
}

func TestStatsRoundTrip(t *testing.T) {
	st := newTestStore(t)

	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalMovies != 0 {
		t.Errorf("expected zero stats on fresh store, got %+v", stats)
	}

	want := domain.Stats{TotalMovies: 5, TotalRatings: 100, DistinctGenres: 7}
	if err := st.UpdateStats(want); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestClearKeepsSchemaInfo(t *testing.T) {
	st := newTestStore(t)
	cfg := config.DefaultConfig()

	if err := st.BatchIngest(
		[]domain.Movie{{ID: 1, Title: "A"}},
		[]domain.RatingStat{{MovieID: 1, Count: 1, Sum: 5}},
	); err != nil {
		t.Fatal(err)
	}
	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}

	movies, err := st.ListMovies()
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 0 {
		t.Errorf("expected empty catalog after clear, got %d movies", len(movies))
	}

	info, err := st.GetSchemaInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != CurrentSchemaVersion {
		t.Errorf("expected schema version %d to survive clear, got %d", CurrentSchemaVersion, info.Version)
	}
}

func TestCheckMigration(t *testing.T) {
	st := newTestStore(t)
	cfg := config.DefaultConfig()

	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration {
		t.Error("fresh store should need schema initialization")
	}

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	result, err = st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("migrated store should be up to date, got %+v", result)
	}

	changed := config.DefaultConfig()
	changed.Ingest.Includes = []string{"**/*.csv"}
	result, err = st.CheckMigration(changed)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Error("changed ingest config should force a rebuild")
	}
}
