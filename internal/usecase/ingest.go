package usecase

import (
	"fmt"
	"sort"

	"reco/internal/adapter/dataset"
	"reco/internal/adapter/fs"
	"reco/internal/domain"
	"reco/internal/port"
)

// IngestUseCase loads MovieLens dataset files into the catalog store.
type IngestUseCase struct {
	store  port.CatalogStore
	walker *fs.Walker
}

// NewIngestUseCase creates a new ingest use case.
func NewIngestUseCase(store port.CatalogStore, walker *fs.Walker) *IngestUseCase {
	return &IngestUseCase{
		store:  store,
		walker: walker,
	}
}

// IngestResult contains the results of an ingest operation.
type IngestResult struct {
	FilesScanned   int
	MoviesLoaded   int
	RatingsLoaded  int
	RatingsSkipped int
	Warnings       []string
}

// ProgressFunc reports ingest progress per dataset file.
type ProgressFunc func(processed, total int, currentFile string)

// Ingest discovers dataset files under root, aggregates ratings per movie,
// and writes the catalog in one batch.
func (u *IngestUseCase) Ingest(root string, progress ProgressFunc) (*IngestResult, error) {
	result := &IngestResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset directory: %w", err)
	}

	var movieFiles, ratingFiles []fs.DatasetFile
	for _, f := range files {
		switch f.Kind {
		case fs.KindMovies:
			movieFiles = append(movieFiles, f)
		case fs.KindRatings:
			ratingFiles = append(ratingFiles, f)
		}
	}
	result.FilesScanned = len(movieFiles) + len(ratingFiles)

	if len(movieFiles) == 0 {
		return nil, fmt.Errorf("no movies file found under %s", root)
	}
	if len(ratingFiles) == 0 {
		result.Warnings = append(result.Warnings, "no ratings file found; catalog will have no scores")
	}

	total := result.FilesScanned
	processed := 0

	movies := make(map[int]domain.Movie)
	for _, f := range movieFiles {
		if progress != nil {
			progress(processed, total, f.Path)
		}
		parsed, warnings, err := dataset.ParseMovies(f.Path)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)
		for _, m := range parsed {
			if _, dup := movies[m.ID]; dup {
				result.Warnings = append(result.Warnings, fmt.Sprintf("duplicate movie id %d; keeping first occurrence", m.ID))
				continue
			}
			movies[m.ID] = m
		}
		processed++
		if progress != nil {
			progress(processed, total, f.Path)
		}
	}

	agg := make(map[int]*domain.RatingStat)
	for _, f := range ratingFiles {
		if progress != nil {
			progress(processed, total, f.Path)
		}
		n, warnings, err := dataset.ParseRatings(f.Path, func(movieID int, value float64) {
			if _, known := movies[movieID]; !known {
				result.RatingsSkipped++
				return
			}
			stat, ok := agg[movieID]
			if !ok {
				stat = &domain.RatingStat{MovieID: movieID}
				agg[movieID] = stat
			}
			stat.Count++
			stat.Sum += value
		})
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.RatingsLoaded += n
		processed++
		if progress != nil {
			progress(processed, total, f.Path)
		}
	}
	result.RatingsLoaded -= result.RatingsSkipped

	if result.RatingsSkipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d ratings referenced movies missing from the catalog", result.RatingsSkipped))
	}

	movieList := make([]domain.Movie, 0, len(movies))
	genres := make(map[string]struct{})
	for _, m := range movies {
		movieList = append(movieList, m)
		for _, g := range m.Genres {
			genres[g] = struct{}{}
		}
	}
	// Deterministic write order keeps batch ingest reproducible.
	sort.Slice(movieList, func(i, j int) bool { return movieList[i].ID < movieList[j].ID })

	statList := make([]domain.RatingStat, 0, len(agg))
	for _, st := range agg {
		statList = append(statList, *st)
	}
	sort.Slice(statList, func(i, j int) bool { return statList[i].MovieID < statList[j].MovieID })

	if err := u.store.BatchIngest(movieList, statList); err != nil {
		return nil, fmt.Errorf("failed to write catalog: %w", err)
	}

	stats := domain.Stats{
		TotalMovies:    len(movieList),
		TotalRatings:   result.RatingsLoaded,
		DistinctGenres: len(genres),
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	result.MoviesLoaded = len(movieList)

	return result, nil
}
