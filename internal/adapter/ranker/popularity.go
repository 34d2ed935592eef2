package ranker

import (
	"sort"

	"reco/internal/domain"
	"reco/internal/port"
)

// PopularityRanker scores movies by mean rating times rating count, so a
// movie rated 4.0 by a thousand users outranks one rated 5.0 by three.
type PopularityRanker struct {
	store      port.CatalogStore
	minRatings int
}

// NewPopularityRanker creates a new popularity ranker. Movies with fewer
// than minRatings ratings are excluded from the candidate pool.
func NewPopularityRanker(store port.CatalogStore, minRatings int) *PopularityRanker {
	if minRatings < 1 {
		minRatings = 1
	}
	return &PopularityRanker{
		store:      store,
		minRatings: minRatings,
	}
}

// Rank returns up to limit candidates sorted descending by score. Ties are
// broken by ascending movie ID so repeated runs produce the same order.
func (r *PopularityRanker) Rank(limit int) ([]domain.Candidate, error) {
	stats, err := r.store.ListRatingStats()
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(stats))
	for _, s := range stats {
		if s.Count < r.minRatings {
			continue
		}
		movie, err := r.store.GetMovie(s.MovieID)
		if err != nil {
			// Rating stat for a movie missing from the catalog.
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Movie:     movie,
			Score:     s.Mean() * float64(s.Count),
			AvgRating: s.Mean(),
			Ratings:   s.Count,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Movie.ID < candidates[j].Movie.ID
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
