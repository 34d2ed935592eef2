package usecase

import (
	"fmt"

	"reco/internal/adapter/cache"
	"reco/internal/adapter/reranker"
	"reco/internal/domain"
	"reco/internal/port"
)

// RecommendUseCase composes the popularity ranker with the diversity
// reranker to build recommendation slates.
type RecommendUseCase struct {
	ranker     port.Ranker
	reranker   port.SlateReranker
	cache      *cache.CandidateCache
	poolSize   int
	minRatings int
}

// NewRecommendUseCase creates a new recommend use case. The cache may be nil.
func NewRecommendUseCase(
	ranker port.Ranker,
	slateReranker port.SlateReranker,
	candidateCache *cache.CandidateCache,
	poolSize int,
	minRatings int,
) *RecommendUseCase {
	return &RecommendUseCase{
		ranker:     ranker,
		reranker:   slateReranker,
		cache:      candidateCache,
		poolSize:   poolSize,
		minRatings: minRatings,
	}
}

// Recommend builds a genre-diversified slate of the given size.
func (u *RecommendUseCase) Recommend(slateSize int) ([]domain.Candidate, error) {
	pool, err := u.candidates()
	if err != nil {
		return nil, err
	}
	return u.reranker.Rerank(pool, slateSize)
}

// RecommendPlain builds a slate in plain score order, for comparison against
// the diversified output.
func (u *RecommendUseCase) RecommendPlain(slateSize int) ([]domain.Candidate, error) {
	if slateSize <= 0 {
		return nil, fmt.Errorf("%w: %d", reranker.ErrInvalidSlateSize, slateSize)
	}
	pool, err := u.candidates()
	if err != nil {
		return nil, err
	}
	if len(pool) > slateSize {
		pool = pool[:slateSize]
	}
	return pool, nil
}

func (u *RecommendUseCase) candidates() ([]domain.Candidate, error) {
	if u.cache != nil {
		if pool, ok := u.cache.Get(u.poolSize, u.minRatings); ok {
			return pool, nil
		}
	}
	pool, err := u.ranker.Rank(u.poolSize)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Put(u.poolSize, u.minRatings, pool)
	}
	return pool, nil
}

// RecommendationResult is a simplified result for CLI output.
type RecommendationResult struct {
	Rank      int      `json:"rank"`
	MovieID   int      `json:"movie_id"`
	Title     string   `json:"title"`
	Genres    []string `json:"genres,omitempty"`
	Score     float64  `json:"score"`
	AvgRating float64  `json:"avg_rating"`
	Ratings   int      `json:"ratings"`
}

// BuildResults converts a slate into display results.
func BuildResults(slate []domain.Candidate) []RecommendationResult {
	results := make([]RecommendationResult, len(slate))
	for i, c := range slate {
		results[i] = RecommendationResult{
			Rank:      i + 1,
			MovieID:   c.Movie.ID,
			Title:     c.Movie.Title,
			Genres:    c.Movie.Genres,
			Score:     c.Score,
			AvgRating: c.AvgRating,
			Ratings:   c.Ratings,
		}
	}
	return results
}
