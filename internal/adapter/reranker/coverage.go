package reranker

import (
	"errors"
	"fmt"
	"sort"

	"reco/internal/domain"
)

var (
	ErrInvalidSlateSize   = errors.New("slate size must be positive")
	ErrDuplicateCandidate = errors.New("duplicate candidate id")
)

// CoverageReranker reorders a score-sorted candidate list so that as many
// distinct genres as possible appear within the slate, then fills the
// remaining slots by score.
type CoverageReranker struct{}

// NewCoverageReranker creates a new coverage reranker.
func NewCoverageReranker() *CoverageReranker {
	return &CoverageReranker{}
}

// Rerank builds a slate of min(slateSize, len(candidates)) movies in two
// phases. Phase 1 repeatedly picks the candidate that adds the most
// not-yet-covered genres, breaking ties in favor of the earlier (higher
// scored) candidate, and stops once every genre present in the pool is
// covered or no candidate adds coverage. Phase 2 appends the remaining
// candidates in descending score order.
func (r *CoverageReranker) Rerank(candidates []domain.Candidate, slateSize int) ([]domain.Candidate, error) {
	if slateSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlateSize, slateSize)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	seen := make(map[int]struct{}, len(candidates))
	universe := make(map[string]struct{})
	for _, c := range candidates {
		if _, dup := seen[c.Movie.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCandidate, c.Movie.ID)
		}
		seen[c.Movie.ID] = struct{}{}
		for _, g := range c.Movie.Genres {
			universe[g] = struct{}{}
		}
	}

	if slateSize > len(candidates) {
		slateSize = len(candidates)
	}

	covered := make(map[string]struct{}, len(universe))
	picked := make([]bool, len(candidates))
	slate := make([]domain.Candidate, 0, slateSize)

	for len(slate) < slateSize && len(covered) < len(universe) {
		bestIdx := -1
		bestGain := 0
		for i, c := range candidates {
			if picked[i] {
				continue
			}
			gain := uncoveredGenres(c.Movie.Genres, covered)
			// Strict comparison keeps the first (highest scored) candidate on ties.
			if gain > bestGain {
				bestGain = gain
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			// No remaining candidate adds coverage.
			break
		}
		picked[bestIdx] = true
		slate = append(slate, candidates[bestIdx])
		for _, g := range candidates[bestIdx].Movie.Genres {
			covered[g] = struct{}{}
		}
	}

	remaining := make([]domain.Candidate, 0, len(candidates)-len(slate))
	for i, c := range candidates {
		if !picked[i] {
			remaining = append(remaining, c)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Score > remaining[j].Score
	})

	placed := make(map[int]struct{}, len(slate))
	for _, c := range slate {
		placed[c.Movie.ID] = struct{}{}
	}
	for _, c := range remaining {
		if len(slate) >= slateSize {
			break
		}
		if _, ok := placed[c.Movie.ID]; ok {
			continue
		}
		placed[c.Movie.ID] = struct{}{}
		slate = append(slate, c)
	}

	return slate, nil
}

// uncoveredGenres counts the genres of a candidate not yet in covered.
func uncoveredGenres(genres []string, covered map[string]struct{}) int {
	n := 0
	for _, g := range genres {
		if _, ok := covered[g]; !ok {
			n++
		}
	}
	return n
}

// GenreCoverage counts the distinct genres represented across a slate.
func GenreCoverage(slate []domain.Candidate) int {
	genres := make(map[string]struct{})
	for _, c := range slate {
		for _, g := range c.Movie.Genres {
			genres[g] = struct{}{}
		}
	}
	return len(genres)
}
