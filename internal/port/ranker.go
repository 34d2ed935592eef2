package port

import "reco/internal/domain"

type Ranker interface {
	Rank(limit int) ([]domain.Candidate, error)
}
