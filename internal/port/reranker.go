package port

import "reco/internal/domain"

type SlateReranker interface {
	Rerank(candidates []domain.Candidate, slateSize int) ([]domain.Candidate, error)
}
