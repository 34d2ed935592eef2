package port

import "reco/internal/domain"

type CatalogStore interface {
	PutMovie(movie domain.Movie) error

	GetMovie(id int) (domain.Movie, error)

	ListMovies() ([]domain.Movie, error)

	PutRatingStat(stat domain.RatingStat) error

	GetRatingStat(movieID int) (domain.RatingStat, error)

	ListRatingStats() ([]domain.RatingStat, error)

	BatchIngest(movies []domain.Movie, stats []domain.RatingStat) error

	GetStats() (domain.Stats, error)

	UpdateStats(stats domain.Stats) error

	Close() error
}
