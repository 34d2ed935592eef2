package memstore

import (
	"fmt"
	"sync"

	"reco/internal/domain"
)

type MemoryStore struct {
	mu     sync.RWMutex
	movies map[int]domain.Movie
	stats  map[int]domain.RatingStat
	corpus domain.Stats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies: make(map[int]domain.Movie),
		stats:  make(map[int]domain.RatingStat),
	}
}

func (s *MemoryStore) PutMovie(movie domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[movie.ID] = movie
	return nil
}

func (s *MemoryStore) GetMovie(id int) (domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movie, ok := s.movies[id]
	if !ok {
		return domain.Movie{}, fmt.Errorf("movie not found: %d", id)
	}
	return movie, nil
}

func (s *MemoryStore) ListMovies() ([]domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		movies = append(movies, m)
	}
	return movies, nil
}

func (s *MemoryStore) PutRatingStat(stat domain.RatingStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[stat.MovieID] = stat
	return nil
}

func (s *MemoryStore) GetRatingStat(movieID int) (domain.RatingStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stat, ok := s.stats[movieID]
	if !ok {
		return domain.RatingStat{}, fmt.Errorf("rating stat not found: %d", movieID)
	}
	return stat, nil
}

func (s *MemoryStore) ListRatingStats() ([]domain.RatingStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]domain.RatingStat, 0, len(s.stats))
	for _, st := range s.stats {
		stats = append(stats, st)
	}
	return stats, nil
}

func (s *MemoryStore) BatchIngest(movies []domain.Movie, stats []domain.RatingStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movies {
		s.movies[m.ID] = m
	}
	for _, st := range stats {
		s.stats[st.MovieID] = st
	}
	return nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus, nil
}

func (s *MemoryStore) UpdateStats(stats domain.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = stats
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
