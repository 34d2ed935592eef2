package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"
	"reco/internal/domain"
)

var (
	bucketMovies  = []byte("movies")
	bucketRatings = []byte("rating_stats")
	bucketMeta    = []byte("meta")
	keyStats      = []byte("catalog_stats")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketMovies, bucketRatings, bucketMeta}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

type movieMeta struct {
	Title  string   `json:"title"`
	Genres []string `json:"genres,omitempty"`
}

type ratingMeta struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

func movieKey(id int) []byte {
	return []byte(strconv.Itoa(id))
}

func (s *BoltStore) PutMovie(movie domain.Movie) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putMovie(tx.Bucket(bucketMovies), movie)
	})
}

func putMovie(b *bbolt.Bucket, movie domain.Movie) error {
	data, err := json.Marshal(movieMeta{
		Title:  movie.Title,
		Genres: movie.Genres,
	})
	if err != nil {
		return err
	}
	return b.Put(movieKey(movie.ID), data)
}

func (s *BoltStore) GetMovie(id int) (domain.Movie, error) {
	var movie domain.Movie
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMovies).Get(movieKey(id))
		if data == nil {
			return fmt.Errorf("movie not found: %d", id)
		}
		var meta movieMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		movie = domain.Movie{
			ID:     id,
			Title:  meta.Title,
			Genres: meta.Genres,
		}
		return nil
	})
	return movie, err
}

func (s *BoltStore) ListMovies() ([]domain.Movie, error) {
	var movies []domain.Movie
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMovies)
		return b.ForEach(func(k, v []byte) error {
			id, err := strconv.Atoi(string(k))
			if err != nil {
				return fmt.Errorf("corrupt movie key %q: %w", k, err)
			}
			var meta movieMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			movies = append(movies, domain.Movie{
				ID:     id,
				Title:  meta.Title,
				Genres: meta.Genres,
			})
			return nil
		})
	})
	return movies, err
}

func (s *BoltStore) PutRatingStat(stat domain.RatingStat) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putRatingStat(tx.Bucket(bucketRatings), stat)
	})
}

func putRatingStat(b *bbolt.Bucket, stat domain.RatingStat) error {
	data, err := json.Marshal(ratingMeta{
		Count: stat.Count,
		Sum:   stat.Sum,
	})
	if err != nil {
		return err
	}
	return b.Put(movieKey(stat.MovieID), data)
}

func (s *BoltStore) GetRatingStat(movieID int) (domain.RatingStat, error) {
	var stat domain.RatingStat
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRatings).Get(movieKey(movieID))
		if data == nil {
			return fmt.Errorf("rating stat not found: %d", movieID)
		}
		var meta ratingMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		stat = domain.RatingStat{
			MovieID: movieID,
			Count:   meta.Count,
			Sum:     meta.Sum,
		}
		return nil
	})
	return stat, err
}

func (s *BoltStore) ListRatingStats() ([]domain.RatingStat, error) {
	var stats []domain.RatingStat
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRatings)
		return b.ForEach(func(k, v []byte) error {
			id, err := strconv.Atoi(string(k))
			if err != nil {
				return fmt.Errorf("corrupt rating key %q: %w", k, err)
			}
			var meta ratingMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			stats = append(stats, domain.RatingStat{
				MovieID: id,
				Count:   meta.Count,
				Sum:     meta.Sum,
			})
			return nil
		})
	})
	return stats, err
}

// BatchIngest writes a full dataset in one transaction.
func (s *BoltStore) BatchIngest(movies []domain.Movie, stats []domain.RatingStat) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		moviesBucket := tx.Bucket(bucketMovies)
		ratingsBucket := tx.Bucket(bucketRatings)

		for _, m := range movies {
			if err := putMovie(moviesBucket, m); err != nil {
				return err
			}
		}
		for _, st := range stats {
			if err := putRatingStat(ratingsBucket, st); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyStats, data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
