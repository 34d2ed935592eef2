package domain

type Movie struct {
	ID     int
	Title  string
	Genres []string
}

type RatingStat struct {
	MovieID int
	Count   int
	Sum     float64
}

// Mean returns the average rating, or 0 when no ratings were observed.
func (s RatingStat) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

type Candidate struct {
	Movie     Movie
	Score     float64
	AvgRating float64
	Ratings   int
}

type Stats struct {
	TotalMovies    int
	TotalRatings   int
	DistinctGenres int
}
