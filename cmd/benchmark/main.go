package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"reco/internal/adapter/reranker"
	"reco/internal/domain"
)

var genrePool = []string{
	"Action", "Adventure", "Animation", "Children's", "Comedy", "Crime",
	"Documentary", "Drama", "Fantasy", "Film-Noir", "Horror", "Musical",
	"Mystery", "Romance", "Sci-Fi", "Thriller", "War", "Western",
}

func main() {
	pools := flag.String("pools", "20,50,100,500", "comma-separated candidate pool sizes")
	slateSize := flag.Int("slate", 10, "slate size")
	maxGenres := flag.Int("genres", 3, "max genres per synthetic movie")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	sizes, err := parseSizes(*pools)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -pools: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("GENRE DIVERSIFICATION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Slate size: %d, max genres per movie: %d, seed: %d\n\n", *slateSize, *maxGenres, *seed)

	cov := reranker.NewCoverageReranker()

	fmt.Printf("%-10s %-14s %-14s %-12s\n", "pool", "plain cov.", "divers. cov.", "rerank time")
	fmt.Println(strings.Repeat("-", 70))

	for _, n := range sizes {
		candidates := synthesize(n, *maxGenres, *seed)

		plain := candidates
		if len(plain) > *slateSize {
			plain = plain[:*slateSize]
		}

		start := time.Now()
		diversified, err := cov.Rerank(candidates, *slateSize)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rerank error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%-10d %-14d %-14d %-12s\n",
			n,
			reranker.GenreCoverage(plain),
			reranker.GenreCoverage(diversified),
			elapsed.Round(time.Microsecond))
	}
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad pool size %q", part)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no pool sizes given")
	}
	return sizes, nil
}

func synthesize(n, maxGenres int, seed int64) []domain.Candidate {
	rng := rand.New(rand.NewSource(seed))
	candidates := make([]domain.Candidate, n)
	for i := range candidates {
		count := 1 + rng.Intn(maxGenres)
		genres := make([]string, 0, count)
		seen := make(map[string]struct{}, count)
		for len(genres) < count {
			g := genrePool[rng.Intn(len(genrePool))]
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
		candidates[i] = domain.Candidate{
			Movie: domain.Movie{ID: i + 1, Title: fmt.Sprintf("Synthetic %d", i+1), Genres: genres},
			Score: float64(n - i),
		}
	}
	return candidates
}
