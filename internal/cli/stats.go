package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"reco/config"
	"reco/internal/adapter/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show totals and the genre distribution of the ingested catalog.

Example:
  reco stats -d /data/ml-1m`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	dataDir := GetDataDir()

	dbPath := config.CatalogDBPath(dataDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no catalog found. Run 'reco ingest' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Catalog: %s\n\n", dbPath)
	fmt.Printf("  Movies:          %d\n", stats.TotalMovies)
	fmt.Printf("  Ratings:         %d\n", stats.TotalRatings)
	fmt.Printf("  Distinct genres: %d\n", stats.DistinctGenres)

	movies, err := st.ListMovies()
	if err != nil {
		return fmt.Errorf("failed to list movies: %w", err)
	}
	if len(movies) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, m := range movies {
		for _, g := range m.Genres {
			counts[g]++
		}
	}

	type genreCount struct {
		genre string
		count int
	}
	distribution := make([]genreCount, 0, len(counts))
	for g, c := range counts {
		distribution = append(distribution, genreCount{g, c})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].count != distribution[j].count {
			return distribution[i].count > distribution[j].count
		}
		return distribution[i].genre < distribution[j].genre
	})

	fmt.Printf("\nGenre distribution:\n")
	for _, gc := range distribution {
		fmt.Printf("  %-14s %d\n", gc.genre, gc.count)
	}

	return nil
}
