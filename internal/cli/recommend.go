package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"reco/config"
	"reco/internal/adapter/cache"
	"reco/internal/adapter/ranker"
	"reco/internal/adapter/reranker"
	"reco/internal/adapter/store"
	"reco/internal/domain"
	"reco/internal/usecase"
)

var (
	recommendSlateSize  int
	recommendCandidates int
	recommendJSON       bool
	recommendNoDiverse  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Build a recommendation slate",
	Long: `Build a top-N recommendation slate from the ingested catalog.
Candidates are ranked by mean rating times rating count, then re-ranked so
that as many distinct genres as possible appear in the slate.

Examples:
  reco recommend -n 10
  reco recommend -n 10 -k 200 --json
  reco recommend --no-diversify     # plain score-ordered slate`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().IntVarP(&recommendSlateSize, "slate-size", "n", 0, "slate size (default from config)")
	recommendCmd.Flags().IntVarP(&recommendCandidates, "candidates", "k", 0, "candidate pool size (default from config)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")
	recommendCmd.Flags().BoolVar(&recommendNoDiverse, "no-diversify", false, "disable genre diversification")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
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

	slateSize := cfg.Recommend.SlateSize
	if recommendSlateSize > 0 {
		slateSize = recommendSlateSize
	}
	poolSize := cfg.Rank.Candidates
	if recommendCandidates > 0 {
		poolSize = recommendCandidates
	}

	popularity := ranker.NewPopularityRanker(st, cfg.Rank.MinRatings)
	coverage := reranker.NewCoverageReranker()
	candidateCache := cache.NewCandidateCache(cfg.Recommend.CacheSize, time.Duration(cfg.Recommend.CacheTTLSecs)*time.Second)

	recommendUC := usecase.NewRecommendUseCase(popularity, coverage, candidateCache, poolSize, cfg.Rank.MinRatings)

	diversify := cfg.Recommend.Diversify && !recommendNoDiverse

	var result []domain.Candidate
	if diversify {
		result, err = recommendUC.Recommend(slateSize)
	} else {
		result, err = recommendUC.RecommendPlain(slateSize)
	}
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}
	slate := usecase.BuildResults(result)

	if recommendJSON {
		output, _ := json.MarshalIndent(slate, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(slate) == 0 {
		fmt.Println("No recommendations. The catalog may be empty or min_ratings too high.")
		return nil
	}

	mode := "diversified"
	if !diversify {
		mode = "plain"
	}
	fmt.Printf("Top %d recommendations (%s):\n\n", len(slate), mode)
	for _, r := range slate {
		genres := strings.Join(r.Genres, "|")
		if genres == "" {
			genres = "-"
		}
		fmt.Printf("%3d. %-44s score=%-9.1f avg=%.2f ratings=%-6d %s\n",
			r.Rank, truncateTitle(r.Title, 44), r.Score, r.AvgRating, r.Ratings, genres)
	}

	// Compare genre coverage against the plain score-ordered slate.
	if diversify {
		if plain, err := recommendUC.RecommendPlain(slateSize); err == nil {
			fmt.Printf("\nGenres covered: %d (plain top-%d covers %d)\n",
				reranker.GenreCoverage(result), slateSize, reranker.GenreCoverage(plain))
		}
	}

	return nil
}

func truncateTitle(title string, max int) string {
	if len(title) <= max {
		return title
	}
	return title[:max-3] + "..."
}
