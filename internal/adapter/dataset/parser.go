package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reco/internal/domain"
)

// noGenres is the placeholder MovieLens uses for movies without genre tags.
const noGenres = "(no genres listed)"

// RatingFunc receives one parsed rating observation.
type RatingFunc func(movieID int, value float64)

// ParseMovies reads a MovieLens movies file in either the 1M `::`-delimited
// layout or the CSV layout with a header row. Malformed lines are reported
// as warnings, not errors.
func ParseMovies(path string) ([]domain.Movie, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open movies file: %w", err)
	}
	defer f.Close()

	if isCSV(path) {
		return parseMoviesCSV(f, path)
	}
	return parseMoviesDat(f, path)
}

// ParseRatings streams a MovieLens ratings file, calling fn for every
// observation, and returns the number of ratings parsed. The raw rating log
// is never materialized in memory.
func ParseRatings(path string, fn RatingFunc) (int, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open ratings file: %w", err)
	}
	defer f.Close()

	if isCSV(path) {
		return parseRatingsCSV(f, path, fn)
	}
	return parseRatingsDat(f, path, fn)
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func parseMoviesDat(r io.Reader, path string) ([]domain.Movie, []string, error) {
	var movies []domain.Movie
	var warnings []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "::", 3)
		if len(fields) != 3 {
			warnings = append(warnings, fmt.Sprintf("%s:%d: expected 3 fields, got %d", path, lineNo, len(fields)))
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad movie id %q", path, lineNo, fields[0]))
			continue
		}
		movies = append(movies, domain.Movie{
			ID:     id,
			Title:  fields[1],
			Genres: splitGenres(fields[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return movies, warnings, nil
}

func parseMoviesCSV(r io.Reader, path string) ([]domain.Movie, []string, error) {
	var movies []domain.Movie
	var warnings []string

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, warnings, fmt.Errorf("failed to read %s: %w", path, err)
		}
		lineNo++
		if lineNo == 1 && strings.EqualFold(record[0], "movieId") {
			continue
		}
		if len(record) < 3 {
			warnings = append(warnings, fmt.Sprintf("%s:%d: expected 3 fields, got %d", path, lineNo, len(record)))
			continue
		}
		id, err := strconv.Atoi(record[0])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad movie id %q", path, lineNo, record[0]))
			continue
		}
		movies = append(movies, domain.Movie{
			ID:     id,
			Title:  record[1],
			Genres: splitGenres(record[2]),
		})
	}
	return movies, warnings, nil
}

func parseRatingsDat(r io.Reader, path string, fn RatingFunc) (int, []string, error) {
	var warnings []string
	count := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "::", 4)
		if len(fields) < 3 {
			warnings = append(warnings, fmt.Sprintf("%s:%d: expected at least 3 fields, got %d", path, lineNo, len(fields)))
			continue
		}
		movieID, err := strconv.Atoi(fields[1])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad movie id %q", path, lineNo, fields[1]))
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad rating %q", path, lineNo, fields[2]))
			continue
		}
		fn(movieID, value)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, warnings, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return count, warnings, nil
}

func parseRatingsCSV(r io.Reader, path string, fn RatingFunc) (int, []string, error) {
	var warnings []string
	count := 0

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, warnings, fmt.Errorf("failed to read %s: %w", path, err)
		}
		lineNo++
		if lineNo == 1 && strings.EqualFold(record[0], "userId") {
			continue
		}
		if len(record) < 3 {
			warnings = append(warnings, fmt.Sprintf("%s:%d: expected at least 3 fields, got %d", path, lineNo, len(record)))
			continue
		}
		movieID, err := strconv.Atoi(record[1])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad movie id %q", path, lineNo, record[1]))
			continue
		}
		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad rating %q", path, lineNo, record[2]))
			continue
		}
		fn(movieID, value)
		count++
	}
	return count, warnings, nil
}

// splitGenres splits a pipe-delimited genre field into a deduplicated set.
func splitGenres(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == noGenres {
		return nil
	}
	parts := strings.Split(field, "|")
	genres := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		g := strings.TrimSpace(p)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	return genres
}
