package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a discovered dataset file by its role.
type Kind int

const (
	KindUnknown Kind = iota
	KindMovies
	KindRatings
)

type DatasetFile struct {
	Path string
	Kind Kind
	Size int64
}

// Walker discovers MovieLens dataset files under a data directory using
// include/exclude glob patterns.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.dat", "**/*.csv"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

func (w *Walker) Walk(root string) ([]DatasetFile, error) {
	var files []DatasetFile

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if w.shouldExclude(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, DatasetFile{
				Path: path,
				Kind: classify(path),
				Size: info.Size(),
			})
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// classify maps a file to its dataset role by base name.
func classify(path string) Kind {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(base, "movies"):
		return KindMovies
	case strings.HasPrefix(base, "ratings"):
		return KindRatings
	default:
		return KindUnknown
	}
}
