package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// Finder locates the newest piece report in a folder
type Finder struct {
	Keywords   []string
	Extensions []string
	Exclude    []string
}

// NewFinder creates a finder for .xlsx files named like piece reports.
// The batch output file is excluded so a re-run never reads its own result.
func NewFinder() *Finder {
	return &Finder{
		Keywords:   []string{"piece", "report"},
		Extensions: []string{".xlsx"},
		Exclude:    []string{entities.BatchOutputFileName},
	}
}

// Matches reports whether a file name qualifies as a source report
func (f *Finder) Matches(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	for _, excluded := range f.Exclude {
		if strings.EqualFold(name, excluded) {
			return false
		}
	}

	ext := filepath.Ext(name)
	if !f.hasExtension(ext) {
		return false
	}

	stem := strings.ToLower(strings.TrimSuffix(name, ext))
	for _, keyword := range f.Keywords {
		if strings.Contains(stem, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (f *Finder) hasExtension(ext string) bool {
	for _, allowed := range f.Extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// FindLatest returns the most recently modified matching file in dir
func (f *Finder) FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !f.Matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = entry.Name()
			latestTime = info.ModTime()
		}
	}

	if latest == "" {
		return "", &entities.MissingInputError{
			Source: dir,
			Detail: fmt.Sprintf("no %s files with %s in the name",
				strings.Join(f.Extensions, "/"), quoteOr(f.Keywords)),
		}
	}
	return filepath.Join(dir, latest), nil
}

func quoteOr(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return strings.Join(quoted, " or ")
}
