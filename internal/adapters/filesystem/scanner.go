package filesystem

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"videovault/internal/domain"
)

// DefaultVideoExtensions are scanned when none are configured
var DefaultVideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".webm", ".m4v"}

// Scanner walks the library roots for video files
type Scanner struct {
	roots      map[string]string
	extensions map[string]bool
	logger     *slog.Logger
}

// NewScanner creates a scanner over roots. Empty extensions means the defaults.
func NewScanner(roots map[string]string, extensions []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if len(extensions) == 0 {
		extensions = DefaultVideoExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &Scanner{roots: ExpandRoots(roots), extensions: exts, logger: logger}
}

// Scan returns every video file under the roots. Files already known by
// root and path keep their id and user-facing metadata; new files get a
// fresh id and a display name taken from the filename.
func (s *Scanner) Scan(ctx context.Context, known []domain.Item) ([]domain.Item, error) {
	byPath := make(map[string]domain.Item, len(known))
	for _, item := range known {
		byPath[item.RootKey+":"+item.Path()] = item
	}

	keys := make([]string, 0, len(s.roots))
	for key := range s.roots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var items []domain.Item
	for _, key := range keys {
		root := s.roots[key]
		found := 0
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			if d.IsDir() {
				// Skip hidden directories (.git, .thumbnails, ...)
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}

			name := d.Name()
			if strings.HasPrefix(name, ".") || !s.extensions[strings.ToLower(filepath.Ext(name))] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			dir, filename := domain.SplitPath(filepath.ToSlash(rel))
			item := domain.Item{
				Filename: filename,
				Dir:      dir,
				RootKey:  key,
				Size:     info.Size(),
				ModTime:  info.ModTime().UTC().Truncate(time.Second),
			}
			if prev, ok := byPath[key+":"+item.Path()]; ok {
				item.ID = prev.ID
				item.DisplayName = prev.DisplayName
				item.Categories = prev.Categories
				item.Thumbnail = prev.Thumbnail
			} else {
				item.ID = uuid.Must(uuid.NewV7()).String()
				item.DisplayName = domain.BaseName(filename)
			}

			items = append(items, item)
			found++
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.logger.Debug("root scanned", "root", key, "path", root, "videos", found)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].RootKey != items[j].RootKey {
			return items[i].RootKey < items[j].RootKey
		}
		return items[i].Path() < items[j].Path()
	})
	return items, nil
}
