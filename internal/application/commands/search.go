package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"videovault/internal/domain"
	"videovault/internal/ports"
)

// DefaultSearchLimit caps the number of results
const DefaultSearchLimit = 50

// SearchCommand searches the library by name and path
type SearchCommand struct {
	index  ports.SearchQuerier
	items  ItemLister
	logger *slog.Logger
	Query  string
	Limit  int
}

// NewSearchCommand creates a new SearchCommand. The index may be nil, in
// which case the in-memory library is searched directly.
func NewSearchCommand(index ports.SearchQuerier, items ItemLister, logger *slog.Logger, query string) *SearchCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchCommand{
		index:  index,
		items:  items,
		logger: logger,
		Query:  query,
		Limit:  DefaultSearchLimit,
	}
}

// Execute runs the search command and returns ranked results
func (c *SearchCommand) Execute(ctx context.Context) ([]domain.SearchHit, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	if c.index != nil {
		hits, err := c.index.Search(ctx, query, limit)
		if err == nil {
			return RankHits(hits, query), nil
		}
		c.logger.Warn("index search failed, searching library", "query", query, "error", err)
	}

	return c.localSearch(query, limit), nil
}

// localSearch fuzzy-matches the query against every display name and path
func (c *SearchCommand) localSearch(query string, limit int) []domain.SearchHit {
	items := c.items.List()
	targets := make([]string, len(items))
	for i, item := range items {
		targets[i] = item.DisplayName + " " + item.Path()
	}

	matches := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Sort(matches)

	hits := make([]domain.SearchHit, 0, min(len(matches), limit))
	for _, m := range matches {
		if len(hits) == limit {
			break
		}
		item := items[m.OriginalIndex]
		hits = append(hits, domain.SearchHit{
			ID:    item.ID,
			Name:  item.DisplayName,
			Path:  item.Path(),
			Score: 1 / float64(1+m.Distance),
		})
	}
	return hits
}

// RankHits orders hits by how well their name matches query. Hits whose name
// does not match at all keep their index order after the matching ones.
func RankHits(hits []domain.SearchHit, query string) []domain.SearchHit {
	if len(hits) < 2 {
		return hits
	}

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = strings.ToLower(h.Name)
	}
	matches := sfuzzy.Find(strings.ToLower(query), names)

	ranked := make([]domain.SearchHit, 0, len(hits))
	used := make([]bool, len(hits))
	for _, m := range matches {
		ranked = append(ranked, hits[m.Index])
		used[m.Index] = true
	}
	for i, h := range hits {
		if !used[i] {
			ranked = append(ranked, h)
		}
	}
	return ranked
}

// FilterItems returns the items whose display name fuzzy-matches query, best first
func FilterItems(items []domain.Item, query string) []domain.Item {
	if query == "" {
		return items
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = strings.ToLower(item.DisplayName)
	}
	matches := sfuzzy.Find(strings.ToLower(query), names)

	out := make([]domain.Item, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}
