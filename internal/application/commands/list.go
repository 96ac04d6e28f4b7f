package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// ListCommand lists videos, optionally restricted to one root and directory
type ListCommand struct {
	items     ItemLister
	RootKey   string
	Dir       string
	Recursive bool
}

// NewListCommand creates a new ListCommand
func NewListCommand(items ItemLister, rootKey, dir string, recursive bool) *ListCommand {
	return &ListCommand{
		items:     items,
		RootKey:   rootKey,
		Dir:       dir,
		Recursive: recursive,
	}
}

// Execute runs the list command. Results are ordered by root and path.
func (c *ListCommand) Execute(ctx context.Context) ([]domain.Item, error) {
	dir := domain.NormalizeDir(c.Dir)
	filterDir := strings.TrimSpace(c.Dir) != ""

	var out []domain.Item
	for _, item := range c.items.List() {
		if c.RootKey != "" && item.RootKey != c.RootKey {
			continue
		}
		if filterDir {
			if c.Recursive {
				if !strings.HasPrefix(item.Dir, dir) {
					continue
				}
			} else if item.Dir != dir {
				continue
			}
		}
		out = append(out, item)
	}

	slices.SortFunc(out, func(a, b domain.Item) int {
		if a.RootKey != b.RootKey {
			return strings.Compare(a.RootKey, b.RootKey)
		}
		return strings.Compare(a.Path(), b.Path())
	})
	return out, nil
}

// GetCommand returns one video by id
type GetCommand struct {
	items ItemLister
	ID    string
}

// NewGetCommand creates a new GetCommand
func NewGetCommand(items ItemLister, id string) *GetCommand {
	return &GetCommand{items: items, ID: id}
}

// Execute runs the get command
func (c *GetCommand) Execute(ctx context.Context) (domain.Item, error) {
	item, ok := c.items.Get(c.ID)
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %s", application.ErrNotFound, c.ID)
	}
	return item, nil
}
