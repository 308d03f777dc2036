package itemsource

import (
	"context"
	"fmt"
	"os"

	"Pickme/api/bracket"
)

// FileSource reads a link list from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]bracket.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("itemsource: open %s: %w", s.Path, err)
	}
	defer f.Close()

	items, err := ParseItems(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return items, nil
}
