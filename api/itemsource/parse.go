// Package itemsource loads the initial contestant list for a tournament.
package itemsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"Pickme/api/bracket"
)

var ErrMalformedLine = errors.New("itemsource: line needs a title")

// Source returns the ordered initial item list.
type Source interface {
	Load(ctx context.Context) ([]bracket.Item, error)
}

// ParseItems reads a link list with one "title","link" pair per line.
// Quotes are optional, surrounding space is trimmed, blank lines are skipped.
// A line may carry only a title; its link is left empty for ResolveLinks.
func ParseItems(r io.Reader) ([]bracket.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var items []bracket.Item
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("itemsource: parse link list: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && clean(record[0]) == "" {
			continue
		}
		item := bracket.Item{Title: clean(record[0])}
		if len(record) > 1 {
			item.MediaLink = clean(record[1])
		}
		if item.Title == "" {
			return nil, fmt.Errorf("line %d: %w", line, ErrMalformedLine)
		}
		items = append(items, item)
	}
	return items, nil
}

func clean(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, `"`, ""))
}
