// Package describe produces a short text about a tournament champion and a
// list of related recommendations.
package describe

import (
	"context"
	"errors"
	"strings"
)

var ErrUnavailable = errors.New("describe: no description service configured")

type Describer interface {
	// Describe writes a few sentences about subject within topic.
	Describe(ctx context.Context, topic, subject string) (string, error)
	// Recommend lists titles related to a description.
	Recommend(ctx context.Context, description string) ([]string, error)
}

// SubjectFromTitle drops everything from the first '-' on, so that
// "Artist - Song" describes the artist.
func SubjectFromTitle(title string) string {
	if i := strings.IndexByte(title, '-'); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}
