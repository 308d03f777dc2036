package itemsource

import (
	"context"
	"errors"
	"fmt"

	"Pickme/api/bracket"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	ErrNoVideoFound = errors.New("itemsource: no embeddable video found")
	ErrMissingLink  = errors.New("itemsource: item has no link and no resolver is configured")
)

// Resolver finds a playable link for an item listed by title only.
type Resolver interface {
	Resolve(ctx context.Context, title string) (string, error)
}

// YouTubeResolver looks titles up with the YouTube Data API search endpoint.
type YouTubeResolver struct {
	Service *youtube.Service
}

func NewYouTubeResolver(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeResolver, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("itemsource: youtube client: %w", err)
	}
	return &YouTubeResolver{Service: svc}, nil
}

// Resolve returns the watch URL of the most relevant embeddable video for
// "<title> official".
func (r *YouTubeResolver) Resolve(ctx context.Context, title string) (string, error) {
	resp, err := r.Service.Search.List([]string{"snippet"}).
		Q(title + " official").
		Order("relevance").
		MaxResults(5).
		Type("video").
		VideoEmbeddable("true").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("itemsource: search %q: %w", title, err)
	}
	for _, result := range resp.Items {
		if result.Id != nil && result.Id.VideoId != "" {
			return "https://www.youtube.com/watch?v=" + result.Id.VideoId, nil
		}
	}
	return "", fmt.Errorf("%q: %w", title, ErrNoVideoFound)
}

// ResolveLinks fills in missing links in place. Items that already carry a
// link are left untouched and never reach the resolver.
func ResolveLinks(ctx context.Context, items []bracket.Item, resolver Resolver) error {
	for i := range items {
		if items[i].MediaLink != "" {
			continue
		}
		if resolver == nil {
			return fmt.Errorf("%q: %w", items[i].Title, ErrMissingLink)
		}
		link, err := resolver.Resolve(ctx, items[i].Title)
		if err != nil {
			return err
		}
		items[i].MediaLink = link
	}
	return nil
}

// Resolved wraps a source whose lines may omit links.
type Resolved struct {
	Source   Source
	Resolver Resolver
}

func (s Resolved) Load(ctx context.Context) ([]bracket.Item, error) {
	items, err := s.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ResolveLinks(ctx, items, s.Resolver); err != nil {
		return nil, err
	}
	return items, nil
}
