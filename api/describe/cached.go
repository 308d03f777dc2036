package describe

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"Pickme/api/cache"
)

// Cached memoises descriptions in Redis. Without a Redis connection every
// call goes to Next.
type Cached struct {
	Next Describer
	TTL  time.Duration
}

type cachedDescription struct {
	Text string `json:"text"`
}

type cachedList struct {
	Items []string `json:"items"`
}

func descriptionKey(topic, subject string) string {
	return fmt.Sprintf("winner_description:%s:%s", topic, subject)
}

func recommendationKey(description string) string {
	return fmt.Sprintf("winner_recommendations:%x", hashText(description))
}

func (c Cached) Describe(ctx context.Context, topic, subject string) (string, error) {
	key := descriptionKey(topic, subject)
	var hit cachedDescription
	if found, _ := cache.GetJSON(ctx, key, &hit); found && hit.Text != "" {
		return hit.Text, nil
	}

	text, err := c.Next.Describe(ctx, topic, subject)
	if err != nil {
		return "", err
	}
	_ = cache.SetJSON(ctx, key, cachedDescription{Text: text}, c.TTL)
	return text, nil
}

func (c Cached) Recommend(ctx context.Context, description string) ([]string, error) {
	key := recommendationKey(description)
	var hit cachedList
	if found, _ := cache.GetJSON(ctx, key, &hit); found {
		return hit.Items, nil
	}

	items, err := c.Next.Recommend(ctx, description)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, key, cachedList{Items: items}, c.TTL)
	return items, nil
}

func hashText(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
