package describe

import (
	"context"
	"errors"
	"testing"
	"time"

	"Pickme/api/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDescriber struct {
	describeCalls  int
	recommendCalls int
	err            error
}

func (s *stubDescriber) Describe(ctx context.Context, topic, subject string) (string, error) {
	s.describeCalls++
	if s.err != nil {
		return "", s.err
	}
	return subject + " is a " + topic, nil
}

func (s *stubDescriber) Recommend(ctx context.Context, description string) ([]string, error) {
	s.recommendCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []string{"one", "two"}, nil
}

func TestSubjectFromTitle(t *testing.T) {
	assert.Equal(t, "IU", SubjectFromTitle("IU - Blueming"))
	assert.Equal(t, "DAY6", SubjectFromTitle("  DAY6  "))
	assert.Equal(t, "", SubjectFromTitle("- nameless"))
}

func TestCached_PassesThroughWithoutRedis(t *testing.T) {
	prev := cache.Client
	cache.Client = nil
	t.Cleanup(func() { cache.Client = prev })

	stub := &stubDescriber{}
	var d Describer = Cached{Next: stub, TTL: time.Hour}

	text, err := d.Describe(context.Background(), "singer", "IU")
	require.NoError(t, err)
	assert.Equal(t, "IU is a singer", text)

	_, err = d.Describe(context.Background(), "singer", "IU")
	require.NoError(t, err)
	assert.Equal(t, 2, stub.describeCalls)

	recs, err := d.Recommend(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, recs)
}

func TestCached_ServesHitsFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	prev := cache.Client
	cache.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = cache.Client.Close()
		cache.Client = prev
	})

	stub := &stubDescriber{}
	d := Cached{Next: stub, TTL: time.Hour}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		text, err := d.Describe(ctx, "singer", "IU")
		require.NoError(t, err)
		assert.Equal(t, "IU is a singer", text)

		recs, err := d.Recommend(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, recs)
	}
	assert.Equal(t, 1, stub.describeCalls)
	assert.Equal(t, 1, stub.recommendCalls)

	assert.True(t, mr.Exists(descriptionKey("singer", "IU")))
	assert.True(t, mr.Exists(recommendationKey("IU is a singer")))
	assert.Equal(t, time.Hour, mr.TTL(descriptionKey("singer", "IU")))

	_, err := d.Describe(ctx, "singer", "DAY6")
	require.NoError(t, err)
	assert.Equal(t, 2, stub.describeCalls)
}

func TestCached_PropagatesErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	d := Cached{Next: &stubDescriber{err: boom}, TTL: time.Hour}

	_, err := d.Describe(context.Background(), "singer", "IU")
	assert.ErrorIs(t, err, boom)
	_, err = d.Recommend(context.Background(), "text")
	assert.ErrorIs(t, err, boom)
}

func TestDecodeResponses(t *testing.T) {
	assert.Equal(t, "hello", decodeString(`"  hello "`))
	assert.Equal(t, "plain text", decodeString("plain text"))

	list, err := decodeList(`["a", " ", "b "]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)

	_, err = decodeList("not json")
	assert.Error(t, err)
}

func TestNewGeminiDescriber_RequiresKey(t *testing.T) {
	_, err := NewGeminiDescriber(context.Background(), "", "")
	assert.Error(t, err)
}

func TestKeysAreStable(t *testing.T) {
	assert.Equal(t, "winner_description:singer:IU", descriptionKey("singer", "IU"))
	assert.Equal(t, recommendationKey("abc"), recommendationKey("abc"))
	assert.NotEqual(t, recommendationKey("abc"), recommendationKey("abd"))
}
