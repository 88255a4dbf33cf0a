package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStore_Get_cachesValue(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var calls int32
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		atomic.AddInt32(&calls, 1)
		return json.RawMessage(`{"ok":true}`), nil
	}

	for i := 0; i < 3; i++ {
		val, err := s.Get(ctx, "/api/problems", "/api/problems", fetch)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(val))
	}
	assert.EqualValues(t, 1, calls, "value must be fetched once and served from cache")
	assert.Equal(t, 1, s.Len())
}

func TestStore_Get_distinctKeys(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	fetch := func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	}

	_, _ = s.Get(ctx, "/api/problems/:slug", "/api/problems/two-sum", fetch)
	_, _ = s.Get(ctx, "/api/problems/:slug", "/api/problems/word-ladder", fetch)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Get_sharesInflightFetch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return json.RawMessage(`"shared"`), nil
	}

	const waiters = 10
	results := make([]json.RawMessage, waiters)
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		i := i
		go func() {
			defer wg.Done()
			val, err := s.Get(ctx, "/api/leaderboard", "/api/leaderboard", fetch)
			assert.NoError(t, err)
			results[i] = val
		}()
	}

	<-started
	time.Sleep(10 * time.Millisecond) // let the other waiters attach
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls, "concurrent reads of one key must share a single fetch")
	for _, val := range results {
		assert.Equal(t, `"shared"`, string(val))
	}
}

func TestStore_Get_errorNotCached(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	boom := errors.New("boom")
	var calls int32
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, boom
		}
		return json.RawMessage(`"recovered"`), nil
	}

	_, err := s.Get(ctx, "/api/badges", "/api/badges", fetch)
	assert.Equal(t, boom, err)

	val, err := s.Get(ctx, "/api/badges", "/api/badges", fetch)
	assert.NoError(t, err)
	assert.Equal(t, `"recovered"`, string(val))
	assert.EqualValues(t, 2, calls, "a failed fetch must be retried on the next access")
}

func TestStore_Get_ctxCancelWhileWaiting(t *testing.T) {
	s := NewStore()

	release := make(chan struct{})
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		<-release
		return json.RawMessage(`1`), nil
	}

	go func() { _, _ = s.Get(context.Background(), "/api/hackathons", "/api/hackathons", fetch) }()
	time.Sleep(10 * time.Millisecond) // let the flight start

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Get(ctx, "/api/hackathons", "/api/hackathons", fetch)
	assert.Equal(t, context.Canceled, err)
	close(release)
}

func TestStore_Invalidate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var calls int32
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(fmt.Sprintf(`"v%d"`, atomic.AddInt32(&calls, 1))), nil
	}

	_, _ = s.Get(ctx, "/api/problems/:slug", "/api/problems/two-sum", fetch)
	_, _ = s.Get(ctx, "/api/tutorials", "/api/tutorials", fetch)

	s.Invalidate("/api/problems/:slug")

	assert.True(t, s.Stale("/api/problems/two-sum"), "keys derived from the template must go stale")
	assert.False(t, s.Stale("/api/tutorials"), "unrelated templates must not go stale")

	_, _ = s.Get(ctx, "/api/problems/:slug", "/api/problems/two-sum", fetch)
	assert.False(t, s.Stale("/api/problems/two-sum"))
	assert.EqualValues(t, 3, calls, "a stale key must refetch")
}

func TestStore_Invalidate_noTemplates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, _ = s.Get(ctx, "/api/badges", "/api/badges", func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	})
	s.Invalidate()
	assert.False(t, s.Stale("/api/badges"))
}

// An invalidation that lands while a fetch is in flight must win: the stale
// result is returned to its waiters but never installed in the cache.
func TestStore_Get_generationGuard(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var calls int32
	inFlight := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			close(inFlight)
			<-release
			return json.RawMessage(`"stale"`), nil
		}
		return json.RawMessage(`"fresh"`), nil
	}

	done := make(chan json.RawMessage, 1)
	go func() {
		val, _ := s.Get(ctx, "/api/user/stats", "/api/user/stats", fetch)
		done <- val
	}()

	<-inFlight
	s.Invalidate("/api/user/stats")
	close(release)

	assert.Equal(t, `"stale"`, string(<-done), "the started fetch still returns its result to waiters")

	val, err := s.Get(ctx, "/api/user/stats", "/api/user/stats", fetch)
	assert.NoError(t, err)
	assert.Equal(t, `"fresh"`, string(val), "the guarded result must not have been installed")
	assert.EqualValues(t, 2, calls)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, _ = s.Get(ctx, "/api/badges", "/api/badges", func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	})
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
