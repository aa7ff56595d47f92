package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/string-analyzer/internal/analyzer"
	"github.com/rcliao/string-analyzer/internal/errors"
)

func newTestStore(t *testing.T, backend string) Store {
	t.Helper()
	s, err := Open(backend)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// eachBackend runs fn against a fresh store of every backend.
func eachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, backend := range []string{BackendMemory, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			fn(t, newTestStore(t, backend))
		})
	}
}

func TestInsertAndGet(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		before := time.Now().UTC().Add(-time.Second)
		rec, err := s.Insert(ctx, "A man, a plan, a canal: Panama")
		require.NoError(t, err)

		assert.Equal(t, "A man, a plan, a canal: Panama", rec.Value)
		assert.Equal(t, analyzer.ContentHash(rec.Value), rec.ID)
		assert.Equal(t, rec.ID, rec.Properties.SHA256Hash)
		assert.True(t, rec.Properties.IsPalindrome)
		assert.True(t, rec.CreatedAt.After(before))
		assert.Equal(t, time.UTC, rec.CreatedAt.Location())

		got, err := s.Get(ctx, rec.Value)
		require.NoError(t, err)
		assert.Equal(t, analyzer.Analyze(rec.Value), got.Properties)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestInsertDuplicate(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, err := s.Insert(ctx, "hello")
		require.NoError(t, err)

		_, err = s.Insert(ctx, "hello")
		assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
		assert.Equal(t, errors.KindAlreadyExists, errors.KindOf(err))

		n, err := s.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestInsertEmpty(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		_, err := s.Insert(context.Background(), "")
		assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
	})
}

func TestGetMissing(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		_, err := s.Get(context.Background(), "nope")
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestDelete(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, err := s.Insert(ctx, "data")
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "data"))

		_, err = s.Get(ctx, "data")
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))

		err = s.Delete(ctx, "data")
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))

		all, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestReinsertAfterDelete(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first, err := s.Insert(ctx, "again")
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "again"))

		second, err := s.Insert(ctx, "again")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.False(t, second.CreatedAt.Before(first.CreatedAt))
	})
}

func TestAll(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		for _, v := range []string{"abc", "hello", "something"} {
			_, err := s.Insert(ctx, v)
			require.NoError(t, err)
		}

		all, err := s.All(ctx)
		require.NoError(t, err)

		var values []string
		for _, rec := range all {
			values = append(values, rec.Value)
			assert.Equal(t, analyzer.Analyze(rec.Value), rec.Properties)
		}
		assert.ElementsMatch(t, []string{"abc", "hello", "something"}, values)

		n, err := s.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestRecordsAreNotShared(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		rec, err := s.Insert(ctx, "aab")
		require.NoError(t, err)
		rec.Properties.CharacterFrequencyMap["a"] = 100

		got, err := s.Get(ctx, "aab")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Properties.CharacterFrequencyMap["a"])
	})
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("postgres")
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
}

func TestConcurrentInsertKeepsValuesUnique(t *testing.T) {
	eachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		const workers = 50

		var inserted, deleted atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Insert(ctx, "same")
				if err == nil {
					inserted.Add(1)
				} else {
					assert.Equal(t, errors.KindAlreadyExists, errors.KindOf(err))
				}
				_, err = s.All(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), inserted.Load())
		n, err := s.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Delete(ctx, "same")
				if err == nil {
					deleted.Add(1)
				} else {
					assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), deleted.Load())
		n, err = s.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
