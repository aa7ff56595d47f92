package client

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rcliao/string-analyzer/internal/config"
	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/metrics"
	"github.com/rcliao/string-analyzer/internal/model"
	"github.com/rcliao/string-analyzer/internal/server"
	"github.com/rcliao/string-analyzer/internal/service"
	"github.com/rcliao/string-analyzer/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	log := zaptest.NewLogger(t).Sugar()
	m := metrics.New()
	cfg := &config.Config{
		Server:  config.ServerConfig{Addr: ":0"},
		Store:   config.StoreConfig{Backend: store.BackendSQLite},
		Log:     config.LogConfig{Level: "info"},
		Metrics: config.MetricsConfig{Enabled: false},
	}
	s, err := store.Open(cfg.Store.Backend)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	srv := httptest.NewServer(server.New(cfg, service.New(s, m, log), m, log).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	rec, err := c.Create(ctx, "never odd or even")
	require.NoError(t, err)
	assert.True(t, rec.Properties.IsPalindrome)
	assert.Equal(t, 4, rec.Properties.WordCount)

	_, err = c.Create(ctx, "never odd or even")
	assert.Equal(t, errors.KindAlreadyExists, errors.KindOf(err))

	got, err := c.Get(ctx, "never odd or even")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	require.NoError(t, c.Delete(ctx, "never odd or even"))

	_, err = c.Get(ctx, "never odd or even")
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestClientQueries(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	for _, v := range []string{"wow", "hello", "a b a"} {
		_, err := c.Create(ctx, v)
		require.NoError(t, err)
	}

	res, err := c.Filter(ctx, url.Values{"is_palindrome": {"true"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wow", "a b a"}, res.Data)
	assert.Equal(t, model.Bool(true), res.FiltersApplied.IsPalindrome)

	nl, err := c.Search(ctx, "multi-word strings")
	require.NoError(t, err)
	assert.Equal(t, []string{"a b a"}, nl.Data)
	assert.Equal(t, model.Gt(1), nl.InterpretedQuery.ParsedFilters.WordCount)

	_, err = c.Search(ctx, "banana")
	assert.Equal(t, errors.KindUntranslatable, errors.KindOf(err))
	assert.True(t, errors.Is(err, errors.ErrUntranslatable))

	_, err = c.Filter(ctx, url.Values{"min_length": {"-1"}})
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))

	_, err = c.Search(ctx, "shorter than 2 and at least 10")
	assert.Equal(t, errors.KindConflictingFilters, errors.KindOf(err))
}

func TestAPIErrorWithoutKind(t *testing.T) {
	err := error(&APIError{StatusCode: 429, Message: "Rate limit exceeded"})
	assert.Equal(t, errors.KindUnknown, errors.KindOf(err))
	assert.EqualError(t, err, "server returned 429: Rate limit exceeded")
}
