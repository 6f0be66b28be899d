package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
)

func TestExecute_SuccessWithoutRefresh(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	m := newTestManager(api, storedPair("access-1", "refresh-1"))

	var seenToken string
	out, err := execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
		seenToken = token
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, "access-1", seenToken)
	require.EqualValues(t, 0, api.refreshCalls.Load())
}

func TestExecute_NoCredentials(t *testing.T) {
	t.Parallel()

	m := newTestManager(&fakeAPI{}, NewMemoryStore())

	_, err := execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
		t.Fatal("operation must not run without credentials")
		return "", nil
	})
	require.Error(t, err)
	require.Equal(t, apiclient.KindUnauthorized, apiclient.KindOf(err))
}

func TestExecute_RefreshAndRetryOnce(t *testing.T) {
	t.Parallel()

	store := storedPair("stale-access", "refresh-1")
	api := &fakeAPI{
		refreshFn: func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
			require.Equal(t, "refresh-1", refreshToken)
			return &apiclient.AuthResponse{
				Credentials: models.Credentials{AccessToken: "fresh-access", RefreshToken: "refresh-2"},
			}, nil
		},
	}
	m := newTestManager(api, store)

	var calls []string
	out, err := execute(context.Background(), m, func(ctx context.Context, token string) (int, error) {
		calls = append(calls, token)
		if token == "stale-access" {
			return 0, unauthorizedErr()
		}
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, out)
	require.Equal(t, []string{"stale-access", "fresh-access"}, calls)
	require.EqualValues(t, 1, api.refreshCalls.Load())

	// The rotated pair must be persisted before the retry returns.
	pair, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.Equal(t, "fresh-access", pair.AccessToken)
	require.Equal(t, "refresh-2", pair.RefreshToken)
}

func TestExecute_SecondUnauthorizedIsTerminal(t *testing.T) {
	t.Parallel()

	store := storedPair("stale-access", "refresh-1")
	api := &fakeAPI{
		refreshFn: func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
			return &apiclient.AuthResponse{
				Credentials: models.Credentials{AccessToken: "fresh-access", RefreshToken: "refresh-2"},
			}, nil
		},
	}
	m := newTestManager(api, store)

	var attempts atomic.Int64
	_, err := execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
		attempts.Add(1)
		return "", unauthorizedErr()
	})
	require.Error(t, err)
	require.Equal(t, apiclient.KindUnauthorized, apiclient.KindOf(err))
	require.EqualValues(t, 2, attempts.Load())
	require.EqualValues(t, 1, api.refreshCalls.Load())

	// Terminal: the pair is gone and the session dropped to unauthenticated.
	pair, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, pair)
	require.Equal(t, StatusUnauthenticated, m.State().Status)
}

func TestExecute_UnauthorizedRefreshResetsSession(t *testing.T) {
	t.Parallel()

	store := storedPair("stale-access", "refresh-1")
	api := &fakeAPI{
		refreshFn: func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
			return nil, unauthorizedErr()
		},
	}
	m := newTestManager(api, store)

	_, err := execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
		return "", unauthorizedErr()
	})
	require.Error(t, err)
	require.Equal(t, StatusUnauthenticated, m.State().Status)

	pair, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestExecute_TransientRefreshFailureKeepsSession(t *testing.T) {
	t.Parallel()

	store := storedPair("stale-access", "refresh-1")
	api := &fakeAPI{
		refreshFn: func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
			return nil, apiclient.NewError(apiclient.KindTransient, "issuer unreachable")
		},
	}
	m := newTestManager(api, store)

	_, err := execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
		return "", unauthorizedErr()
	})
	require.Error(t, err)
	require.Equal(t, apiclient.KindTransient, apiclient.KindOf(err))

	// A flaky issuer must not destroy an otherwise valid pair.
	pair, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.Equal(t, "refresh-1", pair.RefreshToken)
}

func TestExecute_NonUnauthorizedNeverRefreshes(t *testing.T) {
	t.Parallel()

	kinds := []apiclient.Kind{
		apiclient.KindConflict,
		apiclient.KindNotFound,
		apiclient.KindValidation,
		apiclient.KindTransient,
	}
	for _, kind := range kinds {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			api := &fakeAPI{}
			m := newTestManager(api, storedPair("access-1", "refresh-1"))

			_, err := execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
				return "", apiclient.NewError(kind, "nope")
			})
			require.Error(t, err)
			require.Equal(t, kind, apiclient.KindOf(err))
			require.EqualValues(t, 0, api.refreshCalls.Load())
		})
	}
}

func TestExecute_ConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	t.Parallel()

	store := storedPair("stale-access", "refresh-1")
	api := &fakeAPI{
		refreshFn: func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
			return &apiclient.AuthResponse{
				Credentials: models.Credentials{AccessToken: "fresh-access", RefreshToken: "refresh-2"},
			}, nil
		},
	}
	m := newTestManager(api, store)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = execute(context.Background(), m, func(ctx context.Context, token string) (string, error) {
				if token == "stale-access" {
					return "", unauthorizedErr()
				}
				return "ok", nil
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	require.EqualValues(t, 1, api.refreshCalls.Load())
}
