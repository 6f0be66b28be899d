package session

import (
	"context"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
)

// execute runs an authenticated operation with the stored credential pair.
// On an unauthorized failure with a refresh credential present it performs
// exactly one refresh-and-retry cycle: the rotated pair is persisted before
// the retry is dispatched. A second unauthorized outcome is terminal; the
// session drops to unauthenticated and the pair is cleared. Every other
// failure kind propagates untouched and never triggers a refresh.
func execute[T any](ctx context.Context, m *Manager, op func(ctx context.Context, accessToken string) (T, error)) (T, error) {
	var zero T

	pair, err := m.store.Load()
	if err != nil {
		return zero, err
	}
	if pair == nil {
		return zero, apiclient.NewError(apiclient.KindUnauthorized, "not authenticated")
	}

	out, err := op(ctx, pair.AccessToken)
	if err == nil {
		return out, nil
	}
	if !apiclient.IsUnauthorized(err) || pair.RefreshToken == "" {
		return zero, err
	}

	next, rerr := m.refreshCredentials(ctx, *pair)
	if rerr != nil {
		if apiclient.IsUnauthorized(rerr) {
			m.resetSession()
		}
		return zero, rerr
	}

	out, err = op(ctx, next.AccessToken)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			// Fresh pair still rejected: the session is dead.
			m.resetSession()
		}
		return zero, err
	}
	return out, nil
}

// refreshCredentials exchanges the refresh credential for a new pair.
// Single-flight: concurrent failing operations share one refresh call. If
// another operation already rotated the pair while we waited for the lock,
// the stored pair is reused without a second issuer round-trip.
func (m *Manager) refreshCredentials(ctx context.Context, failed models.Credentials) (*models.Credentials, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	current, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if current != nil && current.AccessToken != failed.AccessToken {
		return current, nil
	}

	resp, err := m.api.Refresh(ctx, failed.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(resp.Credentials); err != nil {
		return nil, err
	}

	// The issuer returns the identity record with the pair; fold any fresher
	// identity fields into the snapshot.
	m.applyUser(func(user *models.UserSnapshot) {
		user.Name = resp.User.Name
		user.Email = resp.User.Email
		if resp.User.AvatarURL != "" {
			user.AvatarURL = resp.User.AvatarURL
		}
		if resp.User.Bio != "" {
			user.Bio = resp.User.Bio
		}
	})

	pair := resp.Credentials
	return &pair, nil
}
