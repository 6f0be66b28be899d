package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (f *fakeCourseRepo) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, app_errors.ErrCourseNotFound
}

type favKey struct {
	courseID uuid.UUID
	origin   models.Origin
}

// fakeFavoriteRepo flips membership like the transactional postgres adapter.
type fakeFavoriteRepo struct {
	favorites map[favKey]*models.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[favKey]*models.Favorite)}
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	out := make([]models.Favorite, 0, len(f.favorites))
	for _, fav := range f.favorites {
		out = append(out, *fav)
	}
	return out, nil
}

func (f *fakeFavoriteRepo) Toggle(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (bool, *models.Favorite, error) {
	key := favKey{courseID: courseID, origin: origin}
	if _, ok := f.favorites[key]; ok {
		delete(f.favorites, key)
		return true, nil, nil
	}
	fav := &models.Favorite{
		ID:       uuid.New(),
		CourseID: courseID,
		Origin:   origin,
		AddedAt:  time.Now().UTC(),
	}
	f.favorites[key] = fav
	return false, fav, nil
}

func TestToggle(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	course := &models.Course{ID: uuid.New(), Title: "Kubernetes Basics", IsPublished: true}
	courseRepo := &fakeCourseRepo{courses: map[uuid.UUID]*models.Course{course.ID: course}}

	t.Run("absent then present then absent", func(t *testing.T) {
		t.Parallel()
		s := NewFavoriteService(logger.Discard(), courseRepo, newFakeFavoriteRepo())

		res, err := s.Toggle(context.Background(), userID, course.ID, models.OriginCatalog)
		require.NoError(t, err)
		require.False(t, res.Removed)
		require.NotNil(t, res.Favorite)
		require.Equal(t, course.ID, res.Favorite.CourseID)

		res, err = s.Toggle(context.Background(), userID, course.ID, models.OriginCatalog)
		require.NoError(t, err)
		require.True(t, res.Removed)
		require.Nil(t, res.Favorite)
	})

	t.Run("origins are independent keys", func(t *testing.T) {
		t.Parallel()
		repo := newFakeFavoriteRepo()
		s := NewFavoriteService(logger.Discard(), courseRepo, repo)

		_, err := s.Toggle(context.Background(), userID, course.ID, models.OriginCatalog)
		require.NoError(t, err)
		res, err := s.Toggle(context.Background(), userID, course.ID, models.OriginAuthored)
		require.NoError(t, err)
		require.False(t, res.Removed)

		favorites, err := s.List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, favorites, 2)
	})

	t.Run("unknown course", func(t *testing.T) {
		t.Parallel()
		s := NewFavoriteService(logger.Discard(), courseRepo, newFakeFavoriteRepo())

		_, err := s.Toggle(context.Background(), userID, uuid.New(), models.OriginCatalog)
		require.ErrorIs(t, err, app_errors.ErrCourseNotFound)
	})
}
