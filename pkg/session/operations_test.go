package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
)

// authenticatedManager builds a manager already holding the given snapshot,
// with a stored credential pair.
func authenticatedManager(api API, snapshot *models.UserSnapshot) *Manager {
	m := newTestManager(api, storedPair("access-1", "refresh-1"))
	m.apply(func(State) State {
		return State{Status: StatusAuthenticated, User: snapshot}
	})
	return m
}

func TestJoinCourse_AlreadyEnrolledIsLocalNoOp(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	existing := models.Enrollment{ID: uuid.New(), CourseID: courseID, ProgressPercent: 40}
	api := &fakeAPI{} // joinFn unset: any round-trip would fail the test
	m := authenticatedManager(api, &models.UserSnapshot{
		Enrollments: []models.Enrollment{existing},
	})

	got, err := m.JoinCourse(context.Background(), courseID, models.OriginCatalog)
	require.NoError(t, err)
	require.Equal(t, existing.ID, got.ID)
	require.Equal(t, 40, got.ProgressPercent)
}

func TestJoinCourse_AppendsConfirmedEnrollment(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	confirmed := models.Enrollment{
		ID:       uuid.New(),
		CourseID: courseID,
		Course:   models.CourseSummary{ID: courseID, Title: "Distributed Systems"},
		Origin:   models.OriginCatalog,
	}
	api := &fakeAPI{
		joinFn: func(ctx context.Context, token string, id uuid.UUID, origin models.Origin) (*models.Enrollment, error) {
			require.Equal(t, courseID, id)
			require.Equal(t, models.OriginCatalog, origin)
			e := confirmed
			return &e, nil
		},
	}
	m := authenticatedManager(api, &models.UserSnapshot{})

	got, err := m.JoinCourse(context.Background(), courseID, models.OriginCatalog)
	require.NoError(t, err)
	require.Equal(t, confirmed.ID, got.ID)

	st := m.State()
	require.Len(t, st.User.Enrollments, 1)
	require.Equal(t, confirmed.ID, st.User.Enrollments[0].ID)

	cached, ok := m.CatalogCourse(courseID)
	require.True(t, ok)
	require.Equal(t, "Distributed Systems", cached.Title)
}

func TestMarkContentComplete(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	enrollmentID := uuid.New()
	base := models.Enrollment{
		ID:                  enrollmentID,
		CourseID:            courseID,
		CompletedContentIDs: []string{"c1"},
		ProgressPercent:     25,
	}

	t.Run("already completed is a no-op", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		m := authenticatedManager(api, &models.UserSnapshot{Enrollments: []models.Enrollment{base}})

		require.NoError(t, m.MarkContentComplete(context.Background(), courseID, "c1"))
	})

	t.Run("snapshot changes only after confirmation", func(t *testing.T) {
		t.Parallel()
		var sent apiclient.ProgressUpdate
		api := &fakeAPI{
			progressFn: func(ctx context.Context, token string, upd apiclient.ProgressUpdate) (*models.Enrollment, error) {
				sent = upd
				e := base
				e.CompletedContentIDs = upd.CompletedContentIDs
				e.ProgressPercent = 50
				return &e, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{Enrollments: []models.Enrollment{base}})

		require.NoError(t, m.MarkContentComplete(context.Background(), courseID, "c2"))
		require.Equal(t, enrollmentID, sent.EnrollmentID)
		require.Equal(t, []string{"c1", "c2"}, sent.CompletedContentIDs)

		st := m.State()
		require.Equal(t, []string{"c1", "c2"}, st.User.Enrollments[0].CompletedContentIDs)
		require.Equal(t, 50, st.User.Enrollments[0].ProgressPercent)
	})

	t.Run("not enrolled", func(t *testing.T) {
		t.Parallel()
		m := authenticatedManager(&fakeAPI{}, &models.UserSnapshot{})

		err := m.MarkContentComplete(context.Background(), courseID, "c1")
		require.Error(t, err)
		require.Equal(t, apiclient.KindNotFound, apiclient.KindOf(err))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		m := newTestManager(&fakeAPI{}, NewMemoryStore())

		err := m.MarkContentComplete(context.Background(), courseID, "c1")
		require.Error(t, err)
		require.Equal(t, apiclient.KindUnauthorized, apiclient.KindOf(err))
	})
}

func TestSubmitQuiz(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	quiz := models.ContentItem{
		ID:    "quiz-1",
		Type:  models.ContentTypeQuiz,
		Title: "Checkpoint",
		Questions: []models.QuizQuestion{
			{ID: "q1", Options: []string{"a", "b"}, AnswerIndex: 0, Points: 4},
			{ID: "q2", Options: []string{"a", "b", "c"}, AnswerIndex: 2, Points: 6},
		},
		TotalPoints: 10,
	}
	base := models.Enrollment{ID: uuid.New(), CourseID: courseID}

	t.Run("rejects non-quiz content", func(t *testing.T) {
		t.Parallel()
		m := authenticatedManager(&fakeAPI{}, &models.UserSnapshot{Enrollments: []models.Enrollment{base}})

		_, err := m.SubmitQuiz(context.Background(), courseID, models.ContentItem{ID: "t1", Type: models.ContentTypeText}, nil)
		require.Error(t, err)
		require.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))
	})

	t.Run("invalid selections fail before any round-trip", func(t *testing.T) {
		t.Parallel()
		m := authenticatedManager(&fakeAPI{}, &models.UserSnapshot{Enrollments: []models.Enrollment{base}})

		_, err := m.SubmitQuiz(context.Background(), courseID, quiz, []int{0})
		require.Error(t, err)
		require.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))
	})

	t.Run("submission counts quiz as completed content", func(t *testing.T) {
		t.Parallel()
		var sent apiclient.ProgressUpdate
		api := &fakeAPI{
			progressFn: func(ctx context.Context, token string, upd apiclient.ProgressUpdate) (*models.Enrollment, error) {
				sent = upd
				e := base
				e.CompletedContentIDs = upd.CompletedContentIDs
				e.QuizAttempts = upd.QuizAttempts
				return &e, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{Enrollments: []models.Enrollment{base}})

		attempt, err := m.SubmitQuiz(context.Background(), courseID, quiz, []int{0, 2})
		require.NoError(t, err)
		require.Equal(t, 10, attempt.ScoredPoints)
		require.Equal(t, 10, attempt.TotalPoints)
		require.Contains(t, sent.CompletedContentIDs, "quiz-1")
		require.Len(t, sent.QuizAttempts, 1)
	})

	t.Run("resubmission replaces the prior attempt", func(t *testing.T) {
		t.Parallel()
		enrolled := base
		enrolled.CompletedContentIDs = []string{"quiz-1"}
		enrolled.QuizAttempts = []models.QuizAttempt{{
			QuizID: "quiz-1", SelectedOptionIndexes: []int{0, 2}, ScoredPoints: 10, TotalPoints: 10,
		}}
		var sent apiclient.ProgressUpdate
		api := &fakeAPI{
			progressFn: func(ctx context.Context, token string, upd apiclient.ProgressUpdate) (*models.Enrollment, error) {
				sent = upd
				e := enrolled
				e.CompletedContentIDs = upd.CompletedContentIDs
				e.QuizAttempts = upd.QuizAttempts
				return &e, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{Enrollments: []models.Enrollment{enrolled}})

		// A worse retake still replaces the stored attempt.
		attempt, err := m.SubmitQuiz(context.Background(), courseID, quiz, []int{1, 0})
		require.NoError(t, err)
		require.Equal(t, 0, attempt.ScoredPoints)
		require.Len(t, sent.QuizAttempts, 1)
		require.Equal(t, []int{1, 0}, sent.QuizAttempts[0].SelectedOptionIndexes)

		// Completed set stays a set: quiz id is not duplicated.
		require.Equal(t, []string{"quiz-1"}, sent.CompletedContentIDs)

		st := m.State()
		got := st.User.Enrollments[0].AttemptFor("quiz-1")
		require.NotNil(t, got)
		require.Equal(t, 0, got.ScoredPoints)
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()

	t.Run("add reconciles server favorite into snapshot", func(t *testing.T) {
		t.Parallel()
		fav := models.Favorite{
			ID:       uuid.New(),
			CourseID: courseID,
			Course:   models.CourseSummary{ID: courseID, Title: "SQL Deep Dive"},
			Origin:   models.OriginCatalog,
		}
		api := &fakeAPI{
			toggleFn: func(ctx context.Context, token string, id uuid.UUID, origin models.Origin) (*apiclient.ToggleResult, error) {
				f := fav
				return &apiclient.ToggleResult{Removed: false, Favorite: &f}, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{})

		removed, err := m.ToggleFavorite(context.Background(), courseID, models.OriginCatalog)
		require.NoError(t, err)
		require.False(t, removed)

		st := m.State()
		require.Len(t, st.User.Favorites, 1)
		require.Equal(t, fav.ID, st.User.Favorites[0].ID)

		_, ok := m.CatalogCourse(courseID)
		require.True(t, ok)
	})

	t.Run("remove drops the pair from snapshot", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			toggleFn: func(ctx context.Context, token string, id uuid.UUID, origin models.Origin) (*apiclient.ToggleResult, error) {
				return &apiclient.ToggleResult{Removed: true}, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{
			Favorites: []models.Favorite{
				{ID: uuid.New(), CourseID: courseID, Origin: models.OriginCatalog},
				{ID: uuid.New(), CourseID: courseID, Origin: models.OriginAuthored},
			},
		})

		removed, err := m.ToggleFavorite(context.Background(), courseID, models.OriginCatalog)
		require.NoError(t, err)
		require.True(t, removed)

		// Only the (course, origin) pair is removed; the authored favorite of
		// the same course survives.
		st := m.State()
		require.Len(t, st.User.Favorites, 1)
		require.Equal(t, models.OriginAuthored, st.User.Favorites[0].Origin)
	})

	t.Run("server adjudicates rapid double toggle", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fav := models.Favorite{ID: uuid.New(), CourseID: courseID, Origin: models.OriginCatalog}
		api := &fakeAPI{
			toggleFn: func(ctx context.Context, token string, id uuid.UUID, origin models.Origin) (*apiclient.ToggleResult, error) {
				calls++
				if calls%2 == 1 {
					f := fav
					return &apiclient.ToggleResult{Removed: false, Favorite: &f}, nil
				}
				return &apiclient.ToggleResult{Removed: true}, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{})

		removed, err := m.ToggleFavorite(context.Background(), courseID, models.OriginCatalog)
		require.NoError(t, err)
		require.False(t, removed)
		removed, err = m.ToggleFavorite(context.Background(), courseID, models.OriginCatalog)
		require.NoError(t, err)
		require.True(t, removed)

		require.Empty(t, m.State().User.Favorites)
	})
}

func TestCreateAndUpdateCourse(t *testing.T) {
	t.Parallel()

	created := models.Course{ID: uuid.New(), Title: "New Course"}
	api := &fakeAPI{
		createFn: func(ctx context.Context, token string, draft apiclient.CourseDraft) (*models.Course, error) {
			c := created
			c.Title = draft.Title
			return &c, nil
		},
		updCrsFn: func(ctx context.Context, token string, id uuid.UUID, draft apiclient.CourseDraft) (*models.Course, error) {
			c := created
			c.Title = draft.Title
			return &c, nil
		},
	}
	m := authenticatedManager(api, &models.UserSnapshot{
		AuthoredCourses: []models.Course{{ID: uuid.New(), Title: "Old Course"}},
	})

	course, err := m.CreateCourse(context.Background(), apiclient.CourseDraft{Title: "New Course"})
	require.NoError(t, err)
	require.Equal(t, created.ID, course.ID)

	st := m.State()
	require.Len(t, st.User.AuthoredCourses, 2)
	// Newest authored course leads the list.
	require.Equal(t, created.ID, st.User.AuthoredCourses[0].ID)

	_, err = m.UpdateCourse(context.Background(), created.ID, apiclient.CourseDraft{Title: "Renamed"})
	require.NoError(t, err)

	st = m.State()
	require.Len(t, st.User.AuthoredCourses, 2)
	require.Equal(t, "Renamed", st.User.AuthoredCourses[0].Title)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("malformed email fails fast", func(t *testing.T) {
		t.Parallel()
		m := authenticatedManager(&fakeAPI{}, &models.UserSnapshot{})

		bad := "not-an-email"
		err := m.UpdateProfile(context.Background(), apiclient.ProfileUpdate{Email: &bad})
		require.Error(t, err)
		require.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))
	})

	t.Run("confirmed identity merges into snapshot", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			updateFn: func(ctx context.Context, token string, upd apiclient.ProfileUpdate) (*models.User, error) {
				require.NotNil(t, upd.Name)
				require.Equal(t, "Dana Jr", *upd.Name)
				return &models.User{Name: "Dana Jr", Email: "dana@example.com", Bio: "hi"}, nil
			},
		}
		m := authenticatedManager(api, &models.UserSnapshot{Name: "Dana", Email: "dana@example.com"})

		name := "  Dana Jr  "
		require.NoError(t, m.UpdateProfile(context.Background(), apiclient.ProfileUpdate{Name: &name}))

		st := m.State()
		require.Equal(t, "Dana Jr", st.User.Name)
		require.Equal(t, "hi", st.User.Bio)
	})
}
