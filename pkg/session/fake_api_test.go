package session

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
	"CourseHub/pkg/logger"
)

// fakeAPI implements API with per-call function hooks. Unset hooks fail the
// call with a transient error so a test only wires what it exercises.
type fakeAPI struct {
	registerFn func(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error)
	loginFn    func(ctx context.Context, email, password string) (*apiclient.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error)
	meFn       func(ctx context.Context, accessToken string) (*models.User, error)
	updateFn   func(ctx context.Context, accessToken string, upd apiclient.ProfileUpdate) (*models.User, error)
	listEnrFn  func(ctx context.Context, accessToken string) ([]models.Enrollment, error)
	joinFn     func(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error)
	progressFn func(ctx context.Context, accessToken string, upd apiclient.ProgressUpdate) (*models.Enrollment, error)
	listFavFn  func(ctx context.Context, accessToken string) ([]models.Favorite, error)
	toggleFn   func(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*apiclient.ToggleResult, error)
	listAuthFn func(ctx context.Context, accessToken string) ([]models.Course, error)
	createFn   func(ctx context.Context, accessToken string, draft apiclient.CourseDraft) (*models.Course, error)
	updCrsFn   func(ctx context.Context, accessToken string, id uuid.UUID, draft apiclient.CourseDraft) (*models.Course, error)
	uploadFn   func(ctx context.Context, accessToken, filename, contentType string, reader io.Reader) (string, error)

	refreshCalls atomic.Int64
	loginCalls   atomic.Int64
}

func errUnwired[T any]() (T, error) {
	var zero T
	return zero, apiclient.NewError(apiclient.KindTransient, "fake: endpoint not wired")
}

func (f *fakeAPI) Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error) {
	if f.registerFn == nil {
		return errUnwired[*apiclient.AuthResponse]()
	}
	return f.registerFn(ctx, req)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*apiclient.AuthResponse, error) {
	f.loginCalls.Add(1)
	if f.loginFn == nil {
		return errUnwired[*apiclient.AuthResponse]()
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
	f.refreshCalls.Add(1)
	if f.refreshFn == nil {
		return errUnwired[*apiclient.AuthResponse]()
	}
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAPI) Me(ctx context.Context, accessToken string) (*models.User, error) {
	if f.meFn == nil {
		return errUnwired[*models.User]()
	}
	return f.meFn(ctx, accessToken)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, accessToken string, upd apiclient.ProfileUpdate) (*models.User, error) {
	if f.updateFn == nil {
		return errUnwired[*models.User]()
	}
	return f.updateFn(ctx, accessToken, upd)
}

func (f *fakeAPI) ListEnrollments(ctx context.Context, accessToken string) ([]models.Enrollment, error) {
	if f.listEnrFn == nil {
		return errUnwired[[]models.Enrollment]()
	}
	return f.listEnrFn(ctx, accessToken)
}

func (f *fakeAPI) JoinCourse(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error) {
	if f.joinFn == nil {
		return errUnwired[*models.Enrollment]()
	}
	return f.joinFn(ctx, accessToken, courseID, origin)
}

func (f *fakeAPI) UpdateEnrollmentProgress(ctx context.Context, accessToken string, upd apiclient.ProgressUpdate) (*models.Enrollment, error) {
	if f.progressFn == nil {
		return errUnwired[*models.Enrollment]()
	}
	return f.progressFn(ctx, accessToken, upd)
}

func (f *fakeAPI) ListFavorites(ctx context.Context, accessToken string) ([]models.Favorite, error) {
	if f.listFavFn == nil {
		return errUnwired[[]models.Favorite]()
	}
	return f.listFavFn(ctx, accessToken)
}

func (f *fakeAPI) ToggleFavorite(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*apiclient.ToggleResult, error) {
	if f.toggleFn == nil {
		return errUnwired[*apiclient.ToggleResult]()
	}
	return f.toggleFn(ctx, accessToken, courseID, origin)
}

func (f *fakeAPI) ListAuthoredCourses(ctx context.Context, accessToken string) ([]models.Course, error) {
	if f.listAuthFn == nil {
		return errUnwired[[]models.Course]()
	}
	return f.listAuthFn(ctx, accessToken)
}

func (f *fakeAPI) CreateAuthoredCourse(ctx context.Context, accessToken string, draft apiclient.CourseDraft) (*models.Course, error) {
	if f.createFn == nil {
		return errUnwired[*models.Course]()
	}
	return f.createFn(ctx, accessToken, draft)
}

func (f *fakeAPI) UpdateAuthoredCourse(ctx context.Context, accessToken string, id uuid.UUID, draft apiclient.CourseDraft) (*models.Course, error) {
	if f.updCrsFn == nil {
		return errUnwired[*models.Course]()
	}
	return f.updCrsFn(ctx, accessToken, id, draft)
}

func (f *fakeAPI) UploadMedia(ctx context.Context, accessToken, filename, contentType string, reader io.Reader) (string, error) {
	if f.uploadFn == nil {
		return errUnwired[string]()
	}
	return f.uploadFn(ctx, accessToken, filename, contentType, reader)
}

// emptyCollections wires the three collection endpoints to return nothing,
// for tests that only care about identity hydration.
func (f *fakeAPI) emptyCollections() *fakeAPI {
	f.listEnrFn = func(ctx context.Context, token string) ([]models.Enrollment, error) {
		return []models.Enrollment{}, nil
	}
	f.listFavFn = func(ctx context.Context, token string) ([]models.Favorite, error) {
		return []models.Favorite{}, nil
	}
	f.listAuthFn = func(ctx context.Context, token string) ([]models.Course, error) {
		return []models.Course{}, nil
	}
	return f
}

func newTestManager(api API, store Store) *Manager {
	return newManager(api, store, logger.Discard())
}

func storedPair(access, refresh string) Store {
	s := NewMemoryStore()
	_ = s.Save(models.Credentials{AccessToken: access, RefreshToken: refresh})
	return s
}

func unauthorizedErr() error {
	return &apiclient.Error{Kind: apiclient.KindUnauthorized, Status: 401, Message: "token expired"}
}
