// Package session owns the authenticated session lifecycle for a CourseHub
// client: the persisted credential pair, the refresh-and-retry executor, the
// start-up hydration of the user snapshot, and the reconciliation of
// server-confirmed mutations into that snapshot.
package session

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
	"CourseHub/pkg/logger"
)

// API is the resource-API surface the session layer consumes. Implemented by
// apiclient.Client.
type API interface {
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*apiclient.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error)
	Me(ctx context.Context, accessToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, accessToken string, upd apiclient.ProfileUpdate) (*models.User, error)
	ListEnrollments(ctx context.Context, accessToken string) ([]models.Enrollment, error)
	JoinCourse(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error)
	UpdateEnrollmentProgress(ctx context.Context, accessToken string, upd apiclient.ProgressUpdate) (*models.Enrollment, error)
	ListFavorites(ctx context.Context, accessToken string) ([]models.Favorite, error)
	ToggleFavorite(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*apiclient.ToggleResult, error)
	ListAuthoredCourses(ctx context.Context, accessToken string) ([]models.Course, error)
	CreateAuthoredCourse(ctx context.Context, accessToken string, draft apiclient.CourseDraft) (*models.Course, error)
	UpdateAuthoredCourse(ctx context.Context, accessToken string, id uuid.UUID, draft apiclient.CourseDraft) (*models.Course, error)
	UploadMedia(ctx context.Context, accessToken, filename, contentType string, reader io.Reader) (string, error)
}

var validate = validator.New()

type Config struct {
	BaseURL string
	Timeout time.Duration
	Store   Store
	Log     logger.Log
}

// Manager is the session state machine. All snapshot mutations flow through
// apply, which serializes transforms so concurrent confirmed mutations never
// clobber each other.
type Manager struct {
	log   logger.Log
	api   API
	store Store

	mu      sync.RWMutex
	state   State
	catalog map[uuid.UUID]models.CourseSummary
	subs    map[int]chan State
	nextSub int

	refreshMu sync.Mutex
}

func New(cfg Config) *Manager {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Log == nil {
		cfg.Log = logger.New("prod")
	}
	return newManager(apiclient.New(cfg.BaseURL, cfg.Timeout), cfg.Store, cfg.Log)
}

func newManager(api API, store Store, log logger.Log) *Manager {
	return &Manager{
		log:     log,
		api:     api,
		store:   store,
		state:   State{Status: StatusLoading},
		catalog: make(map[uuid.UUID]models.CourseSummary),
		subs:    make(map[int]chan State),
	}
}

// Bootstrap resolves the initial loading state from persisted credentials: no
// pair means unauthenticated, a pair means hydrate (which itself falls back
// to unauthenticated on any failure).
func (m *Manager) Bootstrap(ctx context.Context) error {
	pair, err := m.store.Load()
	if err != nil {
		m.log.ErrorErr("session: loading persisted credentials", err)
		m.resetSession()
		return err
	}
	if pair == nil {
		m.apply(func(State) State { return State{Status: StatusUnauthenticated} })
		return nil
	}
	if err := m.hydrate(ctx); err != nil {
		m.log.ErrorErr("session: bootstrap hydration failed", err)
		return err
	}
	return nil
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := validate.Struct(in); err != nil {
		return apiclient.NewError(apiclient.KindValidation, err.Error())
	}
	resp, err := m.api.Login(ctx, in.Email, in.Password)
	if err != nil {
		return err
	}
	if err := m.store.Save(resp.Credentials); err != nil {
		return err
	}
	return m.hydrate(ctx)
}

type RegisterInput struct {
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6,max=72"`
	Bio       string
	AvatarURL string `validate:"omitempty,url"`
}

func (m *Manager) Register(ctx context.Context, in RegisterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return apiclient.NewError(apiclient.KindValidation, err.Error())
	}
	resp, err := m.api.Register(ctx, apiclient.RegisterRequest{
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
	})
	if err != nil {
		return err
	}
	if err := m.store.Save(resp.Credentials); err != nil {
		return err
	}
	return m.hydrate(ctx)
}

func (m *Manager) Logout() {
	m.resetSession()
}

// resetSession drops the persisted pair and lands the state machine in
// unauthenticated.
func (m *Manager) resetSession() {
	if err := m.store.Clear(); err != nil {
		m.log.ErrorErr("session: clearing credential store", err)
	}
	m.apply(func(State) State { return State{Status: StatusUnauthenticated} })
}
