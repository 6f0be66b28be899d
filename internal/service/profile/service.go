package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
}

// Update carries partial identity fields; nil means "leave untouched".
type Update struct {
	Name      *string
	Email     *string
	AvatarURL *string
	Bio       *string
	Password  *string
}

type ProfileService struct {
	log      logger.Log
	userRepo userRepo
}

func NewProfileService(l logger.Log, repo userRepo) *ProfileService {
	return &ProfileService{log: l, userRepo: repo}
}

func (s *ProfileService) Identity(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.UserByID(ctx, userID)
}

func (s *ProfileService) UpdateIdentity(ctx context.Context, userID uuid.UUID, upd Update) (*models.User, error) {
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil && strings.TrimSpace(*upd.Email) != "" {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*upd.AvatarURL)
	}
	if upd.Bio != nil {
		user.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.Password != nil && *upd.Password != "" {
		if len(*upd.Password) < 6 || len(*upd.Password) > 72 {
			return nil, app_errors.ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	return s.userRepo.UpdateUser(ctx, *user)
}
