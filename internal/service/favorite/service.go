package favorite

import (
	"context"

	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type favoriteRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	Toggle(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (removed bool, fav *models.Favorite, err error)
}

// ToggleResult is the server-adjudicated outcome of one flip.
type ToggleResult struct {
	Removed  bool
	Favorite *models.Favorite
}

type FavoriteService struct {
	log        logger.Log
	courseRepo courseRepo
	favRepo    favoriteRepo
}

func NewFavoriteService(l logger.Log, c courseRepo, f favoriteRepo) *FavoriteService {
	return &FavoriteService{log: l, courseRepo: c, favRepo: f}
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	return s.favRepo.ListByUser(ctx, userID)
}

// Toggle flips membership of (user, course, origin) atomically. Presence
// means remove, absence means add; the storage layer performs the existence
// check and the flip inside one transaction, so two rapid toggles are two
// ordered flips.
func (s *FavoriteService) Toggle(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (*ToggleResult, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	removed, fav, err := s.favRepo.Toggle(ctx, userID, courseID, origin)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Removed: removed, Favorite: fav}, nil
}
