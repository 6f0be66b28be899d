package authored

import (
	"context"
	"time"

	"github.com/google/uuid"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Draft is the authoring payload shared by create and update.
type Draft struct {
	Title       string
	Instructor  string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	IsPublished bool
	Modules     []models.CourseModule
}

type AuthoredService struct {
	log        logger.Log
	courseRepo courseRepo
	search     searchRepo
}

func NewAuthoredService(l logger.Log, c courseRepo, s searchRepo) *AuthoredService {
	return &AuthoredService{log: l, courseRepo: c, search: s}
}

func (s *AuthoredService) List(ctx context.Context, authorID uuid.UUID) ([]models.Course, error) {
	return s.courseRepo.ListByAuthor(ctx, authorID)
}

func (s *AuthoredService) Create(ctx context.Context, authorID uuid.UUID, draft Draft) (*models.Course, error) {
	if err := validateModules(draft.Modules); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:          uuid.New(),
		Title:       draft.Title,
		Instructor:  draft.Instructor,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		ImageURL:    draft.ImageURL,
		IsPublished: draft.IsPublished,
		Modules:     draft.Modules,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.syncSearch(ctx, course)
	return course, nil
}

// Update rewrites an authored course. Only the creator may edit it.
func (s *AuthoredService) Update(ctx context.Context, authorID, courseID uuid.UUID, draft Draft) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.AuthorID != authorID {
		return nil, app_errors.ErrNotCourseAuthor
	}
	if err := validateModules(draft.Modules); err != nil {
		return nil, err
	}

	course.Title = draft.Title
	course.Instructor = draft.Instructor
	course.Description = draft.Description
	course.Price = draft.Price
	course.Category = draft.Category
	course.ImageURL = draft.ImageURL
	course.IsPublished = draft.IsPublished
	course.Modules = draft.Modules
	course.UpdatedAt = time.Now().UTC()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.syncSearch(ctx, course)
	return course, nil
}

// syncSearch keeps the search index aligned with the publish state. Indexing
// failures are logged, not surfaced: search lags behind rather than failing
// the write.
func (s *AuthoredService) syncSearch(ctx context.Context, course *models.Course) {
	if s.search == nil {
		return
	}
	var err error
	if course.IsPublished {
		err = s.search.Index(ctx, *course)
	} else {
		err = s.search.Delete(ctx, course.ID)
	}
	if err != nil {
		s.log.ErrorErr("authored: search index sync", err, "course_id", course.ID)
	}
}

// validateModules checks the content variants: a known type per item, and a
// quiz's total points equal to the sum of its questions' point values.
func validateModules(modules []models.CourseModule) error {
	for _, m := range modules {
		for _, it := range m.Items {
			switch it.Type {
			case models.ContentTypeText, models.ContentTypeVideo:
			case models.ContentTypeQuiz:
				sum := 0
				for _, q := range it.Questions {
					if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
						return app_errors.ErrInvalidModules
					}
					sum += q.Points
				}
				if sum != it.TotalPoints {
					return app_errors.ErrInvalidModules
				}
			default:
				return app_errors.ErrInvalidModules
			}
		}
	}
	return nil
}
