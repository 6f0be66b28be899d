package catalog

import (
	"context"

	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListPublished(ctx context.Context, offset, limit int) ([]models.Course, error)
	CountPublished(ctx context.Context) (int, error)
	CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

// Page is one catalog listing page.
type Page struct {
	Items []models.Course
	Total int
}

type CatalogService struct {
	log        logger.Log
	courseRepo courseRepo
	search     searchRepo
}

func NewCatalogService(l logger.Log, c courseRepo, s searchRepo) *CatalogService {
	return &CatalogService{log: l, courseRepo: c, search: s}
}

func (s *CatalogService) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courseRepo.CourseByID(ctx, id)
}

// List returns published courses. A non-empty query goes through the search
// index; pagination applies to the plain listing only.
func (s *CatalogService) List(ctx context.Context, query string, page, limit int) (*Page, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	if query != "" && s.search != nil {
		ids, err := s.search.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &Page{Items: []models.Course{}, Total: 0}, nil
		}
		items, err := s.courseRepo.CoursesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return &Page{Items: items, Total: len(items)}, nil
	}

	items, err := s.courseRepo.ListPublished(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.courseRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total}, nil
}
