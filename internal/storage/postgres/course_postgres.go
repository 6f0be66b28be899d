package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `id, title, instructor, description, price, category, image_url, is_published, modules, author_id, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var modulesJSON []byte
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Instructor,
		&course.Description,
		&course.Price,
		&course.Category,
		&course.ImageURL,
		&course.IsPublished,
		&modulesJSON,
		&course.AuthorID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	if len(modulesJSON) > 0 {
		if err := json.Unmarshal(modulesJSON, &course.Modules); err != nil {
			return nil, fmt.Errorf("decode course modules: %w", err)
		}
	}
	if course.Modules == nil {
		course.Modules = []models.CourseModule{}
	}
	return &course, nil
}

func (r *CoursePostgres) Create(ctx context.Context, course *models.Course) error {
	modulesJSON, err := json.Marshal(course.Modules)
	if err != nil {
		return fmt.Errorf("encode course modules: %w", err)
	}
	query := `
		INSERT INTO courses (id, title, instructor, description, price, category, image_url, is_published, modules, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.db.Exec(ctx, query,
		course.ID, course.Title, course.Instructor, course.Description, course.Price,
		course.Category, course.ImageURL, course.IsPublished, modulesJSON,
		course.AuthorID, course.CreatedAt, course.UpdatedAt,
	)
	return err
}

func (r *CoursePostgres) Update(ctx context.Context, course *models.Course) error {
	modulesJSON, err := json.Marshal(course.Modules)
	if err != nil {
		return fmt.Errorf("encode course modules: %w", err)
	}
	query := `
		UPDATE courses
		   SET title = $2, instructor = $3, description = $4, price = $5, category = $6,
		       image_url = $7, is_published = $8, modules = $9, updated_at = $10
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		course.ID, course.Title, course.Instructor, course.Description, course.Price,
		course.Category, course.ImageURL, course.IsPublished, modulesJSON, course.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE author_id = $1 ORDER BY updated_at DESC`
	return r.queryCourses(ctx, query, authorID)
}

func (r *CoursePostgres) ListPublished(ctx context.Context, offset, limit int) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_published ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	return r.queryCourses(ctx, query, offset, limit)
}

func (r *CoursePostgres) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM courses WHERE is_published`).Scan(&count)
	return count, err
}

func (r *CoursePostgres) CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ANY($1)`
	return r.queryCourses(ctx, query, ids)
}

func (r *CoursePostgres) queryCourses(ctx context.Context, query string, args ...any) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}
