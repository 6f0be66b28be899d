package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

// enrollmentSelect joins the owning course so every enrollment row carries its
// course summary without a second round trip.
const enrollmentSelect = `
	SELECT e.id, e.course_id, e.progress_percent, e.completed_content_ids, e.quiz_attempts,
	       e.last_accessed_at, e.origin,
	       c.title, c.instructor, c.description, c.price, c.category, c.image_url
	  FROM enrollments e
	  JOIN courses c ON c.id = e.course_id
`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	var completedJSON, attemptsJSON []byte
	err := row.Scan(
		&e.ID,
		&e.CourseID,
		&e.ProgressPercent,
		&completedJSON,
		&attemptsJSON,
		&e.LastAccessedAt,
		&e.Origin,
		&e.Course.Title,
		&e.Course.Instructor,
		&e.Course.Description,
		&e.Course.Price,
		&e.Course.Category,
		&e.Course.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	e.Course.ID = e.CourseID
	if err := decodeJSONColumn(completedJSON, &e.CompletedContentIDs); err != nil {
		return nil, fmt.Errorf("decode completed ids: %w", err)
	}
	if err := decodeJSONColumn(attemptsJSON, &e.QuizAttempts); err != nil {
		return nil, fmt.Errorf("decode quiz attempts: %w", err)
	}
	if e.CompletedContentIDs == nil {
		e.CompletedContentIDs = []string{}
	}
	if e.QuizAttempts == nil {
		e.QuizAttempts = []models.QuizAttempt{}
	}
	return &e, nil
}

func decodeJSONColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func (r *EnrollmentPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	query := enrollmentSelect + ` WHERE e.user_id = $1 ORDER BY e.last_accessed_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, *e)
	}
	return enrollments, rows.Err()
}

func (r *EnrollmentPostgres) ByID(ctx context.Context, id, userID uuid.UUID) (*models.Enrollment, error) {
	query := enrollmentSelect + ` WHERE e.id = $1 AND e.user_id = $2`
	return scanEnrollment(r.db.QueryRow(ctx, query, id, userID))
}

func (r *EnrollmentPostgres) ByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := enrollmentSelect + ` WHERE e.user_id = $1 AND e.course_id = $2`
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID))
}

func (r *EnrollmentPostgres) Create(ctx context.Context, userID uuid.UUID, e models.Enrollment) (*models.Enrollment, error) {
	completedJSON, attemptsJSON, err := encodeProgress(e)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.New()
	query := `
		INSERT INTO enrollments (id, user_id, course_id, progress_percent, completed_content_ids, quiz_attempts, last_accessed_at, origin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		e.ID, userID, e.CourseID, e.ProgressPercent, completedJSON, attemptsJSON, e.LastAccessedAt, e.Origin,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, app_errors.ErrAlreadyEnrolled
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentPostgres) Update(ctx context.Context, userID uuid.UUID, e models.Enrollment) (*models.Enrollment, error) {
	completedJSON, attemptsJSON, err := encodeProgress(e)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE enrollments
		   SET progress_percent = $3, completed_content_ids = $4, quiz_attempts = $5, last_accessed_at = $6
		 WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		e.ID, userID, e.ProgressPercent, completedJSON, attemptsJSON, e.LastAccessedAt,
	)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return &e, nil
}

func encodeProgress(e models.Enrollment) (completed, attempts []byte, err error) {
	if e.CompletedContentIDs == nil {
		e.CompletedContentIDs = []string{}
	}
	if e.QuizAttempts == nil {
		e.QuizAttempts = []models.QuizAttempt{}
	}
	completed, err = json.Marshal(e.CompletedContentIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("encode completed ids: %w", err)
	}
	attempts, err = json.Marshal(e.QuizAttempts)
	if err != nil {
		return nil, nil, fmt.Errorf("encode quiz attempts: %w", err)
	}
	return completed, attempts, nil
}
