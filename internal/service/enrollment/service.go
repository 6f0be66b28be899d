package enrollment

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type enrollmentRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error)
	ByID(ctx context.Context, id, userID uuid.UUID) (*models.Enrollment, error)
	ByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	Create(ctx context.Context, userID uuid.UUID, e models.Enrollment) (*models.Enrollment, error)
	Update(ctx context.Context, userID uuid.UUID, e models.Enrollment) (*models.Enrollment, error)
}

// ProgressUpdate is the client-submitted delta for one enrollment. Scores and
// percentages in attempts are advisory; the service recomputes both.
type ProgressUpdate struct {
	EnrollmentID        uuid.UUID
	CompletedContentIDs []string
	QuizAttempts        []models.QuizAttempt
}

type EnrollmentService struct {
	log        logger.Log
	courseRepo courseRepo
	enrollRepo enrollmentRepo
}

func NewEnrollmentService(l logger.Log, c courseRepo, e enrollmentRepo) *EnrollmentService {
	return &EnrollmentService{log: l, courseRepo: c, enrollRepo: e}
}

func (s *EnrollmentService) List(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	return s.enrollRepo.ListByUser(ctx, userID)
}

// Join creates the (user, course) enrollment. The course must be published
// unless the user authored it.
func (s *EnrollmentService) Join(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished && course.AuthorID != userID {
		return nil, app_errors.ErrCourseNotPublished
	}
	if existing, err := s.enrollRepo.ByUserAndCourse(ctx, userID, courseID); err == nil && existing != nil {
		return nil, app_errors.ErrAlreadyEnrolled
	}

	e := models.Enrollment{
		CourseID:            courseID,
		Course:              course.Summary(),
		ProgressPercent:     0,
		CompletedContentIDs: []string{},
		QuizAttempts:        []models.QuizAttempt{},
		LastAccessedAt:      time.Now().UTC(),
		Origin:              origin,
	}
	return s.enrollRepo.Create(ctx, userID, e)
}

// UpdateProgress applies a confirmed progress write. The completed set is
// merged monotonically (ids never leave the set), every submitted attempt's
// score is recomputed from the course's quiz questions, and the percentage is
// derived from the distinct completed count against the course content total.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, userID uuid.UUID, upd ProgressUpdate) (*models.Enrollment, error) {
	enrollment, err := s.enrollRepo.ByID(ctx, upd.EnrollmentID, userID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.CourseByID(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	enrollment.CompletedContentIDs = mergeCompleted(enrollment.CompletedContentIDs, upd.CompletedContentIDs)

	attempts := make([]models.QuizAttempt, 0, len(upd.QuizAttempts))
	seen := make(map[string]bool, len(upd.QuizAttempts))
	for _, a := range upd.QuizAttempts {
		if seen[a.QuizID] {
			continue
		}
		seen[a.QuizID] = true
		scored, err := s.scoreAttempt(course, a)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, scored)
	}
	enrollment.QuizAttempts = attempts

	enrollment.ProgressPercent = progressPercent(len(enrollment.CompletedContentIDs), course.ContentItemCount())
	enrollment.LastAccessedAt = time.Now().UTC()

	return s.enrollRepo.Update(ctx, userID, *enrollment)
}

// scoreAttempt recomputes scored and total points from the selected option
// indexes. Whatever the client sent in those fields is discarded.
func (s *EnrollmentService) scoreAttempt(course *models.Course, a models.QuizAttempt) (models.QuizAttempt, error) {
	quiz := course.QuizItem(a.QuizID)
	if quiz == nil {
		return models.QuizAttempt{}, app_errors.ErrQuizNotFound
	}

	scored, total := 0, 0
	for i, q := range quiz.Questions {
		total += q.Points
		if i >= len(a.SelectedOptionIndexes) {
			continue
		}
		if a.SelectedOptionIndexes[i] == q.AnswerIndex {
			scored += q.Points
		}
	}
	a.ScoredPoints = scored
	a.TotalPoints = total
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}
	return a, nil
}

// mergeCompleted unions incoming ids into the existing set. Removal is not a
// supported transition; the set only grows.
func mergeCompleted(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range incoming {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func progressPercent(distinctCompleted, totalContentCount int) int {
	if totalContentCount < 1 {
		totalContentCount = 1
	}
	p := int(math.Round(100 * float64(distinctCompleted) / float64(totalContentCount)))
	if p > 100 {
		p = 100
	}
	return p
}
