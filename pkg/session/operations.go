package session

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
)

func (m *Manager) snapshot() (*models.UserSnapshot, error) {
	st := m.State()
	if st.Status != StatusAuthenticated || st.User == nil {
		return nil, apiclient.NewError(apiclient.KindUnauthorized, "not authenticated")
	}
	return st.User, nil
}

// JoinCourse enrolls the current user. Joining a course that is already
// enrolled is a local no-op returning the existing record.
func (m *Manager) JoinCourse(ctx context.Context, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error) {
	user, err := m.snapshot()
	if err != nil {
		return nil, err
	}
	if existing := user.EnrollmentByCourse(courseID); existing != nil {
		return existing.Clone(), nil
	}

	enrollment, err := execute(ctx, m, func(ctx context.Context, token string) (*models.Enrollment, error) {
		return m.api.JoinCourse(ctx, token, courseID, origin)
	})
	if err != nil {
		return nil, err
	}

	m.mergeCatalog(enrollment.Course)
	m.applyUser(func(u *models.UserSnapshot) {
		u.Enrollments = append(u.Enrollments, *enrollment.Clone())
	})
	return enrollment, nil
}

// MarkContentComplete adds one content item to the enrollment's completed
// set. Re-marking a completed item is a no-op. The snapshot only changes
// after the server confirms the write.
func (m *Manager) MarkContentComplete(ctx context.Context, courseID uuid.UUID, contentID string) error {
	user, err := m.snapshot()
	if err != nil {
		return err
	}
	enrollment := user.EnrollmentByCourse(courseID)
	if enrollment == nil {
		return apiclient.NewError(apiclient.KindNotFound, "not enrolled in course")
	}
	if enrollment.HasCompleted(contentID) {
		return nil
	}

	completed := append(append([]string(nil), enrollment.CompletedContentIDs...), contentID)
	confirmed, err := execute(ctx, m, func(ctx context.Context, token string) (*models.Enrollment, error) {
		return m.api.UpdateEnrollmentProgress(ctx, token, apiclient.ProgressUpdate{
			EnrollmentID:        enrollment.ID,
			CompletedContentIDs: completed,
			QuizAttempts:        enrollment.QuizAttempts,
		})
	})
	if err != nil {
		return err
	}

	m.replaceEnrollment(confirmed)
	return nil
}

// SubmitQuiz scores a full submission locally for fail-fast validation,
// upserts the attempt (a resubmission replaces the prior attempt for that
// quiz) and counts the quiz item as completed content. The authoritative
// score is whatever the server confirms back.
func (m *Manager) SubmitQuiz(ctx context.Context, courseID uuid.UUID, quiz models.ContentItem, selections []int) (*models.QuizAttempt, error) {
	user, err := m.snapshot()
	if err != nil {
		return nil, err
	}
	if quiz.Type != models.ContentTypeQuiz {
		return nil, apiclient.NewError(apiclient.KindValidation, "content item is not a quiz")
	}
	enrollment := user.EnrollmentByCourse(courseID)
	if enrollment == nil {
		return nil, apiclient.NewError(apiclient.KindNotFound, "not enrolled in course")
	}

	scored, total, err := ScoreQuiz(quiz.Questions, selections)
	if err != nil {
		return nil, err
	}
	attempt := models.QuizAttempt{
		QuizID:                quiz.ID,
		SelectedOptionIndexes: append([]int(nil), selections...),
		ScoredPoints:          scored,
		TotalPoints:           total,
		CompletedAt:           time.Now().UTC(),
	}

	attempts := upsertAttempt(enrollment.QuizAttempts, attempt)
	completed := enrollment.CompletedContentIDs
	if !enrollment.HasCompleted(quiz.ID) {
		completed = append(append([]string(nil), completed...), quiz.ID)
	}

	confirmed, err := execute(ctx, m, func(ctx context.Context, token string) (*models.Enrollment, error) {
		return m.api.UpdateEnrollmentProgress(ctx, token, apiclient.ProgressUpdate{
			EnrollmentID:        enrollment.ID,
			CompletedContentIDs: completed,
			QuizAttempts:        attempts,
		})
	})
	if err != nil {
		return nil, err
	}

	m.replaceEnrollment(confirmed)
	if got := confirmed.AttemptFor(quiz.ID); got != nil {
		return got, nil
	}
	return &attempt, nil
}

func upsertAttempt(attempts []models.QuizAttempt, attempt models.QuizAttempt) []models.QuizAttempt {
	out := make([]models.QuizAttempt, 0, len(attempts)+1)
	replaced := false
	for _, a := range attempts {
		if a.QuizID == attempt.QuizID {
			out = append(out, attempt)
			replaced = true
			continue
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, attempt)
	}
	return out
}

func (m *Manager) replaceEnrollment(confirmed *models.Enrollment) {
	m.applyUser(func(u *models.UserSnapshot) {
		for i := range u.Enrollments {
			if u.Enrollments[i].ID == confirmed.ID {
				u.Enrollments[i] = *confirmed.Clone()
				return
			}
		}
		u.Enrollments = append(u.Enrollments, *confirmed.Clone())
	})
}

// ToggleFavorite flips membership of the (course, origin) pair. The server
// adjudicates presence; the snapshot is reconciled to the reported outcome,
// so two rapid toggles are two server-ordered flips rather than two guessed
// client states.
func (m *Manager) ToggleFavorite(ctx context.Context, courseID uuid.UUID, origin models.Origin) (removed bool, err error) {
	if _, err := m.snapshot(); err != nil {
		return false, err
	}

	result, err := execute(ctx, m, func(ctx context.Context, token string) (*apiclient.ToggleResult, error) {
		return m.api.ToggleFavorite(ctx, token, courseID, origin)
	})
	if err != nil {
		return false, err
	}

	if !result.Removed && result.Favorite != nil {
		m.mergeCatalog(result.Favorite.Course)
	}
	m.applyUser(func(u *models.UserSnapshot) {
		filtered := u.Favorites[:0:0]
		for _, f := range u.Favorites {
			if f.CourseID == courseID && f.Origin == origin {
				continue
			}
			filtered = append(filtered, f)
		}
		if !result.Removed && result.Favorite != nil {
			filtered = append(filtered, *result.Favorite)
		}
		u.Favorites = filtered
	})
	return result.Removed, nil
}

// CreateCourse persists a new authored course and prepends it to the
// snapshot's authored list.
func (m *Manager) CreateCourse(ctx context.Context, draft apiclient.CourseDraft) (*models.Course, error) {
	if _, err := m.snapshot(); err != nil {
		return nil, err
	}
	course, err := execute(ctx, m, func(ctx context.Context, token string) (*models.Course, error) {
		return m.api.CreateAuthoredCourse(ctx, token, draft)
	})
	if err != nil {
		return nil, err
	}
	m.applyUser(func(u *models.UserSnapshot) {
		u.AuthoredCourses = append([]models.Course{*course.Clone()}, u.AuthoredCourses...)
	})
	return course, nil
}

// UpdateCourse replaces an authored course with the server-confirmed version.
func (m *Manager) UpdateCourse(ctx context.Context, id uuid.UUID, draft apiclient.CourseDraft) (*models.Course, error) {
	if _, err := m.snapshot(); err != nil {
		return nil, err
	}
	course, err := execute(ctx, m, func(ctx context.Context, token string) (*models.Course, error) {
		return m.api.UpdateAuthoredCourse(ctx, token, id, draft)
	})
	if err != nil {
		return nil, err
	}
	m.applyUser(func(u *models.UserSnapshot) {
		for i := range u.AuthoredCourses {
			if u.AuthoredCourses[i].ID == course.ID {
				u.AuthoredCourses[i] = *course.Clone()
				return
			}
		}
		u.AuthoredCourses = append(u.AuthoredCourses, *course.Clone())
	})
	return course, nil
}

// UpdateProfile pushes partial identity fields and merges the confirmed
// record into the snapshot.
func (m *Manager) UpdateProfile(ctx context.Context, upd apiclient.ProfileUpdate) error {
	if _, err := m.snapshot(); err != nil {
		return err
	}
	trimPtr(upd.Name)
	trimPtr(upd.Bio)
	trimPtr(upd.AvatarURL)
	if upd.Email != nil {
		*upd.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
		if err := validate.Var(*upd.Email, "required,email"); err != nil {
			return apiclient.NewError(apiclient.KindValidation, "malformed email")
		}
	}

	user, err := execute(ctx, m, func(ctx context.Context, token string) (*models.User, error) {
		return m.api.UpdateProfile(ctx, token, upd)
	})
	if err != nil {
		return err
	}

	m.applyUser(func(u *models.UserSnapshot) {
		u.Name = user.Name
		u.Email = user.Email
		if user.AvatarURL != "" {
			u.AvatarURL = user.AvatarURL
		}
		u.Bio = user.Bio
	})
	return nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// UploadMedia streams a file to the media store and returns its URL. The
// returned URL is a preview value until the caller commits it through an
// explicit profile or course write.
func (m *Manager) UploadMedia(ctx context.Context, filename, contentType string, reader io.Reader) (string, error) {
	if _, err := m.snapshot(); err != nil {
		return "", err
	}
	return execute(ctx, m, func(ctx context.Context, token string) (string, error) {
		return m.api.UploadMedia(ctx, token, filename, contentType, reader)
	})
}
