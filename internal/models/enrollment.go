package models

import (
	"time"

	"github.com/google/uuid"
)

type QuizAttempt struct {
	QuizID                string    `json:"quiz_id"`
	SelectedOptionIndexes []int     `json:"selected_option_indexes"`
	ScoredPoints          int       `json:"scored_points"`
	TotalPoints           int       `json:"total_points"`
	CompletedAt           time.Time `json:"completed_at"`
}

// Enrollment is a user's join-and-progress record against one course.
// ProgressPercent is always derived from the completed set size and the
// course content total; CompletedContentIDs is a set that only grows.
type Enrollment struct {
	ID                  uuid.UUID     `json:"id"`
	CourseID            uuid.UUID     `json:"course_id"`
	Course              CourseSummary `json:"course"`
	ProgressPercent     int           `json:"progress_percent"`
	CompletedContentIDs []string      `json:"completed_content_ids"`
	QuizAttempts        []QuizAttempt `json:"quiz_attempts"`
	LastAccessedAt      time.Time     `json:"last_accessed_at"`
	Origin              Origin        `json:"origin"`
}

func (e *Enrollment) Clone() *Enrollment {
	if e == nil {
		return nil
	}
	out := *e
	out.CompletedContentIDs = append([]string(nil), e.CompletedContentIDs...)
	out.QuizAttempts = make([]QuizAttempt, len(e.QuizAttempts))
	for i, a := range e.QuizAttempts {
		ca := a
		ca.SelectedOptionIndexes = append([]int(nil), a.SelectedOptionIndexes...)
		out.QuizAttempts[i] = ca
	}
	return &out
}

func (e *Enrollment) HasCompleted(contentID string) bool {
	for _, id := range e.CompletedContentIDs {
		if id == contentID {
			return true
		}
	}
	return false
}

// AttemptFor returns the retained attempt for the quiz, or nil. At most one
// attempt per quiz id is ever kept.
func (e *Enrollment) AttemptFor(quizID string) *QuizAttempt {
	for i := range e.QuizAttempts {
		if e.QuizAttempts[i].QuizID == quizID {
			return &e.QuizAttempts[i]
		}
	}
	return nil
}
