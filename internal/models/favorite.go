package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks one (course, origin) pair as favorited by a user. Uniqueness
// key is (user, course, origin); membership is flipped by a single toggle
// operation, never by separate add/remove endpoints.
type Favorite struct {
	ID       uuid.UUID     `json:"id"`
	CourseID uuid.UUID     `json:"course_id"`
	Course   CourseSummary `json:"course"`
	Origin   Origin        `json:"origin"`
	AddedAt  time.Time     `json:"added_at"`
}
