package models

import "github.com/google/uuid"

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
}

// UserSnapshot is the client-side view of the current user together with the
// three per-user collections. It is owned by the session state machine and
// replaced wholesale on every confirmed mutation; Clone produces the deep copy
// a transform mutates before it is swapped in.
type UserSnapshot struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	AvatarURL       string       `json:"avatar_url"`
	Bio             string       `json:"bio"`
	Enrollments     []Enrollment `json:"enrollments"`
	AuthoredCourses []Course     `json:"authored_courses"`
	Favorites       []Favorite   `json:"favorites"`
}

func (s *UserSnapshot) Clone() *UserSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Enrollments = make([]Enrollment, len(s.Enrollments))
	for i := range s.Enrollments {
		out.Enrollments[i] = *s.Enrollments[i].Clone()
	}
	out.AuthoredCourses = make([]Course, len(s.AuthoredCourses))
	for i := range s.AuthoredCourses {
		out.AuthoredCourses[i] = *s.AuthoredCourses[i].Clone()
	}
	out.Favorites = append([]Favorite(nil), s.Favorites...)
	return &out
}

// EnrollmentByCourse returns the enrollment for the given course, or nil.
func (s *UserSnapshot) EnrollmentByCourse(courseID uuid.UUID) *Enrollment {
	for i := range s.Enrollments {
		if s.Enrollments[i].CourseID == courseID {
			return &s.Enrollments[i]
		}
	}
	return nil
}
