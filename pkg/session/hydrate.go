package session

import (
	"context"
	"sync"

	"CourseHub/internal/models"
)

// hydrate fetches the identity record and the three per-user collections
// concurrently and assembles one consistent snapshot. All four fetches must
// succeed; any failure resets the session so readers never observe a snapshot
// assembled from a subset.
func (m *Manager) hydrate(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		user        *models.User
		enrollments []models.Enrollment
		favorites   []models.Favorite
		authored    []models.Course
	)
	errs := make([]error, 4)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		user, errs[0] = execute(ctx, m, m.api.Me)
	}()
	go func() {
		defer wg.Done()
		enrollments, errs[1] = execute(ctx, m, m.api.ListEnrollments)
	}()
	go func() {
		defer wg.Done()
		favorites, errs[2] = execute(ctx, m, m.api.ListFavorites)
	}()
	go func() {
		defer wg.Done()
		authored, errs[3] = execute(ctx, m, m.api.ListAuthoredCourses)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			m.resetSession()
			return err
		}
	}

	summaries := make([]models.CourseSummary, 0, len(enrollments)+len(favorites))
	for _, e := range enrollments {
		summaries = append(summaries, e.Course)
	}
	for _, f := range favorites {
		summaries = append(summaries, f.Course)
	}
	m.mergeCatalog(summaries...)

	snapshot := &models.UserSnapshot{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		AvatarURL:       user.AvatarURL,
		Bio:             user.Bio,
		Enrollments:     enrollments,
		AuthoredCourses: authored,
		Favorites:       favorites,
	}
	m.apply(func(State) State {
		return State{Status: StatusAuthenticated, User: snapshot}
	})
	return nil
}
