package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Origin classifies a course reference: platform catalog or authored by the
// current user.
type Origin string

const (
	OriginCatalog  Origin = "catalog"
	OriginAuthored Origin = "authored"
)

func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case OriginCatalog, OriginAuthored:
		return Origin(s), nil
	}
	return "", fmt.Errorf("unknown origin %q", s)
}

const (
	ContentTypeText  = "text"
	ContentTypeVideo = "video"
	ContentTypeQuiz  = "quiz"
)

type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Points      int      `json:"points"`
}

// ContentItem is one entry of a course module. Type selects which of the
// variant fields are meaningful: Body for text, URL/Duration for video,
// Questions/TotalPoints for quiz.
type ContentItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Body        string         `json:"body,omitempty"`
	URL         string         `json:"url,omitempty"`
	Duration    string         `json:"duration,omitempty"`
	Questions   []QuizQuestion `json:"questions,omitempty"`
	TotalPoints int            `json:"total_points,omitempty"`
}

type CourseModule struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Items       []ContentItem `json:"items"`
}

type Course struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Instructor  string         `json:"instructor"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	ImageURL    string         `json:"image_url"`
	IsPublished bool           `json:"is_published"`
	Modules     []CourseModule `json:"modules"`
	AuthorID    uuid.UUID      `json:"author_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	out := *c
	out.Modules = make([]CourseModule, len(c.Modules))
	for i, m := range c.Modules {
		cm := m
		cm.Items = make([]ContentItem, len(m.Items))
		for j, it := range m.Items {
			ci := it
			if it.Questions != nil {
				ci.Questions = make([]QuizQuestion, len(it.Questions))
				for k, q := range it.Questions {
					cq := q
					cq.Options = append([]string(nil), q.Options...)
					ci.Questions[k] = cq
				}
			}
			cm.Items[j] = ci
		}
		out.Modules[i] = cm
	}
	return &out
}

// ContentItemCount is the total addressable content-item count used by
// progress derivation.
func (c *Course) ContentItemCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Items)
	}
	return n
}

// QuizItem finds the quiz content item with the given id across all modules.
func (c *Course) QuizItem(id string) *ContentItem {
	for i := range c.Modules {
		for j := range c.Modules[i].Items {
			it := &c.Modules[i].Items[j]
			if it.Type == ContentTypeQuiz && it.ID == id {
				return it
			}
		}
	}
	return nil
}

func (c *Course) Summary() CourseSummary {
	return CourseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Instructor:  c.Instructor,
		Description: c.Description,
		Price:       c.Price,
		Category:    c.Category,
		ImageURL:    c.ImageURL,
	}
}

// CourseSummary is the embedded course view carried by enrollments and
// favorites so course metadata is available outside the default catalog page.
type CourseSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Instructor  string    `json:"instructor"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
}
