package apiclient

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"CourseHub/internal/models"
)

// Client is a typed HTTP client for the CourseHub resource API. Authenticated
// calls take the bearer access token explicitly; the caller (normally the
// session executor) owns credential selection and refresh.
type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

type errorBody struct {
	Error string `json:"error"`
}

// wrap converts a resty outcome into the error taxonomy. Transport failures
// and context cancellation come back as transient.
func wrap(resp *resty.Response, err error) error {
	if err != nil {
		return &Error{Kind: KindTransient, Message: err.Error()}
	}
	if resp.IsError() {
		msg := resp.Status()
		if body, ok := resp.Error().(*errorBody); ok && body != nil && body.Error != "" {
			msg = body.Error
		}
		return &Error{Kind: kindFromStatus(resp.StatusCode()), Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&errorBody{})
}

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse carries the issued credential pair plus the identity record,
// returned by register, login and refresh alike.
type AuthResponse struct {
	Credentials models.Credentials `json:"credentials"`
	User        models.User        `json:"user"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	out := &AuthResponse{}
	resp, err := c.r(ctx).SetBody(req).SetResult(out).Post("/v1/auth/register")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	out := &AuthResponse{}
	resp, err := c.r(ctx).SetBody(loginRequest{Email: email, Password: password}).SetResult(out).Post("/v1/auth/login")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	out := &AuthResponse{}
	resp, err := c.r(ctx).SetBody(refreshRequest{RefreshToken: refreshToken}).SetResult(out).Post("/v1/auth/refresh")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context, accessToken string) (*models.User, error) {
	out := &models.User{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetResult(out).Get("/v1/users/me")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfileUpdate carries partial identity fields; nil pointers are left
// untouched server-side.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Password  *string `json:"password,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, accessToken string, upd ProfileUpdate) (*models.User, error) {
	out := &models.User{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetBody(upd).SetResult(out).Patch("/v1/users/me")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEnrollments(ctx context.Context, accessToken string) ([]models.Enrollment, error) {
	var out []models.Enrollment
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetResult(&out).Get("/v1/enrollments")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

type joinCourseRequest struct {
	CourseID uuid.UUID     `json:"course_id"`
	Origin   models.Origin `json:"origin"`
}

func (c *Client) JoinCourse(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error) {
	out := &models.Enrollment{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).
		SetBody(joinCourseRequest{CourseID: courseID, Origin: origin}).
		SetResult(out).Post("/v1/enrollments")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// ProgressUpdate is what the client sends for an enrollment progress write.
// The server recomputes percentages and quiz scores; anything score-like in
// here is advisory only.
type ProgressUpdate struct {
	EnrollmentID        uuid.UUID            `json:"enrollment_id"`
	CompletedContentIDs []string             `json:"completed_content_ids"`
	QuizAttempts        []models.QuizAttempt `json:"quiz_attempts"`
}

func (c *Client) UpdateEnrollmentProgress(ctx context.Context, accessToken string, upd ProgressUpdate) (*models.Enrollment, error) {
	out := &models.Enrollment{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetBody(upd).SetResult(out).Patch("/v1/enrollments/progress")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListFavorites(ctx context.Context, accessToken string) ([]models.Favorite, error) {
	var out []models.Favorite
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetResult(&out).Get("/v1/favorites")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

type toggleFavoriteRequest struct {
	CourseID uuid.UUID     `json:"course_id"`
	Origin   models.Origin `json:"origin"`
}

// ToggleResult reports the server-adjudicated outcome of a favorite toggle.
type ToggleResult struct {
	Removed  bool             `json:"removed"`
	Favorite *models.Favorite `json:"favorite,omitempty"`
}

func (c *Client) ToggleFavorite(ctx context.Context, accessToken string, courseID uuid.UUID, origin models.Origin) (*ToggleResult, error) {
	out := &ToggleResult{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).
		SetBody(toggleFavoriteRequest{CourseID: courseID, Origin: origin}).
		SetResult(out).Post("/v1/favorites/toggle")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAuthoredCourses(ctx context.Context, accessToken string) ([]models.Course, error) {
	var out []models.Course
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetResult(&out).Get("/v1/authored-courses")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// CourseDraft is the authoring payload for create and update.
type CourseDraft struct {
	Title       string                `json:"title"`
	Instructor  string                `json:"instructor"`
	Description string                `json:"description"`
	Price       float64               `json:"price"`
	Category    string                `json:"category"`
	ImageURL    string                `json:"image_url"`
	IsPublished bool                  `json:"is_published"`
	Modules     []models.CourseModule `json:"modules"`
}

func (c *Client) CreateAuthoredCourse(ctx context.Context, accessToken string, draft CourseDraft) (*models.Course, error) {
	out := &models.Course{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetBody(draft).SetResult(out).Post("/v1/authored-courses")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAuthoredCourse(ctx context.Context, accessToken string, id uuid.UUID, draft CourseDraft) (*models.Course, error) {
	out := &models.Course{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).SetBody(draft).SetResult(out).Put("/v1/authored-courses/" + id.String())
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *Client) UploadMedia(ctx context.Context, accessToken, filename, contentType string, reader io.Reader) (string, error) {
	out := &uploadResponse{}
	resp, err := c.r(ctx).SetAuthToken(accessToken).
		SetMultipartField("file", filename, contentType, reader).
		SetResult(out).Post("/v1/media")
	if err := wrap(resp, err); err != nil {
		return "", err
	}
	return out.URL, nil
}

// CourseList is one catalog page.
type CourseList struct {
	Items []models.Course `json:"items"`
	Total int             `json:"total"`
}

func (c *Client) ListCourses(ctx context.Context, query string, page, limit int) (*CourseList, error) {
	out := &CourseList{}
	req := c.r(ctx).SetResult(out)
	if query != "" {
		req.SetQueryParam("query", query)
	}
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	resp, err := req.Get("/v1/courses")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}
