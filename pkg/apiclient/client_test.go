package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"CourseHub/internal/models"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestKindFromStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusConflict, KindConflict},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusInternalServerError, KindTransient},
		{http.StatusBadGateway, KindTransient},
		{http.StatusForbidden, KindTransient},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, kindFromStatus(tc.status), "status %d", tc.status)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		kind   Kind
		msg    string
	}{
		{"unauthorized with body", http.StatusUnauthorized, `{"error":"token expired"}`, KindUnauthorized, "token expired"},
		{"conflict", http.StatusConflict, `{"error":"already enrolled"}`, KindConflict, "already enrolled"},
		{"not found", http.StatusNotFound, `{"error":"course not found"}`, KindNotFound, "course not found"},
		{"validation", http.StatusUnprocessableEntity, `{"error":"bad modules"}`, KindValidation, "bad modules"},
		{"server error without body", http.StatusInternalServerError, ``, KindTransient, "500 Internal Server Error"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.Me(context.Background(), "token")
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tc.kind, apiErr.Kind)
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, tc.msg, apiErr.Message)
		})
	}
}

func TestClient_TransportFailureIsTransient(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Me(context.Background(), "token")
	require.Error(t, err)
	require.Equal(t, KindTransient, KindOf(err))
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "dana@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{
			Credentials: models.Credentials{AccessToken: "a1", RefreshToken: "r1"},
			User:        models.User{Name: "Dana", Email: "dana@example.com"},
		})
	})

	resp, err := c.Login(context.Background(), "dana@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "a1", resp.Credentials.AccessToken)
	require.Equal(t, "Dana", resp.User.Name)
}

func TestClient_AuthenticatedCallSendsBearer(t *testing.T) {
	t.Parallel()

	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	enrollments, err := c.ListEnrollments(context.Background(), "secret-token")
	require.NoError(t, err)
	require.Empty(t, enrollments)
}

func TestClient_ListCoursesQueryParams(t *testing.T) {
	t.Parallel()

	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "golang", q.Get("query"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "50", q.Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CourseList{Items: []models.Course{}, Total: 0})
	})

	_, err := c.ListCourses(context.Background(), "golang", 2, 50)
	require.NoError(t, err)
}
