package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/core/service"
	"github.com/guilliammrst/enrollment-api/internal/infrastructure/db/memory"
)

// The router is built once: the prometheus middleware registers its
// collectors globally and cannot be instantiated twice per process.
func TestRouter_Scenarios(t *testing.T) {
	store := memory.NewStore()
	seeder := service.NewSeeder(store.Users(), store.Courses(), store.Enrollments(), service.SeedConfig{
		AdminEmail:      "admin@test.com",
		AdminPassword:   "test",
		StudentEmail:    "student@test.com",
		StudentPassword: "test",
	}, zerolog.Nop())
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := NewRouter(Dependencies{
		Users:       store.Users(),
		Courses:     store.Courses(),
		Enrollments: store.Enrollments(),
		JWTSecret:   "test-secret",
		Logger:      zerolog.Nop(),
	})

	asAdmin := basicAuth("admin@test.com", "test")
	asStudent := basicAuth("student@test.com", "test")

	do := func(method, path, auth, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if auth != "" {
			req.Header.Set(echo.HeaderAuthorization, auth)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("login succeeds for seeded admin", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth/login", "", `{"email":"admin@test.com","password":"test"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var resp struct {
			Token string `json:"token"`
			User  struct {
				ID   int    `json:"id"`
				Role string `json:"role"`
			} `json:"user"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Token == "" {
			t.Fatalf("no token in response")
		}
		if resp.User.ID != 1 || resp.User.Role != "admin" {
			t.Fatalf("unexpected user in response: %+v", resp.User)
		}

		// the issued token is accepted as a bearer credential
		rec = do(http.MethodGet, "/users", "Bearer "+resp.Token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("bearer token rejected: %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("login rejects a wrong password", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth/login", "", `{"email":"admin@test.com","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("listing users requires authentication", func(t *testing.T) {
		rec := do(http.MethodGet, "/users", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if rec.Header().Get(echo.HeaderWWWAuthenticate) == "" {
			t.Fatalf("expected a WWW-Authenticate challenge")
		}
	})

	t.Run("admin lists the seeded users", func(t *testing.T) {
		rec := do(http.MethodGet, "/users", asAdmin, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var users []struct {
			ID    int    `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected the 2 seeded users, got %d", len(users))
		}
		if users[0].Email != "admin@test.com" || users[1].Role != "student" {
			t.Fatalf("unexpected users: %+v", users)
		}
	})

	t.Run("admin creates a user, duplicate email is a 400", func(t *testing.T) {
		body := `{"email":"new@test.com","password":"pw","role":"student"}`
		rec := do(http.MethodPost, "/users", asAdmin, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}
		var created struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if created.ID != 3 {
			t.Fatalf("expected id 3, got %d", created.ID)
		}

		rec = do(http.MethodPost, "/users", asAdmin, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("duplicate email: expected 400, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("user payloads are validated", func(t *testing.T) {
		rec := do(http.MethodPost, "/users", asAdmin, `{"email":"bad","password":"pw","role":"teacher"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("students cannot create courses", func(t *testing.T) {
		before := do(http.MethodGet, "/courses", asAdmin, "")
		rec := do(http.MethodPost, "/courses", asStudent, `{"title":"Hack","date":"01/01/2030 10:00:00"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body)
		}
		after := do(http.MethodGet, "/courses", asAdmin, "")
		if before.Body.String() != after.Body.String() {
			t.Fatalf("forbidden request mutated the course collection")
		}
	})

	t.Run("course dates must be canonical", func(t *testing.T) {
		rec := do(http.MethodPost, "/courses", asAdmin, `{"title":"Loose","date":"1/1/2030 10:00:00"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("admin creates and lists a course", func(t *testing.T) {
		rec := do(http.MethodPost, "/courses", asAdmin, `{"title":"Advanced Go","date":"02/03/2030 09:30:00"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}

		rec = do(http.MethodGet, "/courses", asAdmin, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var courses []struct {
			Title string `json:"title"`
			Date  string `json:"date"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(courses) != 2 {
			t.Fatalf("expected seeded + created course, got %d", len(courses))
		}
		if courses[1].Title != "Advanced Go" || courses[1].Date != "02/03/2030 09:30:00" {
			t.Fatalf("unexpected course: %+v", courses[1])
		}
	})

	t.Run("enrollment referencing a missing student is a 404", func(t *testing.T) {
		rec := do(http.MethodPost, "/enrollments", asAdmin, `{"student_id":99,"course_id":1}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("enrollment referencing an admin is a 404", func(t *testing.T) {
		rec := do(http.MethodPost, "/enrollments", asAdmin, `{"student_id":1,"course_id":1}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("admin enrolls a student, duplicate is a 400", func(t *testing.T) {
		body := `{"student_id":2,"course_id":2}`
		rec := do(http.MethodPost, "/enrollments", asAdmin, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}

		rec = do(http.MethodPost, "/enrollments", asAdmin, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("duplicate enrollment: expected 400, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("admins cannot sign", func(t *testing.T) {
		rec := do(http.MethodPatch, "/sign-course", asAdmin, `{"course_id":1}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("student signs once, second attempt is a 400", func(t *testing.T) {
		rec := do(http.MethodPatch, "/sign-course", asStudent, `{"course_id":1}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var resp struct {
			Enrollment struct {
				StudentID int     `json:"student_id"`
				SignedAt  *string `json:"signed_at"`
			} `json:"enrollment"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Enrollment.StudentID != 2 {
			t.Fatalf("signed for the wrong student: %+v", resp.Enrollment)
		}
		if resp.Enrollment.SignedAt == nil {
			t.Fatalf("signed_at not set")
		}

		rec = do(http.MethodPatch, "/sign-course", asStudent, `{"course_id":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("second sign: expected 400, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("signing an unenrolled course is a 404", func(t *testing.T) {
		rec := do(http.MethodPost, "/courses", asAdmin, `{"title":"Unattended","date":"05/05/2030 08:00:00"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("course create: %d", rec.Code)
		}
		rec = do(http.MethodPatch, "/sign-course", asStudent, `{"course_id":3}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("liveness probe is public", func(t *testing.T) {
		rec := do(http.MethodGet, "/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("readiness reports disabled backends", func(t *testing.T) {
		rec := do(http.MethodGet, "/health/ready", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		if !strings.Contains(rec.Body.String(), "disabled") {
			t.Fatalf("expected disabled backends in body: %s", rec.Body)
		}
	})
}

func basicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
