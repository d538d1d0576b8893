package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

// Only the methods the handlers reach are implemented; the embedded
// interface panics on anything else.
type stubCourses struct {
	repository.CourseRepository

	mu      sync.Mutex
	items   []entity.Course
	listed  *query.Descriptor
	created []entity.Course
}

func (s *stubCourses) List(_ context.Context, d *query.Descriptor) ([]entity.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listed = d
	return s.items, nil
}

func (s *stubCourses) Count(context.Context, *query.Descriptor) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *stubCourses) Create(_ context.Context, c *entity.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = "course-new"
	c.CreatedAt = time.Now()
	s.created = append(s.created, *c)
	return nil
}

func (s *stubCourses) AverageTuition(context.Context, string) (*float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.created) == 0 {
		return nil, nil
	}
	avg := s.created[0].Tuition
	return &avg, nil
}

type stubBootcamps struct {
	repository.BootcampRepository

	mu    sync.Mutex
	camps map[string]*entity.Bootcamp
}

func (s *stubBootcamps) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.camps[id]
	if !ok {
		return nil, apperror.NotFound("Bootcamp not found with id of %s", id)
	}
	cp := *b
	return &cp, nil
}

func (s *stubBootcamps) SetAverageCost(_ context.Context, id string, cost *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camps[id].AverageCost = cost
	return nil
}

type envelope struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count"`
	Pagination *query.Pagination `json:"pagination"`
	Data       json.RawMessage   `json:"data"`
	Error      string            `json:"error"`
	Token      string            `json:"token"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

// as injects a fixed principal in place of the session middleware.
func as(p entity.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, p.ID)
		c.Set(middleware.CtxPrincipalKey, p)
		c.Next()
	}
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler(helpers.NewNopLogger()))
	return r
}

func courseFixture() (*CourseHandler, *stubCourses, *stubBootcamps, *application.Recomputer) {
	courses := &stubCourses{items: []entity.Course{
		{ID: "c1", Title: "Front End", Weeks: 8, Tuition: 8000, MinimumSkill: entity.SkillBeginner, BootcampID: "b1"},
		{ID: "c2", Title: "Full Stack", Weeks: 12, Tuition: 10000, MinimumSkill: entity.SkillIntermediate, BootcampID: "b1"},
	}}
	bootcamps := &stubBootcamps{camps: map[string]*entity.Bootcamp{
		"b1": {ID: "b1", Name: "Devworks", UserID: "pub-1"},
	}}
	rc := application.NewRecomputer(bootcamps, courses, nil, helpers.NewNopLogger(), time.Second)
	return NewCourseHandler(application.NewCourseService(courses, bootcamps, rc)), courses, bootcamps, rc
}

func TestCourseListNestedRestrictsAndProjects(t *testing.T) {
	h, courses, _, _ := courseFixture()
	r := newEngine()
	r.GET("/bootcamps/:id/courses", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bootcamps/b1/courses?select=title", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	env := decode(t, w)
	if env.Count == nil || *env.Count != 2 {
		t.Fatalf("count = %v, want 2", env.Count)
	}
	if env.Pagination == nil {
		t.Fatal("missing pagination")
	}
	var items []map[string]any
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if len(it) != 2 || it["id"] == nil || it["title"] == nil {
			t.Errorf("projected item = %v, want only id and title", it)
		}
	}

	d := courses.listed
	if d == nil || len(d.Filters) != 1 {
		t.Fatalf("descriptor filters = %+v, want one restriction", d)
	}
	if f := d.Filters[0]; f.Field.Name != "bootcampId" || f.Op != query.OpEq || f.Values[0] != "b1" {
		t.Errorf("restriction = %+v", f)
	}
}

func TestCourseListRejectsUnknownQueryField(t *testing.T) {
	h, _, _, _ := courseFixture()
	r := newEngine()
	r.GET("/courses", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses?password=x", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if env := decode(t, w); env.Success || env.Error == "" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestCourseCreate(t *testing.T) {
	body := `{"title":"Data","description":"Numbers","weeks":6,"tuition":1234,"minimumSkill":"beginner"}`

	t.Run("owner creates and cost is recomputed", func(t *testing.T) {
		h, courses, bootcamps, rc := courseFixture()
		r := newEngine()
		r.POST("/bootcamps/:id/courses", as(entity.Principal{ID: "pub-1", Role: entity.RolePublisher}), h.Create)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bootcamps/b1/courses", strings.NewReader(body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("status %d body %s", w.Code, w.Body.String())
		}
		rc.Wait()

		if len(courses.created) != 1 || courses.created[0].UserID != "pub-1" || courses.created[0].BootcampID != "b1" {
			t.Fatalf("created = %+v", courses.created)
		}
		if got := bootcamps.camps["b1"].AverageCost; got == nil || *got != 1240 {
			t.Errorf("average cost = %v, want 1240", got)
		}
	})

	t.Run("invalid skill", func(t *testing.T) {
		h, courses, _, _ := courseFixture()
		r := newEngine()
		r.POST("/bootcamps/:id/courses", as(entity.Principal{ID: "pub-1", Role: entity.RolePublisher}), h.Create)

		bad := strings.Replace(body, "beginner", "guru", 1)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bootcamps/b1/courses", strings.NewReader(bad)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", w.Code)
		}
		if !strings.Contains(decode(t, w).Error, "minimumSkill") {
			t.Errorf("error should name the field: %s", w.Body.String())
		}
		if len(courses.created) != 0 {
			t.Error("course stored despite validation failure")
		}
	})

	t.Run("other publisher is forbidden", func(t *testing.T) {
		h, courses, _, _ := courseFixture()
		r := newEngine()
		r.POST("/bootcamps/:id/courses", as(entity.Principal{ID: "pub-2", Role: entity.RolePublisher}), h.Create)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bootcamps/b1/courses", strings.NewReader(body)))
		if w.Code != http.StatusForbidden {
			t.Fatalf("status %d, want 403", w.Code)
		}
		if len(courses.created) != 0 {
			t.Error("course stored for non-owner")
		}
	})

	t.Run("unknown bootcamp", func(t *testing.T) {
		h, _, _, _ := courseFixture()
		r := newEngine()
		r.POST("/bootcamps/:id/courses", as(entity.Principal{ID: "adm", Role: entity.RoleAdmin}), h.Create)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bootcamps/nope/courses", strings.NewReader(body)))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status %d, want 404", w.Code)
		}
	})
}

func TestLoginBindFailure(t *testing.T) {
	h := &AuthHandler{Cookies: helpers.NewCookie("", false)}
	r := newEngine()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.io"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if got := decode(t, w).Error; got != "Please provide an email and password" {
		t.Errorf("error = %q", got)
	}
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	h := &AuthHandler{Cookies: helpers.NewCookie("", false)}
	r := newEngine()
	r.POST("/auth/register", h.Register)

	body := `{"name":"John","email":"john@devcamper.io","password":"` + strings.Repeat("a", 80) + `"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 (%s)", w.Code, w.Body.String())
	}
	if got := decode(t, w).Error; got != "password must be between 6 and 72 characters long" {
		t.Errorf("error = %q", got)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := &AuthHandler{Cookies: helpers.NewCookie("", false)}
	r := newEngine()
	r.GET("/auth/logout", h.Logout)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value != "none" || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}
	if env := decode(t, w); !env.Success || string(env.Data) != "{}" {
		t.Errorf("envelope = %+v", env)
	}
}
