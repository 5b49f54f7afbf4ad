package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"unicatalog/internal/entity"
	"unicatalog/internal/middleware"
	"unicatalog/internal/password"
	"unicatalog/internal/repository"
	"unicatalog/internal/session"
	"unicatalog/internal/templates"
	"unicatalog/internal/view"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	mu      sync.Mutex
	byID    map[int]entity.User
	nextID  int
	listErr error
	findErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int]entity.User{}, nextID: 1}
}

func (f *fakeUsers) add(t *testing.T, name, email, plain, role string) entity.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := entity.User{
		ID:           f.nextID,
		Name:         name,
		Email:        repository.NormalizeEmail(email),
		PasswordHash: hash,
		RoleName:     role,
		CreatedAt:    time.Now(),
	}
	f.byID[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUsers) get(id int) (entity.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	return u, ok
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *fakeUsers) failFind(err error) {
	f.mu.Lock()
	f.findErr = err
	f.mu.Unlock()
}

func (f *fakeUsers) failList(err error) {
	f.mu.Lock()
	f.listErr = err
	f.mu.Unlock()
}

func (f *fakeUsers) emailOwner(email string) (entity.User, bool) {
	email = repository.NormalizeEmail(email)
	for _, u := range f.byID {
		if u.Email == email {
			return u, true
		}
	}
	return entity.User{}, false
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.emailOwner(email)
	return ok, nil
}

func (f *fakeUsers) EmailTakenByOther(_ context.Context, email string, excludeID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.emailOwner(email)
	return ok && u.ID != excludeID, nil
}

func (f *fakeUsers) Create(_ context.Context, name, email, hash string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.emailOwner(email); ok {
		return entity.User{}, repository.ErrEmailTaken
	}
	u := entity.User{
		ID:           f.nextID,
		Name:         name,
		Email:        repository.NormalizeEmail(email),
		PasswordHash: hash,
		RoleName:     entity.RoleUser,
		CreatedAt:    time.Now(),
	}
	f.byID[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return entity.User{}, f.findErr
	}
	u, ok := f.emailOwner(email)
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (entity.User, error) {
	u, ok := f.get(id)
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.User, 0, len(f.byID))
	for _, u := range f.byID {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) UpdateAccount(_ context.Context, id int, name, email string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	if other, ok := f.emailOwner(email); ok && other.ID != id {
		return entity.User{}, repository.ErrEmailTaken
	}
	u.Name = name
	u.Email = repository.NormalizeEmail(email)
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

type testApp struct {
	srv    *httptest.Server
	client *http.Client
	users  *fakeUsers
	mr     *miniredis.Miniredis
	rdb    *redis.Client
	reg    *prometheus.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rd, err := view.New(templates.FS, logger)
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	reg := prometheus.NewRegistry()
	users := newFakeUsers()
	router := NewRouter(Deps{
		Name:           "Tester",
		Courses:        repository.NewStaticCourseRepository(repository.DefaultCourses()),
		Faculty:        repository.NewStaticFacultyRepository(repository.DefaultFaculty()),
		Users:          users,
		Store:          session.NewRedisStore(rdb, 3600, []byte("handler-test-key")),
		Renderer:       rd,
		Logger:         logger,
		Metrics:        middleware.NewMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := httptest.NewServer(router)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	t.Cleanup(func() {
		srv.Close()
		rdb.Close()
		mr.Close()
	})

	return &testApp{srv: srv, client: client, users: users, mr: mr, rdb: rdb, reg: reg}
}

type response struct {
	status   int
	location string
	header   http.Header
	cookies  []*http.Cookie
	body     string
}

func (a *testApp) do(t *testing.T, req *http.Request) response {
	t.Helper()
	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		header:   resp.Header,
		cookies:  resp.Cookies(),
		body:     string(body),
	}
}

func (a *testApp) get(t *testing.T, path string) response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.srv.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	return a.do(t, req)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.srv.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req)
}

func (a *testApp) login(t *testing.T, email, plain string) {
	t.Helper()
	res := a.post(t, "/login", url.Values{"email": {email}, "password": {plain}})
	if res.status != http.StatusSeeOther || res.location != "/dashboard" {
		t.Fatalf("login as %s: status %d location %q", email, res.status, res.location)
	}
}

func expectRedirect(t *testing.T, res response, location string) {
	t.Helper()
	if res.status != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", res.status)
	}
	if res.location != location {
		t.Fatalf("location = %q, want %q", res.location, location)
	}
}

func expectContains(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Errorf("body does not contain %q", p)
		}
	}
}

func TestHomeGreetsConfiguredName(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/")
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	expectContains(t, res.body, "Tester")
}

func TestStaticPages(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/about", "/products", "/student", "/catalog", "/faculty", "/register", "/login"} {
		if res := app.get(t, path); res.status != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, res.status)
		}
	}
}

func TestDemoPageSetsHeaders(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/demo")
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	if got := res.header.Get("X-Demo-Page"); got != "true" {
		t.Errorf("X-Demo-Page = %q", got)
	}
	if got := res.header.Get("X-Middleware-Demo"); got == "" {
		t.Error("X-Middleware-Demo missing")
	}
}

func TestNewRouteIsPlainText(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/new-route")
	if res.body != "This is a new route!" {
		t.Errorf("body = %q", res.body)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/no/such/page")
	if res.status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.status)
	}
	if keys := app.mr.Keys(); len(keys) != 0 {
		t.Errorf("anonymous 404 stored sessions %v", keys)
	}
	if len(res.cookies) != 0 {
		t.Errorf("anonymous 404 set cookies %v", res.cookies)
	}
}

func TestCourseDetailSortsSections(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		query string
		order []string
	}{
		{"", []string{"7:45 AM", "12:45 PM", "3:00 PM"}},
		{"?sort=bogus", []string{"7:45 AM", "12:45 PM", "3:00 PM"}},
		{"?sort=professor", []string{"Brother Miller", "Brother Thompson", "Sister Anderson"}},
		{"?sort=room", []string{"MC 301", "MC 305", "MC 307"}},
	}

	for _, tt := range tests {
		res := app.get(t, "/catalog/MATH119"+tt.query)
		if res.status != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.query, res.status)
		}
		// skip the sort links so only the table is compared
		table := res.body[strings.Index(res.body, "<table>"):]
		last := -1
		for _, want := range tt.order {
			i := strings.Index(table, want)
			if i < 0 {
				t.Fatalf("%s: %q not rendered", tt.query, want)
			}
			if i < last {
				t.Errorf("%s: %q out of order", tt.query, want)
			}
			last = i
		}
	}
}

func TestCourseDetailUnknownCourse(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/catalog/NOPE999")
	if res.status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.status)
	}
	expectContains(t, res.body, "Course NOPE999 not found")
}

func TestFacultyListRejectsUnknownView(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/faculty?view=salary")
	if res.status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.status)
	}
	expectContains(t, res.body, "Invalid view type. Must be name, department, or title.")
}

func TestFacultyListUnknownSortFallsBack(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/faculty?sort=salary")
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	if strings.Index(res.body, "Brother Davis") > strings.Index(res.body, "Brother Jack") {
		t.Error("faculty not ordered by name")
	}
}

func TestFacultyDetail(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/faculty/brother-jack")
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	expectContains(t, res.body, "Brother Jack", "STC 392")

	if res := app.get(t, "/faculty/nobody"); res.status != http.StatusNotFound {
		t.Errorf("unknown member status = %d, want 404", res.status)
	}
}

func TestMetricsEndpointReportsRoutes(t *testing.T) {
	app := newTestApp(t)

	app.get(t, "/catalog/CSE110")
	res := app.get(t, "/metrics")
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	expectContains(t, res.body, `http_requests_total{method="GET",route="GET /catalog/{courseId}",status="200"} 1`)
}
