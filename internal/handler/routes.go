package handler

import (
	"log/slog"
	"net/http"

	"unicatalog/internal/middleware"
	"unicatalog/internal/repository"
	"unicatalog/internal/view"

	"github.com/gorilla/sessions"
)

// Deps is everything the router needs. Metrics, MetricsHandler and CSRFKey
// are optional.
type Deps struct {
	Name           string
	Courses        repository.CourseRepository
	Faculty        repository.FacultyRepository
	Users          UserStore
	Store          sessions.Store
	Renderer       *view.Renderer
	Logger         *slog.Logger
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	CSRFKey        []byte
	Secure         bool
	TrustedOrigins []string
}

func NewRouter(d Deps) http.Handler {
	rd := d.Renderer

	pages := NewPageHandler(rd, d.Name)
	catalog := NewCatalogHandler(d.Courses, rd)
	faculty := NewFacultyHandler(d.Faculty, rd)
	registration := NewRegistrationHandler(d.Users, rd, d.Logger)
	login := NewLoginHandler(d.Users, rd, d.Logger)
	auth := NewAuthHandler(rd, d.Logger)

	protected := func(fn view.HandlerFunc) http.Handler {
		return middleware.RequireLogin(rd.Handle(fn))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", rd.Handle(pages.Home))
	mux.Handle("GET /about", rd.Handle(pages.About))
	mux.Handle("GET /products", rd.Handle(pages.Products))
	mux.Handle("GET /student", rd.Handle(pages.Student))
	mux.Handle("GET /demo", middleware.DemoHeaders(rd.Handle(pages.Demo)))
	mux.Handle("GET /new-route", rd.Handle(pages.NewRoute))

	mux.Handle("GET /catalog", rd.Handle(catalog.CatalogPage))
	mux.Handle("GET /catalog/{courseId}", rd.Handle(catalog.CourseDetailPage))

	mux.Handle("GET /faculty", rd.Handle(faculty.FacultyListPage))
	mux.Handle("GET /faculty/{facultyId}", rd.Handle(faculty.FacultyDetailPage))

	mux.Handle("GET /register", rd.Handle(registration.RegisterPage))
	mux.Handle("POST /register", rd.Handle(registration.Register))
	mux.Handle("GET /register/list", protected(registration.ListUsers))
	mux.Handle("GET /register/{id}/edit", protected(registration.EditAccountPage))
	mux.Handle("POST /register/{id}/edit", protected(registration.EditAccount))
	mux.Handle("POST /register/{id}/delete", protected(registration.DeleteAccount))

	mux.Handle("GET /login", rd.Handle(login.LoginPage))
	mux.Handle("POST /login", rd.Handle(login.Login))
	mux.Handle("GET /logout", rd.Handle(auth.Logout))
	mux.Handle("GET /dashboard", protected(auth.Dashboard))

	if d.MetricsHandler != nil {
		mux.Handle("GET /metrics", d.MetricsHandler)
	}

	mux.Handle("/", rd.Handle(pages.NotFound))

	var h http.Handler = mux
	if d.Metrics != nil {
		h = d.Metrics.Wrap(h)
	}
	h = middleware.LoadSession(d.Store, d.Logger)(h)
	if d.CSRFKey != nil {
		h = middleware.CSRF(d.CSRFKey, d.Secure, d.TrustedOrigins)(h)
	}
	h = middleware.Recover(rd)(h)
	return middleware.Logging(d.Logger)(h)
}
