// Package view renders HTML pages and carries the shared error pipeline.
package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"unicatalog/internal/entity"
	"unicatalog/internal/session"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
)

// Locals is per-request UI state that middleware may set before a handler
// renders.
type Locals struct {
	IsLoggedIn bool
}

type localsKey struct{}

func WithLocals(ctx context.Context, l *Locals) context.Context {
	return context.WithValue(ctx, localsKey{}, l)
}

// LocalsFrom never returns nil.
func LocalsFrom(ctx context.Context) *Locals {
	if l, ok := ctx.Value(localsKey{}).(*Locals); ok {
		return l
	}
	return &Locals{}
}

// Page is what every template receives. Page specific values live in Data.
type Page struct {
	Title      string
	IsLoggedIn bool
	User       *entity.SessionUser
	Flashes    session.Flashes
	CSRFField  template.HTML
	Data       any
}

type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

var md = goldmark.New()

var funcs = template.FuncMap{
	"markdown": func(src string) template.HTML {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(src))
		}
		return template.HTML(buf.String())
	},
	"clock": func(hhmm string) string {
		t, err := time.Parse("15:04", hhmm)
		if err != nil {
			return hhmm
		}
		return t.Format("3:04 PM")
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006 15:04")
	},
}

// New parses the layout and partials once and clones them for every file
// under pages/. Pages are addressed by file name without extension.
func New(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(fsys, "layout.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page with the given status. Pending flashes are consumed and
// the session saved before anything is written. If the template fails the
// flashes are put back and nothing is saved.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) error {
	tmpl, ok := rd.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	p := Page{
		Title:      title,
		IsLoggedIn: LocalsFrom(r.Context()).IsLoggedIn,
		CSRFField:  csrf.TemplateField(r),
		Data:       data,
	}

	sess := session.FromContext(r.Context())
	if sess != nil {
		p.Flashes = sess.Flashes()
		if u, ok := sess.User(); ok {
			p.User = &u
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		if sess != nil {
			for kind, msgs := range p.Flashes {
				for _, msg := range msgs {
					sess.AddFlash(kind, msg)
				}
			}
		}
		return fmt.Errorf("render %s: %w", page, err)
	}

	rd.saveSession(w, r, sess)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Redirect saves the session, so queued flashes survive, and sends a 303.
func (rd *Renderer) Redirect(w http.ResponseWriter, r *http.Request, url string) {
	rd.saveSession(w, r, session.FromContext(r.Context()))
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// saveSession skips brand-new sessions that hold nothing, so anonymous
// page views leave no cookie and no stored session behind.
func (rd *Renderer) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if sess == nil || (sess.IsNew() && sess.Empty()) {
		return
	}
	if err := sess.Save(r, w); err != nil {
		rd.logger.Error("save session", "path", r.URL.Path, "error", err)
	}
}
