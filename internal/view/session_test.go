package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"unicatalog/internal/session"
	"unicatalog/internal/templates"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return session.NewRedisStore(rdb, 3600, []byte("view-test-key")), mr
}

// withSession loads the session named by cookies and attaches it to a new
// request.
func withSession(t *testing.T, store *session.RedisStore, cookies []*http.Cookie) (*http.Request, *session.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	raw, err := store.Get(req, session.CookieName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	sess := session.Wrap(raw)
	return req.WithContext(session.NewContext(req.Context(), sess)), sess
}

func TestRenderAnonymousLeavesNoSession(t *testing.T) {
	store, mr := newSessionStore(t)
	rd := newRenderer(t)

	req, _ := withSession(t, store, nil)
	rec := httptest.NewRecorder()
	if err := rd.Render(rec, req, http.StatusOK, "about", "About", nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("unexpected cookies %v", cookies)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("unexpected stored sessions %v", keys)
	}

	rec = httptest.NewRecorder()
	rd.Redirect(rec, req, "/login")
	if len(mr.Keys()) != 0 {
		t.Error("redirect stored an empty session")
	}
}

func TestRenderFailureKeepsFlashes(t *testing.T) {
	store, _ := newSessionStore(t)
	fsys := fstest.MapFS{
		"layout.html":         {Data: []byte(`{{define "layout"}}{{template "flash" .}}{{template "content" .}}{{end}}`)},
		"partials/flash.html": {Data: []byte(`{{define "flash"}}{{range $k, $m := .Flashes}}{{range $m}}[{{.}}]{{end}}{{end}}{{end}}`)},
		"pages/broken.html":   {Data: []byte(`{{define "content"}}{{index .Data 5}}{{end}}`)},
		"pages/ok.html":       {Data: []byte(`{{define "content"}}ok{{end}}`)},
	}
	rd, err := New(fsys, discardLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// queue a flash and persist it
	req, sess := withSession(t, store, nil)
	sess.AddFlash(session.FlashSuccess, "Saved.")
	rec := httptest.NewRecorder()
	rd.Redirect(rec, req, "/next")
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("session with a flash was not saved")
	}

	req, _ = withSession(t, store, cookies)
	if err := rd.Render(httptest.NewRecorder(), req, http.StatusOK, "broken", "", nil); err == nil {
		t.Fatal("expected the broken page to fail")
	}

	// the same request can still show the message on its error page
	rec = httptest.NewRecorder()
	if err := rd.Render(rec, req, http.StatusOK, "ok", "", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := rec.Body.String(); got != "[Saved.]ok" {
		t.Fatalf("body = %q", got)
	}
}

func TestRenderShownFlashOnNewSessionNotSaved(t *testing.T) {
	store, _ := newSessionStore(t)
	rd, err := New(templates.FS, discardLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	req, sess := withSession(t, store, nil)
	sess.AddFlash(session.FlashInfo, "hello")

	rec := httptest.NewRecorder()
	if err := rd.Render(rec, req, http.StatusOK, "about", "About", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("a new session whose only flash was shown should not be saved")
	}
}
