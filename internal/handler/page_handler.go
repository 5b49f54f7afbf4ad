package handler

import (
	"net/http"

	"unicatalog/internal/view"
)

// PageHandler serves the static informational pages.
type PageHandler struct {
	rd   *view.Renderer
	name string
}

func NewPageHandler(rd *view.Renderer, name string) *PageHandler {
	return &PageHandler{rd: rd, name: name}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) error {
	return h.rd.Render(w, r, http.StatusOK, "home", "Home", map[string]string{"Name": h.name})
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) error {
	return h.rd.Render(w, r, http.StatusOK, "about", "About", nil)
}

func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) error {
	return h.rd.Render(w, r, http.StatusOK, "products", "Products", nil)
}

func (h *PageHandler) Student(w http.ResponseWriter, r *http.Request) error {
	data := map[string]string{
		"Name":    h.name,
		"Program": "Software Development",
	}
	return h.rd.Render(w, r, http.StatusOK, "student", "Student", data)
}

func (h *PageHandler) Demo(w http.ResponseWriter, r *http.Request) error {
	return h.rd.Render(w, r, http.StatusOK, "demo", "Middleware Demo", nil)
}

func (h *PageHandler) NewRoute(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte("This is a new route!"))
	return err
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) error {
	return view.NotFound("Page %s not found", r.URL.Path)
}
