package handler

import (
	"net/http"

	"unicatalog/internal/entity"
	"unicatalog/internal/repository"
	"unicatalog/internal/view"
)

type FacultyHandler struct {
	faculty repository.FacultyRepository
	rd      *view.Renderer
}

func NewFacultyHandler(faculty repository.FacultyRepository, rd *view.Renderer) *FacultyHandler {
	return &FacultyHandler{faculty: faculty, rd: rd}
}

// FacultyListPage lists the directory. A ?view= outside the allowed keys is
// a 400; ?sort= (or a valid view when sort is absent) falls back to name.
func (h *FacultyHandler) FacultyListPage(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	viewType := q.Get("view")
	if viewType != "" && !repository.IsFacultySortKey(viewType) {
		return view.BadRequest("Invalid view type. Must be name, department, or title.")
	}

	sortBy := q.Get("sort")
	if sortBy == "" {
		sortBy = viewType
	}
	sortBy = repository.NormalizeFacultySort(sortBy)

	data := struct {
		Faculty     []entity.Faculty
		CurrentSort string
		SortKeys    []string
	}{
		Faculty:     repository.SortFaculty(h.faculty.All(), sortBy),
		CurrentSort: sortBy,
		SortKeys:    repository.FacultySortKeys,
	}

	return h.rd.Render(w, r, http.StatusOK, "faculty-list", "Faculty Directory", data)
}

func (h *FacultyHandler) FacultyDetailPage(w http.ResponseWriter, r *http.Request) error {
	facultyID := r.PathValue("facultyId")
	member, ok := h.faculty.ByID(facultyID)
	if !ok {
		return view.NotFound("Faculty member %s not found", facultyID)
	}

	return h.rd.Render(w, r, http.StatusOK, "faculty-details", member.Name, map[string]any{"Faculty": member})
}
