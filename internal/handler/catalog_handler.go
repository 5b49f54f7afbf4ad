package handler

import (
	"fmt"
	"net/http"

	"unicatalog/internal/entity"
	"unicatalog/internal/repository"
	"unicatalog/internal/view"
)

type CatalogHandler struct {
	courses repository.CourseRepository
	rd      *view.Renderer
}

func NewCatalogHandler(courses repository.CourseRepository, rd *view.Renderer) *CatalogHandler {
	return &CatalogHandler{courses: courses, rd: rd}
}

// CatalogPage - list of all courses
func (h *CatalogHandler) CatalogPage(w http.ResponseWriter, r *http.Request) error {
	data := map[string]any{
		"Courses": h.courses.All(),
	}
	return h.rd.Render(w, r, http.StatusOK, "catalog", "Course Catalog", data)
}

// CourseDetailPage shows one course with its sections ordered by ?sort=.
// Unknown sort keys fall back to time.
func (h *CatalogHandler) CourseDetailPage(w http.ResponseWriter, r *http.Request) error {
	courseID := r.PathValue("courseId")
	course, ok := h.courses.ByID(courseID)
	if !ok {
		return view.NotFound("Course %s not found", courseID)
	}

	sortBy := repository.NormalizeSectionSort(r.URL.Query().Get("sort"))
	course.Sections = repository.SortSections(course.Sections, sortBy)

	data := struct {
		Course      entity.Course
		CurrentSort string
		SortKeys    []string
	}{
		Course:      course,
		CurrentSort: sortBy,
		SortKeys:    repository.SectionSortKeys,
	}

	return h.rd.Render(w, r, http.StatusOK, "course-details", fmt.Sprintf("%s - %s", course.ID, course.Title), data)
}
