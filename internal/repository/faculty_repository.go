package repository

import (
	"strings"

	"unicatalog/internal/entity"
)

type FacultyRepository interface {
	All() []entity.Faculty
	ByID(idOrSlug string) (entity.Faculty, bool)
}

// StaticFacultyRepository serves the faculty directory from memory, in
// insertion order.
type StaticFacultyRepository struct {
	members []entity.Faculty
	index   map[string]int
}

func NewStaticFacultyRepository(members []entity.Faculty) *StaticFacultyRepository {
	r := &StaticFacultyRepository{
		members: append([]entity.Faculty(nil), members...),
		index:   make(map[string]int, len(members)),
	}
	for i, m := range members {
		r.index[strings.ToLower(m.ID)] = i
	}
	return r
}

func (r *StaticFacultyRepository) All() []entity.Faculty {
	return append([]entity.Faculty(nil), r.members...)
}

// ByID looks a member up by slug. Matching ignores case and surrounding
// whitespace.
func (r *StaticFacultyRepository) ByID(idOrSlug string) (entity.Faculty, bool) {
	i, ok := r.index[strings.ToLower(strings.TrimSpace(idOrSlug))]
	if !ok {
		return entity.Faculty{}, false
	}
	return r.members[i], true
}

func DefaultFaculty() []entity.Faculty {
	return []entity.Faculty{
		{ID: "brother-jack", Name: "Brother Jack", Office: "STC 392", Phone: "208-496-1234", Email: "jackb@byui.edu", Department: "Computer Science", Title: "Associate Professor"},
		{ID: "sister-enkey", Name: "Sister Enkey", Office: "STC 394", Phone: "208-496-2345", Email: "enkeys@byui.edu", Department: "Computer Science", Title: "Assistant Professor"},
		{ID: "brother-keers", Name: "Brother Keers", Office: "STC 390", Phone: "208-496-3456", Email: "keersb@byui.edu", Department: "Computer Science", Title: "Professor"},
		{ID: "sister-anderson", Name: "Sister Anderson", Office: "MC 301", Phone: "208-496-4567", Email: "andersons@byui.edu", Department: "Mathematics", Title: "Professor"},
		{ID: "brother-miller", Name: "Brother Miller", Office: "MC 305", Phone: "208-496-5678", Email: "millerb@byui.edu", Department: "Mathematics", Title: "Associate Professor"},
		{ID: "brother-thompson", Name: "Brother Thompson", Office: "MC 307", Phone: "208-496-6789", Email: "thompsonb@byui.edu", Department: "Mathematics", Title: "Assistant Professor"},
		{ID: "brother-davis", Name: "Brother Davis", Office: "GEB 205", Phone: "208-496-7890", Email: "davisb@byui.edu", Department: "English", Title: "Professor"},
		{ID: "brother-wilson", Name: "Brother Wilson", Office: "GEB 301", Phone: "208-496-8901", Email: "wilsonb@byui.edu", Department: "History", Title: "Associate Professor"},
		{ID: "sister-roberts", Name: "Sister Roberts", Office: "GEB 305", Phone: "208-496-9012", Email: "robertss@byui.edu", Department: "History", Title: "Assistant Professor"},
	}
}
