package repository

import (
	"sort"

	"unicatalog/internal/entity"
)

const (
	DefaultSectionSort = "time"
	DefaultFacultySort = "name"
)

var (
	SectionSortKeys = []string{"time", "professor", "room"}
	FacultySortKeys = []string{"name", "department", "title"}
)

var sectionFields = map[string]func(entity.Section) string{
	"time":      func(s entity.Section) string { return s.Time },
	"professor": func(s entity.Section) string { return s.Professor },
	"room":      func(s entity.Section) string { return s.Room },
}

var facultyFields = map[string]func(entity.Faculty) string{
	"name":       func(f entity.Faculty) string { return f.Name },
	"department": func(f entity.Faculty) string { return f.Department },
	"title":      func(f entity.Faculty) string { return f.Title },
}

// NormalizeSectionSort returns key when it is an allowed section sort key
// and DefaultSectionSort otherwise.
func NormalizeSectionSort(key string) string {
	if _, ok := sectionFields[key]; ok {
		return key
	}
	return DefaultSectionSort
}

func IsFacultySortKey(key string) bool {
	_, ok := facultyFields[key]
	return ok
}

func NormalizeFacultySort(key string) string {
	if IsFacultySortKey(key) {
		return key
	}
	return DefaultFacultySort
}

// SortSections returns a sorted copy; the input slice is left untouched.
func SortSections(sections []entity.Section, key string) []entity.Section {
	field := sectionFields[NormalizeSectionSort(key)]
	out := append([]entity.Section(nil), sections...)
	sort.SliceStable(out, func(i, j int) bool {
		return field(out[i]) < field(out[j])
	})
	return out
}

// SortFaculty returns a sorted copy; the input slice is left untouched.
func SortFaculty(members []entity.Faculty, key string) []entity.Faculty {
	field := facultyFields[NormalizeFacultySort(key)]
	out := append([]entity.Faculty(nil), members...)
	sort.SliceStable(out, func(i, j int) bool {
		return field(out[i]) < field(out[j])
	})
	return out
}
