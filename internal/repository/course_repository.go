package repository

import (
	"strings"

	"unicatalog/internal/entity"
)

// CourseRepository is the read-only view of the course catalog handlers
// depend on.
type CourseRepository interface {
	All() []entity.Course
	ByID(id string) (entity.Course, bool)
}

// StaticCourseRepository serves a fixed course table from memory.
type StaticCourseRepository struct {
	courses []entity.Course
	index   map[string]int
}

func NewStaticCourseRepository(courses []entity.Course) *StaticCourseRepository {
	r := &StaticCourseRepository{
		courses: make([]entity.Course, len(courses)),
		index:   make(map[string]int, len(courses)),
	}
	for i, c := range courses {
		r.courses[i] = copyCourse(c)
		r.index[strings.ToUpper(c.ID)] = i
	}
	return r
}

func (r *StaticCourseRepository) All() []entity.Course {
	out := make([]entity.Course, len(r.courses))
	for i, c := range r.courses {
		out[i] = copyCourse(c)
	}
	return out
}

// ByID is case-insensitive so that /catalog/cse110 and /catalog/CSE110 agree.
func (r *StaticCourseRepository) ByID(id string) (entity.Course, bool) {
	i, ok := r.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return entity.Course{}, false
	}
	return copyCourse(r.courses[i]), true
}

func copyCourse(c entity.Course) entity.Course {
	c.Sections = append([]entity.Section(nil), c.Sections...)
	return c
}

func DefaultCourses() []entity.Course {
	return []entity.Course{
		{
			ID:          "CSE110",
			Title:       "Introduction to Programming",
			Credits:     2,
			Department:  "Computer Science",
			Description: "First steps in programming: **variables**, _loops_, functions and simple data structures.",
			Sections: []entity.Section{
				{CRN: "10231", Time: "14:00", Days: "TTh", Professor: "Brother Jack", Room: "STC 394"},
				{CRN: "10232", Time: "09:00", Days: "MWF", Professor: "Sister Enkey", Room: "STC 392"},
				{CRN: "10233", Time: "11:30", Days: "MWF", Professor: "Brother Keers", Room: "STC 390"},
			},
		},
		{
			ID:          "CSE111",
			Title:       "Programming with Functions",
			Credits:     2,
			Department:  "Computer Science",
			Description: "Writing, calling and **testing** functions. Modules, files and exceptions.",
			Sections: []entity.Section{
				{CRN: "10311", Time: "10:15", Days: "TTh", Professor: "Sister Enkey", Room: "STC 392"},
				{CRN: "10312", Time: "08:00", Days: "MWF", Professor: "Brother Keers", Room: "STC 394"},
			},
		},
		{
			ID:          "WDD131",
			Title:       "Dynamic Web Fundamentals",
			Credits:     2,
			Department:  "Computer Science",
			Description: "HTML, CSS and JavaScript for responsive, accessible pages.",
			Sections: []entity.Section{
				{CRN: "20114", Time: "13:00", Days: "MWF", Professor: "Brother Jack", Room: "STC 361"},
				{CRN: "20115", Time: "16:30", Days: "TTh", Professor: "Brother Jack", Room: "Online"},
			},
		},
		{
			ID:          "MATH119",
			Title:       "Introduction to Calculus",
			Credits:     3,
			Department:  "Mathematics",
			Description: "Limits, derivatives and integrals with applications.",
			Sections: []entity.Section{
				{CRN: "30101", Time: "12:45", Days: "MWF", Professor: "Sister Anderson", Room: "MC 301"},
				{CRN: "30102", Time: "07:45", Days: "TTh", Professor: "Brother Miller", Room: "MC 305"},
				{CRN: "30103", Time: "15:00", Days: "MWF", Professor: "Brother Thompson", Room: "MC 307"},
			},
		},
		{
			ID:          "ENG150",
			Title:       "Writing and Reasoning Foundations",
			Credits:     3,
			Department:  "English",
			Description: "Academic writing, argument and research.",
			Sections: []entity.Section{
				{CRN: "40120", Time: "09:45", Days: "TTh", Professor: "Brother Davis", Room: "GEB 205"},
			},
		},
		{
			ID:          "HIST201",
			Title:       "World Civilizations",
			Credits:     3,
			Department:  "History",
			Description: "Survey of civilizations from antiquity to 1500.",
			Sections: []entity.Section{
				{CRN: "50210", Time: "11:00", Days: "MWF", Professor: "Sister Roberts", Room: "GEB 305"},
				{CRN: "50211", Time: "11:00", Days: "TTh", Professor: "Brother Wilson", Room: "GEB 301"},
			},
		},
	}
}
