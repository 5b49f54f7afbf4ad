package entity

// Faculty is a member of the faculty directory. ID doubles as the URL slug.
type Faculty struct {
	ID         string
	Name       string
	Office     string
	Phone      string
	Email      string
	Department string
	Title      string
}
