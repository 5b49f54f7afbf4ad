package entity

type Course struct {
	ID          string
	Title       string
	Credits     int
	Department  string
	Description string // markdown
	Sections    []Section
}

// Section.Time is "HH:MM" in 24h form so that it sorts lexicographically.
type Section struct {
	CRN       string
	Time      string
	Days      string
	Professor string
	Room      string
}
