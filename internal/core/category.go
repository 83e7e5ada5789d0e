package core

import "strings"

// Category is one of the closed set of task categories.
type Category string

const (
	CategoryWork      Category = "work"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryFamily    Category = "family"
	CategoryHobbies   Category = "hobbies"
	CategoryPersonal  Category = "personal"
	CategoryOther     Category = "other"
)

// DefaultCategory is used when a row's category is absent or unknown.
const DefaultCategory = CategoryPersonal

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryHealth,
	CategoryEducation,
	CategoryFamily,
	CategoryHobbies,
	CategoryPersonal,
	CategoryOther,
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory trims and lowercases v, returning DefaultCategory when
// the result is not a known category.
func NormalizeCategory(v string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(v)))
	if c.Valid() {
		return c
	}
	return DefaultCategory
}
