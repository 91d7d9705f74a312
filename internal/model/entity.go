package model

import "strings"

// Entity describes the table behind a catalog resource.
type Entity struct {
	// Name is the resource segment in the URL, e.g. "lab-tests".
	Name         string
	Label        string // singular, for messages: "Lab test"
	Table        string
	Columns      []string // writable columns, excluding id and is_active
	SearchColumn string
	Archivable   bool
	OrderBy      string
}

// SelectList returns the column list read back for a record.
func (e Entity) SelectList() string {
	cols := append([]string{"id"}, e.Columns...)
	if e.Archivable {
		cols = append(cols, "is_active")
	}
	return strings.Join(cols, ", ")
}

// Order returns the ORDER BY expression for list queries.
func (e Entity) Order() string {
	if e.OrderBy != "" {
		return e.OrderBy
	}
	return "id DESC"
}
