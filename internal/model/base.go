package model

// Base carries the surrogate key shared by every catalog record.
type Base struct {
	ID int64 `json:"id" db:"id"`
}

func (b *Base) GetID() int64   { return b.ID }
func (b *Base) SetID(id int64) { b.ID = id }

// Archivable is embedded by records that are soft-deleted instead of removed.
type Archivable struct {
	IsActive bool `json:"is_active" db:"is_active"`
}

// Record is implemented by every catalog model through the embedded Base.
type Record interface {
	GetID() int64
	SetID(int64)
}

// ListFilter contains common filter fields
type ListFilter struct {
	Search          string
	IncludeArchived bool
	Status          string
	AdmissionID     int64
}
