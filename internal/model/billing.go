package model

import "time"

type BillingItem struct {
	ID                int64     `json:"id" db:"id"`
	AdmissionID       int64     `json:"admission_id" db:"admission_id" validate:"required"`
	BillingCategoryID int64     `json:"billing_category_id" db:"billing_category_id" validate:"required"`
	Description       string    `json:"description" db:"description" validate:"required,max=255"`
	Quantity          int       `json:"quantity" db:"quantity" validate:"gt=0"`
	UnitPrice         float64   `json:"unit_price" db:"unit_price" validate:"gte=0"`
	Amount            float64   `json:"amount" db:"amount"`
	CategoryName      string    `json:"category_name,omitempty" db:"category_name"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// BillingStatement lists the items of one admission with their total.
type BillingStatement struct {
	AdmissionID int64         `json:"admission_id"`
	Items       []BillingItem `json:"items"`
	Total       float64       `json:"total"`
}
