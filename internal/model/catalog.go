package model

import "time"

type Specialty struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,max=100"`
	Description *string `json:"description" db:"description"`
	Archivable
}

type Floor struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,max=50"`
	Description *string `json:"description" db:"description"`
}

type RoomCategory struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,max=100"`
	Description *string `json:"description" db:"description"`
	DailyRate   float64 `json:"daily_rate" db:"daily_rate" validate:"gte=0"`
}

type GenericMedicine struct {
	Base
	Name string `json:"name" db:"name" validate:"required,max=150"`
	Archivable
}

type Medicine struct {
	Base
	GenericMedicineID int64   `json:"generic_medicine_id" db:"generic_medicine_id" validate:"required"`
	Name              string  `json:"name" db:"name" validate:"required,max=150"`
	UnitPrice         float64 `json:"unit_price" db:"unit_price" validate:"gte=0"`
	Archivable
}

type BillingCategory struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,max=100"`
	Description *string `json:"description" db:"description"`
}

type InsuranceProvider struct {
	Base
	Name  string  `json:"name" db:"name" validate:"required,max=150"`
	Phone *string `json:"phone" db:"phone" validate:"omitempty,max=30"`
	Email *string `json:"email" db:"email" validate:"omitempty,email"`
	Archivable
}

type LabTestCategory struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,max=100"`
	Description *string `json:"description" db:"description"`
}

type LabTest struct {
	Base
	CategoryID int64   `json:"category_id" db:"category_id" validate:"required"`
	Name       string  `json:"name" db:"name" validate:"required,max=150"`
	Price      float64 `json:"price" db:"price" validate:"gte=0"`
	Archivable
}

type Role struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,max=50"`
	Description *string `json:"description" db:"description"`
}

type User struct {
	Base
	RoleID       int64   `json:"role_id" db:"role_id" validate:"required"`
	Username     string  `json:"username" db:"username" validate:"required,max=50"`
	FullName     string  `json:"full_name" db:"full_name" validate:"required,max=150"`
	Email        *string `json:"email" db:"email" validate:"omitempty,email"`
	Password     string  `json:"password,omitempty" db:"-"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Archivable
}

type Doctor struct {
	Base
	SpecialtyID int64   `json:"specialty_id" db:"specialty_id" validate:"required"`
	FullName    string  `json:"full_name" db:"full_name" validate:"required,max=150"`
	Phone       *string `json:"phone" db:"phone" validate:"omitempty,max=30"`
	Email       *string `json:"email" db:"email" validate:"omitempty,email"`
	Archivable
}

type Patient struct {
	Base
	FullName            string     `json:"full_name" db:"full_name" validate:"required,max=150"`
	DateOfBirth         *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender              *string    `json:"gender" db:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone               *string    `json:"phone" db:"phone" validate:"omitempty,max=30"`
	Address             *string    `json:"address" db:"address"`
	InsuranceProviderID *int64     `json:"insurance_provider_id" db:"insurance_provider_id"`
	Archivable
}

// Catalog entity descriptors.
var (
	Specialties = Entity{
		Name:         "specialties",
		Label:        "Specialty",
		Table:        "specialties",
		Columns:      []string{"name", "description"},
		SearchColumn: "name",
		Archivable:   true,
		OrderBy:      "name",
	}
	Floors = Entity{
		Name:         "floors",
		Label:        "Floor",
		Table:        "floors",
		Columns:      []string{"name", "description"},
		SearchColumn: "name",
		OrderBy:      "name",
	}
	RoomCategories = Entity{
		Name:         "room-categories",
		Label:        "Room category",
		Table:        "room_categories",
		Columns:      []string{"name", "description", "daily_rate"},
		SearchColumn: "name",
		OrderBy:      "name",
	}
	GenericMedicines = Entity{
		Name:         "generic-medicines",
		Label:        "Generic medicine",
		Table:        "generic_medicines",
		Columns:      []string{"name"},
		SearchColumn: "name",
		Archivable:   true,
		OrderBy:      "name",
	}
	Medicines = Entity{
		Name:         "medicines",
		Label:        "Medicine",
		Table:        "medicines",
		Columns:      []string{"generic_medicine_id", "name", "unit_price"},
		SearchColumn: "name",
		Archivable:   true,
		OrderBy:      "name",
	}
	BillingCategories = Entity{
		Name:         "billing-categories",
		Label:        "Billing category",
		Table:        "billing_categories",
		Columns:      []string{"name", "description"},
		SearchColumn: "name",
		OrderBy:      "name",
	}
	InsuranceProviders = Entity{
		Name:         "insurance-providers",
		Label:        "Insurance provider",
		Table:        "insurance_providers",
		Columns:      []string{"name", "phone", "email"},
		SearchColumn: "name",
		Archivable:   true,
		OrderBy:      "name",
	}
	LabTestCategories = Entity{
		Name:         "lab-test-categories",
		Label:        "Lab test category",
		Table:        "lab_test_categories",
		Columns:      []string{"name", "description"},
		SearchColumn: "name",
		OrderBy:      "name",
	}
	LabTests = Entity{
		Name:         "lab-tests",
		Label:        "Lab test",
		Table:        "lab_tests",
		Columns:      []string{"category_id", "name", "price"},
		SearchColumn: "name",
		Archivable:   true,
		OrderBy:      "name",
	}
	Roles = Entity{
		Name:         "roles",
		Label:        "Role",
		Table:        "roles",
		Columns:      []string{"name", "description"},
		SearchColumn: "name",
		OrderBy:      "name",
	}
	Users = Entity{
		Name:         "users",
		Label:        "User",
		Table:        "users",
		Columns:      []string{"role_id", "username", "full_name", "email", "password_hash"},
		SearchColumn: "username",
		Archivable:   true,
		OrderBy:      "username",
	}
	Doctors = Entity{
		Name:         "doctors",
		Label:        "Doctor",
		Table:        "doctors",
		Columns:      []string{"specialty_id", "full_name", "phone", "email"},
		SearchColumn: "full_name",
		Archivable:   true,
		OrderBy:      "full_name",
	}
	Patients = Entity{
		Name:         "patients",
		Label:        "Patient",
		Table:        "patients",
		Columns:      []string{"full_name", "date_of_birth", "gender", "phone", "address", "insurance_provider_id"},
		SearchColumn: "full_name",
		Archivable:   true,
	}
)
