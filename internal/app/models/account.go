package models

import "time"

// Account defines the account model based on the 'accounts' table. Accounts
// are the identity layer; domain records (Student, Faculty) reference them
// and never mutate them.
type Account struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"user@campus.edu"`
	Password  string    `json:"-" db:"password"` // Hashed, excluded from JSON
	FullName  string    `json:"fullName" db:"full_name" example:"John Doe"`
	Role      RoleType  `json:"role" db:"role" example:"STUDENT"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
