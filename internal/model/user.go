package model

import (
	"time"

	"github.com/google/uuid"
)

// Role discriminates which profile row a User owns (Staff or Customer).
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// Record status constants. Deleting a user or workspace flips the status
// instead of removing the row.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents the central identity record for staff, customers and admins
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role        Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Staff       *Staff     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"staff,omitempty"`
	Customer    *Customer  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Staff is the profile owned by a User with role=staff. The building
// assignment is nullable until an admin assigns the staff member.
type Staff struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BuildingID *uuid.UUID `gorm:"type:uuid;index" json:"building_id"`
	Building   *Building  `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Customer is the profile owned by a User with role=customer.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Company   string    `gorm:"type:varchar(255)" json:"company"`
	Points    int       `gorm:"type:int;default:0" json:"points"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
