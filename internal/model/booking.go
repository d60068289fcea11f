package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus enum constants
const (
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
	BookingStatusExpired    = "expired"
)

// Booking reserves a workspace for a customer over [StartTime, EndTime).
type Booking struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID  uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer              `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	WorkspaceID uuid.UUID              `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Workspace   *Workspace             `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	StartTime   time.Time              `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time              `gorm:"not null;index" json:"end_time"`
	TotalPrice  decimal.Decimal        `gorm:"type:decimal(18,4);not null" json:"total_price"`
	Status      string                 `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	Amenities   []BookingAmenityDetail `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	CreatedAt   time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

// BookingAmenityDetail is a line item attaching one amenity to a booking.
type BookingAmenityDetail struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_booking_amenity" json:"booking_id"`
	AmenityID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_booking_amenity" json:"amenity_id"`
	Amenity   *Amenity        `gorm:"foreignKey:AmenityID" json:"amenity,omitempty"`
	Quantity  int             `gorm:"type:int;not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
