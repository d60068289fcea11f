package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmenityType enum constants
const (
	AmenityTypeDevice    = "device"
	AmenityTypeFurniture = "furniture"
	AmenityTypeService   = "service"
)

// Amenity is a standalone catalog entity that can be attached to bookings
type Amenity struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AmenityName       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"amenity_name"`
	Image             string          `gorm:"type:varchar(512)" json:"image"`
	OriginalPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"original_price"`
	DepreciationPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"depreciation_price"`
	Type              string          `gorm:"type:varchar(50);not null;index" json:"type"`
	Status            string          `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
