package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkspaceType is the catalog of bookable unit kinds (single desk,
// meeting room, event hall...).
type WorkspaceType struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TypeName    string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"type_name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Workspace is a bookable unit. PricePerHour is the single source of truth;
// the day and month tiers are always derived from it, never set directly.
type Workspace struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceName   string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"workspace_name"`
	BuildingID      *uuid.UUID       `gorm:"type:uuid;index" json:"building_id"`
	Building        *Building        `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	WorkspaceTypeID uuid.UUID        `gorm:"type:uuid;not null;index" json:"workspace_type_id"`
	WorkspaceType   *WorkspaceType   `gorm:"foreignKey:WorkspaceTypeID" json:"workspace_type,omitempty"`
	PricePerHour    decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"price_per_hour"`
	PricePerDay     decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"price_per_day"`
	PricePerMonth   decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"price_per_month"`
	Capacity        int              `gorm:"type:int;default:1" json:"capacity"`
	Description     string           `gorm:"type:text" json:"description"`
	Status          string           `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Images          []WorkspaceImage `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// WorkspaceImage belongs to exactly one workspace. The composite unique
// index rejects the same image registered twice for one workspace.
type WorkspaceImage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_image" json:"workspace_id"`
	Image       string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_workspace_image" json:"image"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
