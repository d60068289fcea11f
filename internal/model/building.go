package model

import (
	"time"

	"github.com/google/uuid"
)

// Building is a physical location owning workspaces and assigned staff
type Building struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BuildingName string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"building_name"`
	Location     string      `gorm:"type:varchar(255)" json:"location"`
	Address      string      `gorm:"type:text" json:"address"`
	Status       string      `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Workspaces   []Workspace `gorm:"foreignKey:BuildingID" json:"workspaces,omitempty"`
	Staffs       []Staff     `gorm:"foreignKey:BuildingID" json:"staffs,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
