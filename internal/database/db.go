package database

import (
	"workhive/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM and migrates
// the schema. The unique indexes created here back the application-level
// duplicate checks; two racing creates on the same key lose at commit time.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Staff{},
		&model.Customer{},
		&model.Building{},
		&model.WorkspaceType{},
		&model.Workspace{},
		&model.WorkspaceImage{},
		&model.Amenity{},
		&model.Booking{},
		&model.BookingAmenityDetail{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
