package repository

import (
	"context"
	"fmt"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AmenityFilter is the allow-listed filter set for amenity listings.
type AmenityFilter struct {
	Name      string
	Type      string
	Status    string
	Offset    int
	Limit     int
	SortField string
	SortDir   string
}

type AmenityRepository interface {
	Create(ctx context.Context, amenity *model.Amenity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Amenity, error)
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter AmenityFilter) ([]model.Amenity, int64, error)
	Update(ctx context.Context, amenity *model.Amenity) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type amenityRepository struct {
	db *gorm.DB
}

func NewAmenityRepository(db *gorm.DB) AmenityRepository {
	return &amenityRepository{db: db}
}

func (r *amenityRepository) Create(ctx context.Context, amenity *model.Amenity) error {
	return GetDB(ctx, r.db).Create(amenity).Error
}

func (r *amenityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Amenity, error) {
	var amenity model.Amenity
	if err := GetDB(ctx, r.db).First(&amenity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *amenityRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Amenity{}).
		Where("amenity_name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *amenityRepository) List(ctx context.Context, filter AmenityFilter) ([]model.Amenity, int64, error) {
	var amenities []model.Amenity
	var total int64

	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			q = q.Where("amenity_name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Type != "" {
			q = q.Where("type = ?", filter.Type)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.Amenity{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := apply(db.Model(&model.Amenity{}))
	if filter.SortField != "" {
		q = q.Order(fmt.Sprintf("%s %s", filter.SortField, filter.SortDir))
	}
	if err := q.Offset(filter.Offset).Limit(filter.Limit).Find(&amenities).Error; err != nil {
		return nil, 0, err
	}

	return amenities, total, nil
}

func (r *amenityRepository) Update(ctx context.Context, amenity *model.Amenity) error {
	return GetDB(ctx, r.db).Save(amenity).Error
}

func (r *amenityRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.Amenity{})
	return res.RowsAffected, res.Error
}
