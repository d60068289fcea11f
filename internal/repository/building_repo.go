package repository

import (
	"context"
	"fmt"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BuildingFilter is the allow-listed filter set for building listings.
type BuildingFilter struct {
	Name      string
	Status    string
	Offset    int
	Limit     int
	SortField string
	SortDir   string
}

type BuildingRepository interface {
	Create(ctx context.Context, building *model.Building) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Building, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter BuildingFilter) ([]model.Building, int64, error)
	Update(ctx context.Context, building *model.Building) error
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
}

type buildingRepository struct {
	db *gorm.DB
}

func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) Create(ctx context.Context, building *model.Building) error {
	return GetDB(ctx, r.db).Create(building).Error
}

func (r *buildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Building, error) {
	var building model.Building
	err := GetDB(ctx, r.db).
		Preload("Workspaces").
		First(&building, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Building{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *buildingRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Building{}).
		Where("building_name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *buildingRepository) List(ctx context.Context, filter BuildingFilter) ([]model.Building, int64, error) {
	var buildings []model.Building
	var total int64

	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			q = q.Where("building_name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.Building{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := apply(db.Model(&model.Building{}))
	if filter.SortField != "" {
		q = q.Order(fmt.Sprintf("%s %s", filter.SortField, filter.SortDir))
	}
	if err := q.Offset(filter.Offset).Limit(filter.Limit).Find(&buildings).Error; err != nil {
		return nil, 0, err
	}

	return buildings, total, nil
}

func (r *buildingRepository) Update(ctx context.Context, building *model.Building) error {
	return GetDB(ctx, r.db).Save(building).Error
}

func (r *buildingRepository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Building{}).
		Where("id = ? AND status = ?", id, model.StatusActive).
		Update("status", model.StatusInactive)
	return res.RowsAffected, res.Error
}
