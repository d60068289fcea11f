package repository

import (
	"context"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	err := GetDB(ctx, r.db).
		Preload("Building").
		First(&staff, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	return GetDB(ctx, r.db).Save(staff).Error
}

func (r *staffRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("user_id = ?", userID).Delete(&model.Staff{})
	return res.RowsAffected, res.Error
}
