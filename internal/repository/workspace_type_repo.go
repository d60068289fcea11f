package repository

import (
	"context"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceTypeRepository interface {
	Create(ctx context.Context, wt *model.WorkspaceType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkspaceType, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]model.WorkspaceType, error)
}

type workspaceTypeRepository struct {
	db *gorm.DB
}

func NewWorkspaceTypeRepository(db *gorm.DB) WorkspaceTypeRepository {
	return &workspaceTypeRepository{db: db}
}

func (r *workspaceTypeRepository) Create(ctx context.Context, wt *model.WorkspaceType) error {
	return GetDB(ctx, r.db).Create(wt).Error
}

func (r *workspaceTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkspaceType, error) {
	var wt model.WorkspaceType
	if err := GetDB(ctx, r.db).First(&wt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wt, nil
}

func (r *workspaceTypeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.WorkspaceType{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *workspaceTypeRepository) List(ctx context.Context) ([]model.WorkspaceType, error) {
	var types []model.WorkspaceType
	err := GetDB(ctx, r.db).Order("type_name asc").Find(&types).Error
	return types, err
}
