package repository

import (
	"context"
	"fmt"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceFilter is the allow-listed filter set for workspace listings.
// Name matches case-insensitively as a substring; the rest are exact.
type WorkspaceFilter struct {
	Name            string
	BuildingID      *uuid.UUID
	WorkspaceTypeID *uuid.UUID
	Status          string
	Offset          int
	Limit           int
	SortField       string
	SortDir         string
}

type WorkspaceRepository interface {
	// FindOrCreate inserts ws unless a workspace with the same name exists.
	// It reports whether a new row was created; when false, ws is loaded
	// with the existing row.
	FindOrCreate(ctx context.Context, ws *model.Workspace) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter WorkspaceFilter) ([]model.Workspace, int64, error)
	Update(ctx context.Context, ws *model.Workspace) error
	SoftDeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	AddImage(ctx context.Context, img *model.WorkspaceImage) error
	HasImage(ctx context.Context, workspaceID uuid.UUID, image string) (bool, error)
}

type workspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

func (r *workspaceRepository) FindOrCreate(ctx context.Context, ws *model.Workspace) (bool, error) {
	res := GetDB(ctx, r.db).
		Where("workspace_name = ?", ws.WorkspaceName).
		FirstOrCreate(ws)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *workspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var ws model.Workspace
	err := GetDB(ctx, r.db).
		Preload("Building").
		Preload("WorkspaceType").
		Preload("Images").
		First(&ws, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Workspace{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *workspaceRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Workspace{}).
		Where("workspace_name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *workspaceRepository) List(ctx context.Context, filter WorkspaceFilter) ([]model.Workspace, int64, error) {
	var workspaces []model.Workspace
	var total int64

	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			q = q.Where("workspace_name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.BuildingID != nil {
			q = q.Where("building_id = ?", *filter.BuildingID)
		}
		if filter.WorkspaceTypeID != nil {
			q = q.Where("workspace_type_id = ?", *filter.WorkspaceTypeID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.Workspace{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := apply(db.Model(&model.Workspace{})).Preload("Building").Preload("Images")
	if filter.SortField != "" {
		q = q.Order(fmt.Sprintf("%s %s", filter.SortField, filter.SortDir))
	}
	if err := q.Offset(filter.Offset).Limit(filter.Limit).Find(&workspaces).Error; err != nil {
		return nil, 0, err
	}

	return workspaces, total, nil
}

func (r *workspaceRepository) Update(ctx context.Context, ws *model.Workspace) error {
	return GetDB(ctx, r.db).Save(ws).Error
}

func (r *workspaceRepository) SoftDeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Workspace{}).
		Where("id IN ? AND status = ?", ids, model.StatusActive).
		Update("status", model.StatusInactive)
	return res.RowsAffected, res.Error
}

func (r *workspaceRepository) AddImage(ctx context.Context, img *model.WorkspaceImage) error {
	return GetDB(ctx, r.db).Create(img).Error
}

func (r *workspaceRepository) HasImage(ctx context.Context, workspaceID uuid.UUID, image string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.WorkspaceImage{}).
		Where("workspace_id = ? AND image = ?", workspaceID, image).
		Count(&count).Error
	return count > 0, err
}
