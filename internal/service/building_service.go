package service

import (
	"context"
	"errors"
	"fmt"

	"workhive/internal/model"
	"workhive/internal/repository"
	"workhive/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateBuildingRequest struct {
	BuildingName string `json:"building_name" binding:"required"`
	Location     string `json:"location"`
	Address      string `json:"address"`
}

type UpdateBuildingRequest struct {
	BuildingName *string `json:"building_name"`
	Location     *string `json:"location"`
	Address      *string `json:"address"`
	Status       *string `json:"status"`
}

type ListBuildingsQuery struct {
	Name   string
	Status string
	Order  string
	Page   pagination.Params
}

type BuildingResponse struct {
	ID           uuid.UUID `json:"id"`
	BuildingName string    `json:"building_name"`
	Location     string    `json:"location"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
}

// --- Interface ---

type BuildingService interface {
	Create(ctx context.Context, req CreateBuildingRequest) (*BuildingResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateBuildingRequest) (*BuildingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ListBuildingsQuery) ([]BuildingResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BuildingResponse, error)
}

type buildingService struct {
	buildingRepo repository.BuildingRepository
}

func NewBuildingService(buildingRepo repository.BuildingRepository) BuildingService {
	return &buildingService{buildingRepo: buildingRepo}
}

func (s *buildingService) Create(ctx context.Context, req CreateBuildingRequest) (*BuildingResponse, error) {
	taken, err := s.buildingRepo.NameTaken(ctx, req.BuildingName, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check building name: %w", err)
	}
	if taken {
		return nil, Conflict("building name is already used")
	}

	building := &model.Building{
		BuildingName: req.BuildingName,
		Location:     req.Location,
		Address:      req.Address,
		Status:       model.StatusActive,
	}
	if err := s.buildingRepo.Create(ctx, building); err != nil {
		return nil, fmt.Errorf("failed to create building: %w", err)
	}
	return toBuildingResponse(building), nil
}

func (s *buildingService) Update(ctx context.Context, id uuid.UUID, req UpdateBuildingRequest) (*BuildingResponse, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("building does not exist")
		}
		return nil, fmt.Errorf("failed to load building: %w", err)
	}

	if req.BuildingName != nil && *req.BuildingName != building.BuildingName {
		taken, err := s.buildingRepo.NameTaken(ctx, *req.BuildingName, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check building name: %w", err)
		}
		if taken {
			return nil, Conflict("building name is already used")
		}
		building.BuildingName = *req.BuildingName
	}
	if req.Location != nil {
		building.Location = *req.Location
	}
	if req.Address != nil {
		building.Address = *req.Address
	}
	if req.Status != nil {
		if *req.Status != model.StatusActive && *req.Status != model.StatusInactive {
			return nil, Conflict("status must be active or inactive")
		}
		building.Status = *req.Status
	}

	if err := s.buildingRepo.Update(ctx, building); err != nil {
		return nil, fmt.Errorf("failed to update building: %w", err)
	}
	return toBuildingResponse(building), nil
}

func (s *buildingService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.buildingRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	if rows == 0 {
		return NotFound("cannot find any building to delete")
	}
	return nil
}

func (s *buildingService) List(ctx context.Context, q ListBuildingsQuery) ([]BuildingResponse, int64, error) {
	field, dir := pagination.ParseSort(q.Order, "building_name",
		"building_name", "location", "status", "created_at")

	rows, total, err := s.buildingRepo.List(ctx, repository.BuildingFilter{
		Name:      q.Name,
		Status:    q.Status,
		Offset:    q.Page.Offset,
		Limit:     q.Page.Limit,
		SortField: field,
		SortDir:   dir,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch buildings: %w", err)
	}

	res := make([]BuildingResponse, 0, len(rows))
	for i := range rows {
		res = append(res, *toBuildingResponse(&rows[i]))
	}
	return res, total, nil
}

func (s *buildingService) GetByID(ctx context.Context, id uuid.UUID) (*BuildingResponse, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("building does not exist")
		}
		return nil, fmt.Errorf("failed to load building: %w", err)
	}
	return toBuildingResponse(building), nil
}

// --- Response mappers ---

func toBuildingResponse(b *model.Building) *BuildingResponse {
	return &BuildingResponse{
		ID:           b.ID,
		BuildingName: b.BuildingName,
		Location:     b.Location,
		Address:      b.Address,
		Status:       b.Status,
	}
}
