package service

import (
	"context"
	"fmt"

	"workhive/internal/model"
	"workhive/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateWorkspaceTypeRequest struct {
	TypeName    string `json:"type_name" binding:"required"`
	Description string `json:"description"`
}

type WorkspaceTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	TypeName    string    `json:"type_name"`
	Description string    `json:"description"`
}

// --- Interface ---

type WorkspaceTypeService interface {
	Create(ctx context.Context, req CreateWorkspaceTypeRequest) (*WorkspaceTypeResponse, error)
	List(ctx context.Context) ([]WorkspaceTypeResponse, error)
}

type workspaceTypeService struct {
	typeRepo repository.WorkspaceTypeRepository
}

func NewWorkspaceTypeService(typeRepo repository.WorkspaceTypeRepository) WorkspaceTypeService {
	return &workspaceTypeService{typeRepo: typeRepo}
}

func (s *workspaceTypeService) Create(ctx context.Context, req CreateWorkspaceTypeRequest) (*WorkspaceTypeResponse, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check workspace types: %w", err)
	}
	for i := range types {
		if types[i].TypeName == req.TypeName {
			return nil, Conflict("workspace type already exists")
		}
	}

	wt := &model.WorkspaceType{
		TypeName:    req.TypeName,
		Description: req.Description,
	}
	if err := s.typeRepo.Create(ctx, wt); err != nil {
		return nil, fmt.Errorf("failed to create workspace type: %w", err)
	}
	return toWorkspaceTypeResponse(wt), nil
}

func (s *workspaceTypeService) List(ctx context.Context) ([]WorkspaceTypeResponse, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workspace types: %w", err)
	}
	res := make([]WorkspaceTypeResponse, 0, len(types))
	for i := range types {
		res = append(res, *toWorkspaceTypeResponse(&types[i]))
	}
	return res, nil
}

func toWorkspaceTypeResponse(wt *model.WorkspaceType) *WorkspaceTypeResponse {
	return &WorkspaceTypeResponse{
		ID:          wt.ID,
		TypeName:    wt.TypeName,
		Description: wt.Description,
	}
}
