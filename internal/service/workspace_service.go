package service

import (
	"context"
	"errors"
	"fmt"

	"workhive/internal/model"
	"workhive/internal/repository"
	"workhive/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateWorkspaceRequest struct {
	WorkspaceName   string          `json:"workspace_name" binding:"required"`
	WorkspacePrice  decimal.Decimal `json:"workspace_price" binding:"required"`
	WorkspaceTypeID uuid.UUID       `json:"workspace_type_id" binding:"required"`
	BuildingID      *uuid.UUID      `json:"building_id"`
	Capacity        int             `json:"capacity"`
	Description     string          `json:"description"`
	Images          []string        `json:"images"`
}

type UpdateWorkspaceRequest struct {
	WorkspaceName   string          `json:"workspace_name" binding:"required"`
	WorkspacePrice  decimal.Decimal `json:"workspace_price" binding:"required"`
	WorkspaceTypeID uuid.UUID       `json:"workspace_type_id" binding:"required"`
	BuildingID      uuid.UUID       `json:"building_id" binding:"required"`
	Capacity        *int            `json:"capacity"`
	Description     *string         `json:"description"`
}

// ListWorkspacesQuery carries raw list controls; the service resolves the
// sort order against the workspace field allow-list.
type ListWorkspacesQuery struct {
	Name            string
	BuildingID      *uuid.UUID
	WorkspaceTypeID *uuid.UUID
	Status          string
	Order           string
	Page            pagination.Params
}

type BuildingSummary struct {
	ID           uuid.UUID `json:"id"`
	BuildingName string    `json:"building_name"`
	Location     string    `json:"location"`
}

// WorkspaceResponse deliberately omits audit columns.
type WorkspaceResponse struct {
	ID              uuid.UUID        `json:"id"`
	WorkspaceName   string           `json:"workspace_name"`
	BuildingID      *uuid.UUID       `json:"building_id"`
	Building        *BuildingSummary `json:"building,omitempty"`
	WorkspaceTypeID uuid.UUID        `json:"workspace_type_id"`
	PricePerHour    decimal.Decimal  `json:"price_per_hour"`
	PricePerDay     decimal.Decimal  `json:"price_per_day"`
	PricePerMonth   decimal.Decimal  `json:"price_per_month"`
	Capacity        int              `json:"capacity"`
	Description     string           `json:"description"`
	Status          string           `json:"status"`
	Images          []string         `json:"images"`
}

// --- Interface ---

type WorkspaceService interface {
	Create(ctx context.Context, req CreateWorkspaceRequest) (*WorkspaceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateWorkspaceRequest) (*WorkspaceResponse, error)
	Delete(ctx context.Context, ids []uuid.UUID) (int64, error)
	List(ctx context.Context, q ListWorkspacesQuery) ([]WorkspaceResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*WorkspaceResponse, error)
	AssignToBuilding(ctx context.Context, id, buildingID uuid.UUID) (*WorkspaceResponse, error)
}

type workspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	buildingRepo  repository.BuildingRepository
	typeRepo      repository.WorkspaceTypeRepository
	txManager     repository.TransactionManager
}

func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	buildingRepo repository.BuildingRepository,
	typeRepo repository.WorkspaceTypeRepository,
	txManager repository.TransactionManager,
) WorkspaceService {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		buildingRepo:  buildingRepo,
		typeRepo:      typeRepo,
		txManager:     txManager,
	}
}

// ComputePriceTiers derives the day and month prices from the hourly price.
// day = hour × 8 × 0.8, month = hour × 22 × 0.8. The tiers are never set
// independently.
func ComputePriceTiers(hour decimal.Decimal) (day, month decimal.Decimal) {
	discount := decimal.NewFromFloat(0.8)
	day = hour.Mul(decimal.NewFromInt(8)).Mul(discount)
	month = hour.Mul(decimal.NewFromInt(22)).Mul(discount)
	return day, month
}

// Create inserts a workspace together with its images as one atomic unit.
// A taken name or any duplicate image rolls the whole transaction back.
func (s *workspaceService) Create(ctx context.Context, req CreateWorkspaceRequest) (*WorkspaceResponse, error) {
	day, month := ComputePriceTiers(req.WorkspacePrice)

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	ws := &model.Workspace{
		WorkspaceName:   req.WorkspaceName,
		BuildingID:      req.BuildingID,
		WorkspaceTypeID: req.WorkspaceTypeID,
		PricePerHour:    req.WorkspacePrice,
		PricePerDay:     day,
		PricePerMonth:   month,
		Capacity:        capacity,
		Description:     req.Description,
		Status:          model.StatusActive,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.workspaceRepo.FindOrCreate(txCtx, ws)
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}
		if !created {
			return Conflict("workspace already exists")
		}

		foundCount := 0
		for _, image := range req.Images {
			exists, err := s.workspaceRepo.HasImage(txCtx, ws.ID, image)
			if err != nil {
				return fmt.Errorf("failed to check workspace image: %w", err)
			}
			if exists {
				foundCount++
				continue
			}
			img := &model.WorkspaceImage{WorkspaceID: ws.ID, Image: image}
			if err := s.workspaceRepo.AddImage(txCtx, img); err != nil {
				return fmt.Errorf("failed to create workspace image: %w", err)
			}
			ws.Images = append(ws.Images, *img)
		}
		if foundCount > 0 {
			return Conflict(fmt.Sprintf("%d workspace image(s) already exist", foundCount))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toWorkspaceResponse(ws), nil
}

// Update existence-checks the workspace and both referenced entities
// concurrently before any write, then recomputes the price tiers and
// applies the full field set inside a transaction.
func (s *workspaceService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkspaceRequest) (*WorkspaceResponse, error) {
	var wsExists, buildingExists, typeExists bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wsExists, err = s.workspaceRepo.Exists(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		buildingExists, err = s.buildingRepo.Exists(gctx, req.BuildingID)
		return err
	})
	g.Go(func() (err error) {
		typeExists, err = s.typeRepo.Exists(gctx, req.WorkspaceTypeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !wsExists {
		return nil, NotFound("workspace does not exist")
	}
	if !buildingExists {
		return nil, ReferenceMissing("building does not exist")
	}
	if !typeExists {
		return nil, ReferenceMissing("workspace type does not exist")
	}

	var updated *model.Workspace
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		taken, err := s.workspaceRepo.NameTaken(txCtx, req.WorkspaceName, id)
		if err != nil {
			return fmt.Errorf("failed to check workspace name: %w", err)
		}
		if taken {
			return Conflict("workspace name is already used")
		}

		ws, err := s.workspaceRepo.FindByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load workspace: %w", err)
		}

		day, month := ComputePriceTiers(req.WorkspacePrice)
		buildingID := req.BuildingID
		ws.WorkspaceName = req.WorkspaceName
		ws.BuildingID = &buildingID
		ws.WorkspaceTypeID = req.WorkspaceTypeID
		ws.PricePerHour = req.WorkspacePrice
		ws.PricePerDay = day
		ws.PricePerMonth = month
		if req.Capacity != nil {
			ws.Capacity = *req.Capacity
		}
		if req.Description != nil {
			ws.Description = *req.Description
		}

		if err := s.workspaceRepo.Update(txCtx, ws); err != nil {
			return fmt.Errorf("failed to update workspace: %w", err)
		}
		updated = ws
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toWorkspaceResponse(updated), nil
}

// Delete bulk soft-deletes the given ids, flipping only currently active
// rows to inactive. Zero matches is a business condition, not a failure.
func (s *workspaceService) Delete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	count, err := s.workspaceRepo.SoftDeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete workspaces: %w", err)
	}
	if count == 0 {
		return 0, NotFound("cannot find any workspace to delete")
	}
	return count, nil
}

func (s *workspaceService) List(ctx context.Context, q ListWorkspacesQuery) ([]WorkspaceResponse, int64, error) {
	field, dir := pagination.ParseSort(q.Order, "workspace_name",
		"workspace_name", "price_per_hour", "capacity", "status", "created_at")

	rows, total, err := s.workspaceRepo.List(ctx, repository.WorkspaceFilter{
		Name:            q.Name,
		BuildingID:      q.BuildingID,
		WorkspaceTypeID: q.WorkspaceTypeID,
		Status:          q.Status,
		Offset:          q.Page.Offset,
		Limit:           q.Page.Limit,
		SortField:       field,
		SortDir:         dir,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch workspaces: %w", err)
	}

	res := make([]WorkspaceResponse, 0, len(rows))
	for i := range rows {
		res = append(res, *toWorkspaceResponse(&rows[i]))
	}
	return res, total, nil
}

func (s *workspaceService) GetByID(ctx context.Context, id uuid.UUID) (*WorkspaceResponse, error) {
	ws, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("workspace does not exist")
		}
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return toWorkspaceResponse(ws), nil
}

func (s *workspaceService) AssignToBuilding(ctx context.Context, id, buildingID uuid.UUID) (*WorkspaceResponse, error) {
	var wsExists, buildingExists bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wsExists, err = s.workspaceRepo.Exists(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		buildingExists, err = s.buildingRepo.Exists(gctx, buildingID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !wsExists {
		return nil, NotFound("workspace does not exist")
	}
	if !buildingExists {
		return nil, ReferenceMissing("building does not exist")
	}

	ws, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	ws.BuildingID = &buildingID
	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to assign workspace: %w", err)
	}
	return toWorkspaceResponse(ws), nil
}

// --- Response mappers ---

func toWorkspaceResponse(ws *model.Workspace) *WorkspaceResponse {
	images := make([]string, 0, len(ws.Images))
	for _, img := range ws.Images {
		images = append(images, img.Image)
	}

	res := &WorkspaceResponse{
		ID:              ws.ID,
		WorkspaceName:   ws.WorkspaceName,
		BuildingID:      ws.BuildingID,
		WorkspaceTypeID: ws.WorkspaceTypeID,
		PricePerHour:    ws.PricePerHour,
		PricePerDay:     ws.PricePerDay,
		PricePerMonth:   ws.PricePerMonth,
		Capacity:        ws.Capacity,
		Description:     ws.Description,
		Status:          ws.Status,
		Images:          images,
	}
	if ws.Building != nil {
		res.Building = &BuildingSummary{
			ID:           ws.Building.ID,
			BuildingName: ws.Building.BuildingName,
			Location:     ws.Building.Location,
		}
	}
	return res
}
