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
	"gorm.io/gorm"
)

// Depreciated amenity price is a fixed fraction of the original.
var amenityDepreciationRate = decimal.NewFromFloat(0.7)

// --- DTOs ---

type CreateAmenityRequest struct {
	AmenityName   string          `json:"amenity_name" binding:"required"`
	Image         string          `json:"image"`
	OriginalPrice decimal.Decimal `json:"original_price" binding:"required"`
	Type          string          `json:"type" binding:"required"`
}

type UpdateAmenityRequest struct {
	AmenityName   *string          `json:"amenity_name"`
	Image         *string          `json:"image"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Type          *string          `json:"type"`
	Status        *string          `json:"status"`
}

type ListAmenitiesQuery struct {
	Name   string
	Type   string
	Status string
	Order  string
	Page   pagination.Params
}

type AmenityResponse struct {
	ID                uuid.UUID       `json:"id"`
	AmenityName       string          `json:"amenity_name"`
	Image             string          `json:"image"`
	OriginalPrice     decimal.Decimal `json:"original_price"`
	DepreciationPrice decimal.Decimal `json:"depreciation_price"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
}

// --- Interface ---

type AmenityService interface {
	Create(ctx context.Context, req CreateAmenityRequest) (*AmenityResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAmenityRequest) (*AmenityResponse, error)
	Delete(ctx context.Context, ids []uuid.UUID) (int64, error)
	List(ctx context.Context, q ListAmenitiesQuery) ([]AmenityResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AmenityResponse, error)
}

type amenityService struct {
	amenityRepo repository.AmenityRepository
}

func NewAmenityService(amenityRepo repository.AmenityRepository) AmenityService {
	return &amenityService{amenityRepo: amenityRepo}
}

var validAmenityTypes = map[string]bool{
	model.AmenityTypeDevice:    true,
	model.AmenityTypeFurniture: true,
	model.AmenityTypeService:   true,
}

func (s *amenityService) Create(ctx context.Context, req CreateAmenityRequest) (*AmenityResponse, error) {
	if !validAmenityTypes[req.Type] {
		return nil, Conflict("type must be one of: device, furniture, service")
	}

	taken, err := s.amenityRepo.NameTaken(ctx, req.AmenityName, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check amenity name: %w", err)
	}
	if taken {
		return nil, Conflict("amenity already exists")
	}

	amenity := &model.Amenity{
		AmenityName:       req.AmenityName,
		Image:             req.Image,
		OriginalPrice:     req.OriginalPrice,
		DepreciationPrice: req.OriginalPrice.Mul(amenityDepreciationRate),
		Type:              req.Type,
		Status:            model.StatusActive,
	}
	if err := s.amenityRepo.Create(ctx, amenity); err != nil {
		return nil, fmt.Errorf("failed to create amenity: %w", err)
	}
	return toAmenityResponse(amenity), nil
}

func (s *amenityService) Update(ctx context.Context, id uuid.UUID, req UpdateAmenityRequest) (*AmenityResponse, error) {
	amenity, err := s.amenityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("amenity does not exist")
		}
		return nil, fmt.Errorf("failed to load amenity: %w", err)
	}

	if req.AmenityName != nil && *req.AmenityName != amenity.AmenityName {
		taken, err := s.amenityRepo.NameTaken(ctx, *req.AmenityName, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check amenity name: %w", err)
		}
		if taken {
			return nil, Conflict("amenity name is already used")
		}
		amenity.AmenityName = *req.AmenityName
	}
	if req.Image != nil {
		amenity.Image = *req.Image
	}
	if req.OriginalPrice != nil {
		amenity.OriginalPrice = *req.OriginalPrice
		amenity.DepreciationPrice = req.OriginalPrice.Mul(amenityDepreciationRate)
	}
	if req.Type != nil {
		if !validAmenityTypes[*req.Type] {
			return nil, Conflict("type must be one of: device, furniture, service")
		}
		amenity.Type = *req.Type
	}
	if req.Status != nil {
		if *req.Status != model.StatusActive && *req.Status != model.StatusInactive {
			return nil, Conflict("status must be active or inactive")
		}
		amenity.Status = *req.Status
	}

	if err := s.amenityRepo.Update(ctx, amenity); err != nil {
		return nil, fmt.Errorf("failed to update amenity: %w", err)
	}
	return toAmenityResponse(amenity), nil
}

func (s *amenityService) Delete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	count, err := s.amenityRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete amenities: %w", err)
	}
	if count == 0 {
		return 0, NotFound("cannot find any amenity to delete")
	}
	return count, nil
}

func (s *amenityService) List(ctx context.Context, q ListAmenitiesQuery) ([]AmenityResponse, int64, error) {
	field, dir := pagination.ParseSort(q.Order, "amenity_name",
		"amenity_name", "original_price", "type", "status", "created_at")

	rows, total, err := s.amenityRepo.List(ctx, repository.AmenityFilter{
		Name:      q.Name,
		Type:      q.Type,
		Status:    q.Status,
		Offset:    q.Page.Offset,
		Limit:     q.Page.Limit,
		SortField: field,
		SortDir:   dir,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch amenities: %w", err)
	}

	res := make([]AmenityResponse, 0, len(rows))
	for i := range rows {
		res = append(res, *toAmenityResponse(&rows[i]))
	}
	return res, total, nil
}

func (s *amenityService) GetByID(ctx context.Context, id uuid.UUID) (*AmenityResponse, error) {
	amenity, err := s.amenityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("amenity does not exist")
		}
		return nil, fmt.Errorf("failed to load amenity: %w", err)
	}
	return toAmenityResponse(amenity), nil
}

// --- Response mappers ---

func toAmenityResponse(a *model.Amenity) *AmenityResponse {
	return &AmenityResponse{
		ID:                a.ID,
		AmenityName:       a.AmenityName,
		Image:             a.Image,
		OriginalPrice:     a.OriginalPrice,
		DepreciationPrice: a.DepreciationPrice,
		Type:              a.Type,
		Status:            a.Status,
	}
}
