package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workhive/internal/model"
	"workhive/internal/repository"
	"workhive/pkg/pagination"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const dateOfBirthLayout = "01/02/2006"

// --- DTOs ---

type CreateStaffRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"` // MM/DD/YYYY
}

type UpdateStaffProfileRequest struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"` // MM/DD/YYYY
}

type ListStaffQuery struct {
	Name   string
	Status string
	Order  string
	Page   pagination.Params
}

// StaffResponse flattens the user identity and the staff profile,
// omitting the password and audit columns.
type StaffResponse struct {
	UserID      uuid.UUID        `json:"user_id"`
	StaffID     uuid.UUID        `json:"staff_id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Gender      string           `json:"gender"`
	DateOfBirth string           `json:"date_of_birth,omitempty"`
	Role        model.Role       `json:"role"`
	Status      string           `json:"status"`
	BuildingID  *uuid.UUID       `json:"building_id"`
	Building    *BuildingSummary `json:"building,omitempty"`
}

// --- Interface ---

type StaffService interface {
	Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error)
	List(ctx context.Context, q ListStaffQuery) ([]StaffResponse, int64, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*StaffResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateStaffProfileRequest) (*StaffResponse, error)
	AssignToBuilding(ctx context.Context, userID, buildingID uuid.UUID) (*StaffResponse, error)
	Delete(ctx context.Context, userID uuid.UUID) (int64, error)
}

type staffService struct {
	userRepo     repository.UserRepository
	staffRepo    repository.StaffRepository
	buildingRepo repository.BuildingRepository
	txManager    repository.TransactionManager
}

func NewStaffService(
	userRepo repository.UserRepository,
	staffRepo repository.StaffRepository,
	buildingRepo repository.BuildingRepository,
	txManager repository.TransactionManager,
) StaffService {
	return &staffService{
		userRepo:     userRepo,
		staffRepo:    staffRepo,
		buildingRepo: buildingRepo,
		txManager:    txManager,
	}
}

// Create inserts the identity row and the staff profile as one unit after
// checking email/phone uniqueness among active users.
func (s *staffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	existing, err := s.userRepo.FindByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check staff uniqueness: %w", err)
	}
	if existing != nil {
		field := "phone"
		if existing.Email == req.Email {
			field = "email"
		}
		return nil, Conflict(field + " is already used")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
		if err != nil {
			return nil, Conflict("date_of_birth must be MM/DD/YYYY")
		}
		dob = &parsed
	}

	user := &model.User{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    string(hashed),
		Role:        model.RoleStaff,
		Gender:      req.Gender,
		DateOfBirth: dob,
		Status:      model.StatusActive,
		Staff:       &model.Staff{},
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	return toStaffResponse(user), nil
}

func (s *staffService) List(ctx context.Context, q ListStaffQuery) ([]StaffResponse, int64, error) {
	field, dir := pagination.ParseSort(q.Order, "email",
		"name", "email", "phone", "status", "created_at")

	users, total, err := s.userRepo.List(ctx, repository.UserFilter{
		Name:      q.Name,
		Role:      model.RoleStaff,
		Status:    q.Status,
		Offset:    q.Page.Offset,
		Limit:     q.Page.Limit,
		SortField: field,
		SortDir:   dir,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch staff: %w", err)
	}

	res := make([]StaffResponse, 0, len(users))
	for i := range users {
		res = append(res, *toStaffResponse(&users[i]))
	}
	return res, total, nil
}

func (s *staffService) GetByID(ctx context.Context, userID uuid.UUID) (*StaffResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID, model.RoleStaff)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("staff does not exist")
		}
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	return toStaffResponse(user), nil
}

// UpdateProfile applies a partial field update to the identity row.
func (s *staffService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateStaffProfileRequest) (*StaffResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID, model.RoleStaff)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("staff not found")
		}
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, Conflict("name cannot be empty")
		}
		user.Name = *req.Name
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		parsed, err := time.Parse(dateOfBirthLayout, *req.DateOfBirth)
		if err != nil {
			return nil, Conflict("date_of_birth must be MM/DD/YYYY")
		}
		user.DateOfBirth = &parsed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update staff profile: %w", err)
	}
	return toStaffResponse(user), nil
}

func (s *staffService) AssignToBuilding(ctx context.Context, userID, buildingID uuid.UUID) (*StaffResponse, error) {
	var staff *model.Staff
	var buildingExists bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		staff, err = s.staffRepo.FindByUserID(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			staff = nil
			err = nil
		}
		return err
	})
	g.Go(func() (err error) {
		buildingExists, err = s.buildingRepo.Exists(gctx, buildingID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if staff == nil {
		return nil, NotFound("staff does not exist")
	}
	if !buildingExists {
		return nil, ReferenceMissing("building does not exist")
	}

	staff.BuildingID = &buildingID
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to assign staff: %w", err)
	}
	return s.GetByID(ctx, userID)
}

// Delete hard-deletes the staff profile and its identity row in one
// transaction. Both deletes must touch a row or the unit rolls back.
func (s *staffService) Delete(ctx context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		staffRows, err := s.staffRepo.DeleteByUserID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete staff profile: %w", err)
		}
		userRows, err := s.userRepo.HardDelete(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete staff user: %w", err)
		}
		if staffRows == 0 || userRows == 0 {
			return NotFound("staff not found")
		}
		deleted = staffRows
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// --- Response mappers ---

func toStaffResponse(user *model.User) *StaffResponse {
	res := &StaffResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		Gender: user.Gender,
		Role:   user.Role,
		Status: user.Status,
	}
	if user.DateOfBirth != nil {
		res.DateOfBirth = user.DateOfBirth.Format(dateOfBirthLayout)
	}
	if user.Staff != nil {
		res.StaffID = user.Staff.ID
		res.BuildingID = user.Staff.BuildingID
		if user.Staff.Building != nil {
			res.Building = &BuildingSummary{
				ID:           user.Staff.Building.ID,
				BuildingName: user.Staff.Building.BuildingName,
				Location:     user.Staff.Building.Location,
			}
		}
	}
	return res
}
