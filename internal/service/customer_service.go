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

type ListCustomersQuery struct {
	Name   string
	Status string
	Order  string
	Page   pagination.Params
}

// CustomerResponse joins the identity row with the customer profile,
// omitting the password and audit columns.
type CustomerResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	Role        model.Role `json:"role"`
	Status      string     `json:"status"`
	Company     string     `json:"company,omitempty"`
	Points      int        `json:"points"`
}

// --- Interface ---

type CustomerService interface {
	List(ctx context.Context, q ListCustomersQuery) ([]CustomerResponse, int64, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*CustomerResponse, error)
	// Remove soft-deletes the customer: the identity row flips to inactive.
	Remove(ctx context.Context, userID uuid.UUID) error
}

type customerService struct {
	userRepo repository.UserRepository
}

func NewCustomerService(userRepo repository.UserRepository) CustomerService {
	return &customerService{userRepo: userRepo}
}

func (s *customerService) List(ctx context.Context, q ListCustomersQuery) ([]CustomerResponse, int64, error) {
	field, dir := pagination.ParseSort(q.Order, "name",
		"name", "email", "phone", "status", "created_at")

	users, total, err := s.userRepo.List(ctx, repository.UserFilter{
		Name:      q.Name,
		Role:      model.RoleCustomer,
		Status:    q.Status,
		Offset:    q.Page.Offset,
		Limit:     q.Page.Limit,
		SortField: field,
		SortDir:   dir,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	res := make([]CustomerResponse, 0, len(users))
	for i := range users {
		res = append(res, *toCustomerResponse(&users[i]))
	}
	return res, total, nil
}

func (s *customerService) GetByID(ctx context.Context, userID uuid.UUID) (*CustomerResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID, model.RoleCustomer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("customer does not exist")
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return toCustomerResponse(user), nil
}

func (s *customerService) Remove(ctx context.Context, userID uuid.UUID) error {
	rows, err := s.userRepo.SetStatus(ctx, userID, model.StatusInactive)
	if err != nil {
		return fmt.Errorf("failed to remove customer: %w", err)
	}
	if rows == 0 {
		return NotFound("user not found")
	}
	return nil
}

// --- Response mappers ---

func toCustomerResponse(user *model.User) *CustomerResponse {
	res := &CustomerResponse{
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
	if user.Customer != nil {
		res.CustomerID = user.Customer.ID
		res.Company = user.Customer.Company
		res.Points = user.Customer.Points
	}
	return res
}
