package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workhive/internal/model"
	"workhive/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Company  string `json:"company"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// --- Interface ---

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	// Register creates a customer account (identity row + customer profile).
	Register(ctx context.Context, req RegisterRequest) (*CustomerResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, txManager repository.TransactionManager, secret []byte) AuthService {
	return &authService{
		userRepo:  userRepo,
		txManager: txManager,
		secret:    secret,
		tokenTTL:  24 * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Status != model.StatusActive {
		return nil, NotFound("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, NotFound("invalid email or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &TokenResponse{Token: signed}, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*CustomerResponse, error) {
	existing, err := s.userRepo.FindByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check uniqueness: %w", err)
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

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     model.RoleCustomer,
		Status:   model.StatusActive,
		Customer: &model.Customer{Company: req.Company},
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	return toCustomerResponse(user), nil
}
