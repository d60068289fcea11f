package repository

import (
	"context"
	"fmt"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFilter is the allow-listed filter set for user listings. Role and
// Status are exact matches; Name is a case-insensitive substring.
type UserFilter struct {
	Name      string
	Role      model.Role
	Status    string
	Offset    int
	Limit     int
	SortField string
	SortDir   string
}

// UserRepository defines the interface for data access of User entities.
// Create cascades the attached Staff or Customer profile row.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	HardDelete(ctx context.Context, id uuid.UUID) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

// FindByID loads a user with its role profile and, for staff, the assigned
// building one level deep. Pass an empty role to skip the role filter.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	var user model.User
	q := GetDB(ctx, r.db).
		Preload("Staff").
		Preload("Staff.Building").
		Preload("Customer")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrPhone returns the first active user holding either value,
// used for uniqueness pre-checks before creation.
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.User, error) {
	var user model.User
	err := GetDB(ctx, r.db).
		Where("(email = ? OR phone = ?) AND status = ?", email, phone, model.StatusActive).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Role != "" {
			q = q.Where("role = ?", filter.Role)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := apply(db.Model(&model.User{})).Preload("Staff").Preload("Customer")
	if filter.SortField != "" {
		q = q.Order(fmt.Sprintf("%s %s", filter.SortField, filter.SortDir))
	}
	if err := q.Offset(filter.Offset).Limit(filter.Limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Omit("Staff", "Customer").Save(user).Error
}

func (r *userRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.User{}).
		Where("id = ? AND status <> ?", id, status).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *userRepository) HardDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.User{})
	return res.RowsAffected, res.Error
}
