package repository

import (
	"context"
	"fmt"
	"time"

	"workhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingFilter is the allow-listed filter set for booking listings.
type BookingFilter struct {
	CustomerID  *uuid.UUID
	WorkspaceID *uuid.UUID
	Status      string
	Offset      int
	Limit       int
	SortField   string
	SortDir     string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	CreateDetail(ctx context.Context, detail *model.BookingAmenityDetail) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]model.Booking, int64, error)
	// UpdateStatus transitions a booking from one status to another and
	// reports whether a row actually changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error)
	// Overlaps reports whether an active booking already covers any part of
	// [start, end) on the workspace.
	Overlaps(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (bool, error)
	// ExpireOverdue flips confirmed bookings whose end time passed to
	// expired, returning the affected rows for broadcast.
	ExpireOverdue(ctx context.Context, now time.Time) ([]model.Booking, error)
	// CompleteFinished flips checked_out bookings whose end time passed to
	// completed, returning the affected rows for broadcast.
	CompleteFinished(ctx context.Context, now time.Time) ([]model.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return GetDB(ctx, r.db).Omit("Amenities").Create(booking).Error
}

func (r *bookingRepository) CreateDetail(ctx context.Context, detail *model.BookingAmenityDetail) error {
	return GetDB(ctx, r.db).Create(detail).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := GetDB(ctx, r.db).
		Preload("Workspace").
		Preload("Amenities").
		Preload("Amenities.Amenity").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.CustomerID != nil {
			q = q.Where("customer_id = ?", *filter.CustomerID)
		}
		if filter.WorkspaceID != nil {
			q = q.Where("workspace_id = ?", *filter.WorkspaceID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.Booking{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := apply(db.Model(&model.Booking{})).Preload("Workspace").Preload("Amenities")
	if filter.SortField != "" {
		q = q.Order(fmt.Sprintf("%s %s", filter.SortField, filter.SortDir))
	}
	if err := q.Offset(filter.Offset).Limit(filter.Limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) Overlaps(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Booking{}).
		Where("workspace_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			workspaceID,
			[]string{model.BookingStatusConfirmed, model.BookingStatusCheckedIn},
			end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]model.Booking, error) {
	var overdue []model.Booking
	err := GetDB(ctx, r.db).
		Where("status = ? AND end_time < ?", model.BookingStatusConfirmed, now).
		Find(&overdue).Error
	if err != nil {
		return nil, err
	}
	if len(overdue) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(overdue))
	for _, b := range overdue {
		ids = append(ids, b.ID)
	}
	res := GetDB(ctx, r.db).Model(&model.Booking{}).
		Where("id IN ? AND status = ?", ids, model.BookingStatusConfirmed).
		Update("status", model.BookingStatusExpired)
	if res.Error != nil {
		return nil, res.Error
	}
	return overdue, nil
}

func (r *bookingRepository) CompleteFinished(ctx context.Context, now time.Time) ([]model.Booking, error) {
	var finished []model.Booking
	err := GetDB(ctx, r.db).
		Where("status = ? AND end_time < ?", model.BookingStatusCheckedOut, now).
		Find(&finished).Error
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(finished))
	for _, b := range finished {
		ids = append(ids, b.ID)
	}
	res := GetDB(ctx, r.db).Model(&model.Booking{}).
		Where("id IN ? AND status = ?", ids, model.BookingStatusCheckedOut).
		Update("status", model.BookingStatusCompleted)
	if res.Error != nil {
		return nil, res.Error
	}
	return finished, nil
}
