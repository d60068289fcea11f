package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"workhive/internal/model"
	"workhive/internal/repository"
	ws "workhive/internal/websocket"
	"workhive/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// --- DTOs ---

type BookingAmenityRequest struct {
	AmenityID uuid.UUID `json:"amenity_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	WorkspaceID uuid.UUID               `json:"workspace_id" binding:"required"`
	StartTime   time.Time               `json:"start_time" binding:"required"`
	EndTime     time.Time               `json:"end_time" binding:"required"`
	Amenities   []BookingAmenityRequest `json:"amenities"`
}

type ListBookingsQuery struct {
	CustomerID  *uuid.UUID
	WorkspaceID *uuid.UUID
	Status      string
	Order       string
	Page        pagination.Params
}

type BookingAmenityResponse struct {
	AmenityID uuid.UUID       `json:"amenity_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type BookingResponse struct {
	ID          uuid.UUID                `json:"id"`
	CustomerID  uuid.UUID                `json:"customer_id"`
	WorkspaceID uuid.UUID                `json:"workspace_id"`
	StartTime   time.Time                `json:"start_time"`
	EndTime     time.Time                `json:"end_time"`
	TotalPrice  decimal.Decimal          `json:"total_price"`
	Status      string                   `json:"status"`
	Amenities   []BookingAmenityResponse `json:"amenities"`
}

// bookingEvent is the payload pushed to connected dashboards.
type bookingEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// --- Interface ---

type BookingService interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	List(ctx context.Context, q ListBookingsQuery) ([]BookingResponse, int64, error)
	// ListForUser resolves the caller's customer profile and lists only
	// that customer's bookings.
	ListForUser(ctx context.Context, userID uuid.UUID, q ListBookingsQuery) ([]BookingResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingResponse, error)
	CheckIn(ctx context.Context, id uuid.UUID) error
	CheckOut(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
	// RunStatusSweeper expires overdue confirmed bookings on every tick
	// until ctx is done. Meant to run in its own goroutine.
	RunStatusSweeper(ctx context.Context, interval time.Duration)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	workspaceRepo repository.WorkspaceRepository
	amenityRepo   repository.AmenityRepository
	userRepo      repository.UserRepository
	txManager     repository.TransactionManager
	hub           *ws.Hub
	log           *zap.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	workspaceRepo repository.WorkspaceRepository,
	amenityRepo repository.AmenityRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		workspaceRepo: workspaceRepo,
		amenityRepo:   amenityRepo,
		userRepo:      userRepo,
		txManager:     txManager,
		hub:           hub,
		log:           log,
	}
}

// Create books a workspace for the customer owning userID, writing the
// booking and its amenity lines as one atomic unit.
func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, Conflict("end_time must be after start_time")
	}

	var user *model.User
	var workspace *model.Workspace

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.userRepo.FindByID(gctx, userID, model.RoleCustomer)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = nil
			err = nil
		}
		return err
	})
	g.Go(func() (err error) {
		workspace, err = s.workspaceRepo.FindByID(gctx, req.WorkspaceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			workspace = nil
			err = nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if user == nil || user.Customer == nil {
		return nil, NotFound("customer does not exist")
	}
	if workspace == nil {
		return nil, ReferenceMissing("workspace does not exist")
	}
	if workspace.Status != model.StatusActive {
		return nil, Conflict("workspace is not active")
	}

	hours := decimal.NewFromFloat(req.EndTime.Sub(req.StartTime).Hours())
	total := workspace.PricePerHour.Mul(hours)

	// Resolve amenity lines before opening the transaction; duplicates
	// within the request are a rejection, not a constraint blowup.
	seen := make(map[uuid.UUID]bool, len(req.Amenities))
	details := make([]model.BookingAmenityDetail, 0, len(req.Amenities))
	duplicates := 0
	for _, line := range req.Amenities {
		if seen[line.AmenityID] {
			duplicates++
			continue
		}
		seen[line.AmenityID] = true

		amenity, err := s.amenityRepo.FindByID(ctx, line.AmenityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ReferenceMissing("amenity does not exist: " + line.AmenityID.String())
			}
			return nil, fmt.Errorf("failed to load amenity: %w", err)
		}
		lineTotal := amenity.OriginalPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		details = append(details, model.BookingAmenityDetail{
			AmenityID: amenity.ID,
			Quantity:  line.Quantity,
			UnitPrice: amenity.OriginalPrice,
		})
	}
	if duplicates > 0 {
		return nil, Conflict(fmt.Sprintf("%d duplicate amenity line(s) in booking", duplicates))
	}

	booking := &model.Booking{
		CustomerID:  user.Customer.ID,
		WorkspaceID: workspace.ID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TotalPrice:  total,
		Status:      model.BookingStatusConfirmed,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		overlap, err := s.bookingRepo.Overlaps(txCtx, workspace.ID, req.StartTime, req.EndTime)
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if overlap {
			return Conflict("workspace is already booked for this time")
		}

		if err := s.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		for i := range details {
			details[i].BookingID = booking.ID
			if err := s.bookingRepo.CreateDetail(txCtx, &details[i]); err != nil {
				return fmt.Errorf("failed to create booking amenity: %w", err)
			}
		}
		booking.Amenities = details
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := toBookingResponse(booking)
	s.broadcast("booking_created", res)
	return res, nil
}

func (s *bookingService) List(ctx context.Context, q ListBookingsQuery) ([]BookingResponse, int64, error) {
	field, dir := pagination.ParseSort(q.Order, "start_time",
		"start_time", "end_time", "status", "total_price", "created_at")

	rows, total, err := s.bookingRepo.List(ctx, repository.BookingFilter{
		CustomerID:  q.CustomerID,
		WorkspaceID: q.WorkspaceID,
		Status:      q.Status,
		Offset:      q.Page.Offset,
		Limit:       q.Page.Limit,
		SortField:   field,
		SortDir:     dir,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	res := make([]BookingResponse, 0, len(rows))
	for i := range rows {
		res = append(res, *toBookingResponse(&rows[i]))
	}
	return res, total, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID, q ListBookingsQuery) ([]BookingResponse, int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID, model.RoleCustomer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, NotFound("customer does not exist")
		}
		return nil, 0, fmt.Errorf("failed to load customer: %w", err)
	}
	if user.Customer == nil {
		return nil, 0, NotFound("customer does not exist")
	}
	q.CustomerID = &user.Customer.ID
	return s.List(ctx, q)
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("booking does not exist")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return toBookingResponse(booking), nil
}

func (s *bookingService) CheckIn(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, model.BookingStatusConfirmed, model.BookingStatusCheckedIn, "booking_checked_in")
}

func (s *bookingService) CheckOut(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, model.BookingStatusCheckedIn, model.BookingStatusCheckedOut, "booking_checked_out")
}

func (s *bookingService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, model.BookingStatusConfirmed, model.BookingStatusCancelled, "booking_cancelled")
}

func (s *bookingService) transition(ctx context.Context, id uuid.UUID, from, to, event string) error {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("booking does not exist")
		}
		return fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.Status != from {
		return Conflict(fmt.Sprintf("booking is %s, expected %s", booking.Status, from))
	}

	rows, err := s.bookingRepo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if rows == 0 {
		return Conflict("booking status changed concurrently")
	}

	s.broadcast(event, map[string]interface{}{"id": id, "status": to})
	return nil
}

func (s *bookingService) RunStatusSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, time.Now())
		}
	}
}

// sweep expires overdue confirmed bookings and completes finished
// checked_out ones, broadcasting each change.
func (s *bookingService) sweep(ctx context.Context, now time.Time) {
	expired, err := s.bookingRepo.ExpireOverdue(ctx, now)
	if err != nil {
		s.log.Error("booking expiry sweep failed", zap.Error(err))
	}
	for i := range expired {
		s.broadcast("booking_expired", map[string]interface{}{
			"id":     expired[i].ID,
			"status": model.BookingStatusExpired,
		})
	}

	completed, err := s.bookingRepo.CompleteFinished(ctx, now)
	if err != nil {
		s.log.Error("booking completion sweep failed", zap.Error(err))
	}
	for i := range completed {
		s.broadcast("booking_completed", map[string]interface{}{
			"id":     completed[i].ID,
			"status": model.BookingStatusCompleted,
		})
	}

	if len(expired) > 0 || len(completed) > 0 {
		s.log.Info("booking status sweep",
			zap.Int("expired", len(expired)),
			zap.Int("completed", len(completed)))
	}
}

func (s *bookingService) broadcast(event string, data interface{}) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(bookingEvent{Event: event, Data: data})
	if err != nil {
		s.log.Warn("failed to marshal booking event", zap.Error(err))
		return
	}
	s.hub.Broadcast <- payload
}

// --- Response mappers ---

func toBookingResponse(b *model.Booking) *BookingResponse {
	amenities := make([]BookingAmenityResponse, 0, len(b.Amenities))
	for _, d := range b.Amenities {
		amenities = append(amenities, BookingAmenityResponse{
			AmenityID: d.AmenityID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		})
	}
	return &BookingResponse{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		WorkspaceID: b.WorkspaceID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		Amenities:   amenities,
	}
}
