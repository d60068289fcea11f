package service

import (
	"context"
	"testing"
	"time"

	"workhive/internal/model"
	"workhive/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type bookingStore struct {
	bookings  map[uuid.UUID]model.Booking
	details   []model.BookingAmenityDetail
	amenities map[uuid.UUID]model.Amenity
}

func newBookingStore() *bookingStore {
	return &bookingStore{
		bookings:  make(map[uuid.UUID]model.Booking),
		amenities: make(map[uuid.UUID]model.Amenity),
	}
}

func (s *bookingStore) snapshot() bookingStore {
	cp := bookingStore{
		bookings:  make(map[uuid.UUID]model.Booking, len(s.bookings)),
		details:   append([]model.BookingAmenityDetail(nil), s.details...),
		amenities: make(map[uuid.UUID]model.Amenity, len(s.amenities)),
	}
	for k, v := range s.bookings {
		cp.bookings[k] = v
	}
	for k, v := range s.amenities {
		cp.amenities[k] = v
	}
	return cp
}

func (s *bookingStore) restore(snap bookingStore) {
	s.bookings = snap.bookings
	s.details = snap.details
	s.amenities = snap.amenities
}

type bookingTxManager struct {
	store *bookingStore
}

func (t *bookingTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type fakeBookingRepo struct {
	store *bookingStore
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	booking.ID = uuid.New()
	b := *booking
	b.Amenities = nil
	r.store.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) CreateDetail(_ context.Context, detail *model.BookingAmenityDetail) error {
	detail.ID = uuid.New()
	r.store.details = append(r.store.details, *detail)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, d := range r.store.details {
		if d.BookingID == id {
			b.Amenities = append(b.Amenities, d)
		}
	}
	return &b, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter) ([]model.Booking, int64, error) {
	var all []model.Booking
	for _, b := range r.store.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.WorkspaceID != nil && b.WorkspaceID != *filter.WorkspaceID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		all = append(all, b)
	}
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to string) (int64, error) {
	b, ok := r.store.bookings[id]
	if !ok || b.Status != from {
		return 0, nil
	}
	b.Status = to
	r.store.bookings[id] = b
	return 1, nil
}

func (r *fakeBookingRepo) Overlaps(_ context.Context, workspaceID uuid.UUID, start, end time.Time) (bool, error) {
	for _, b := range r.store.bookings {
		if b.WorkspaceID != workspaceID {
			continue
		}
		if b.Status != model.BookingStatusConfirmed && b.Status != model.BookingStatusCheckedIn {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ExpireOverdue(_ context.Context, now time.Time) ([]model.Booking, error) {
	var flipped []model.Booking
	for id, b := range r.store.bookings {
		if b.Status == model.BookingStatusConfirmed && b.EndTime.Before(now) {
			flipped = append(flipped, b)
			b.Status = model.BookingStatusExpired
			r.store.bookings[id] = b
		}
	}
	return flipped, nil
}

func (r *fakeBookingRepo) CompleteFinished(_ context.Context, now time.Time) ([]model.Booking, error) {
	var flipped []model.Booking
	for id, b := range r.store.bookings {
		if b.Status == model.BookingStatusCheckedOut && b.EndTime.Before(now) {
			flipped = append(flipped, b)
			b.Status = model.BookingStatusCompleted
			r.store.bookings[id] = b
		}
	}
	return flipped, nil
}

type fakeAmenityRepo struct {
	store *bookingStore
}

func (r *fakeAmenityRepo) Create(_ context.Context, amenity *model.Amenity) error {
	amenity.ID = uuid.New()
	r.store.amenities[amenity.ID] = *amenity
	return nil
}

func (r *fakeAmenityRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Amenity, error) {
	a, ok := r.store.amenities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeAmenityRepo) NameTaken(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeAmenityRepo) List(context.Context, repository.AmenityFilter) ([]model.Amenity, int64, error) {
	return nil, 0, nil
}

func (r *fakeAmenityRepo) Update(_ context.Context, amenity *model.Amenity) error {
	r.store.amenities[amenity.ID] = *amenity
	return nil
}

func (r *fakeAmenityRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := r.store.amenities[id]; ok {
			delete(r.store.amenities, id)
			count++
		}
	}
	return count, nil
}

type bookingFixtureData struct {
	store       *bookingStore
	svc         BookingService
	userID      uuid.UUID
	customerID  uuid.UUID
	workspaceID uuid.UUID
}

func bookingFixture(t *testing.T) *bookingFixtureData {
	t.Helper()

	bStore := newBookingStore()
	uStore := newUserStore()
	wStore := newWsStore()

	userID := uuid.New()
	customerID := uuid.New()
	uStore.users[userID] = model.User{
		ID: userID, Name: "Anna", Email: "anna@workhive.io",
		Role: model.RoleCustomer, Status: model.StatusActive,
	}
	uStore.customers[userID] = model.Customer{ID: customerID, UserID: userID}

	workspaceID := uuid.New()
	wStore.workspaces[workspaceID] = model.Workspace{
		ID:            workspaceID,
		WorkspaceName: "Focus Pod 1",
		PricePerHour:  decimal.NewFromInt(10),
		Status:        model.StatusActive,
	}

	svc := NewBookingService(
		&fakeBookingRepo{store: bStore},
		&fakeWorkspaceRepo{store: wStore},
		&fakeAmenityRepo{store: bStore},
		&fakeUserRepo{store: uStore},
		&bookingTxManager{store: bStore},
		nil,
		zap.NewNop(),
	)

	return &bookingFixtureData{
		store:       bStore,
		svc:         svc,
		userID:      userID,
		customerID:  customerID,
		workspaceID: workspaceID,
	}
}

func TestCreateBooking(t *testing.T) {
	f := bookingFixture(t)

	amenityRepo := &fakeAmenityRepo{store: f.store}
	projector := &model.Amenity{
		AmenityName:   "Projector",
		OriginalPrice: decimal.NewFromInt(5),
		Type:          model.AmenityTypeDevice,
		Status:        model.StatusActive,
	}
	require.NoError(t, amenityRepo.Create(context.Background(), projector))

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	res, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		Amenities: []BookingAmenityRequest{
			{AmenityID: projector.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// 2h x 10 + 2 x 5
	assert.True(t, res.TotalPrice.Equal(decimal.NewFromInt(30)), "total = %s", res.TotalPrice)
	assert.Equal(t, model.BookingStatusConfirmed, res.Status)
	assert.Equal(t, f.customerID, res.CustomerID)
	require.Len(t, res.Amenities, 1)
	assert.Equal(t, 2, res.Amenities[0].Quantity)

	assert.Len(t, f.store.bookings, 1)
	assert.Len(t, f.store.details, 1)
}

func TestCreateBookingOverlapRollsBack(t *testing.T) {
	f := bookingFixture(t)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start.Add(time.Hour),
		EndTime:     start.Add(3 * time.Hour),
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)
	assert.Len(t, f.store.bookings, 1)
}

func TestCreateBookingAdjacentSlotsDoNotOverlap(t *testing.T) {
	f := bookingFixture(t)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	// Back to back: [9,11) then [11,13)
	_, err = f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start.Add(2 * time.Hour),
		EndTime:     start.Add(4 * time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, f.store.bookings, 2)
}

func TestCreateBookingDuplicateAmenityLines(t *testing.T) {
	f := bookingFixture(t)

	amenityRepo := &fakeAmenityRepo{store: f.store}
	projector := &model.Amenity{
		AmenityName:   "Projector",
		OriginalPrice: decimal.NewFromInt(5),
	}
	require.NoError(t, amenityRepo.Create(context.Background(), projector))

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Amenities: []BookingAmenityRequest{
			{AmenityID: projector.ID, Quantity: 1},
			{AmenityID: projector.ID, Quantity: 3},
		},
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)
	assert.Contains(t, be.Message, "1 duplicate amenity line(s)")
	assert.Empty(t, f.store.bookings)
	assert.Empty(t, f.store.details)
}

func TestCreateBookingMissingWorkspace(t *testing.T) {
	f := bookingFixture(t)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindReferenceMissing, be.Kind)
}

func TestCreateBookingInvalidWindow(t *testing.T) {
	f := bookingFixture(t)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start,
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)
}

func TestBookingTransitions(t *testing.T) {
	f := bookingFixture(t)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	res, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	require.NoError(t, err)

	// Cancel requires confirmed; check-out requires checked-in.
	require.NoError(t, f.svc.CheckIn(context.Background(), res.ID))

	err = f.svc.Cancel(context.Background(), res.ID)
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)

	require.NoError(t, f.svc.CheckOut(context.Background(), res.ID))
	assert.Equal(t, model.BookingStatusCheckedOut, f.store.bookings[res.ID].Status)
}

func TestBookingTransitionNotFound(t *testing.T) {
	f := bookingFixture(t)

	err := f.svc.CheckIn(context.Background(), uuid.New())
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
}

func TestStatusSweep(t *testing.T) {
	f := bookingFixture(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	overdueID := uuid.New()
	f.store.bookings[overdueID] = model.Booking{
		ID: overdueID, WorkspaceID: f.workspaceID,
		StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour),
		Status: model.BookingStatusConfirmed,
	}
	finishedID := uuid.New()
	f.store.bookings[finishedID] = model.Booking{
		ID: finishedID, WorkspaceID: f.workspaceID,
		StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour),
		Status: model.BookingStatusCheckedOut,
	}
	upcomingID := uuid.New()
	f.store.bookings[upcomingID] = model.Booking{
		ID: upcomingID, WorkspaceID: f.workspaceID,
		StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour),
		Status: model.BookingStatusConfirmed,
	}

	f.svc.(*bookingService).sweep(context.Background(), now)

	assert.Equal(t, model.BookingStatusExpired, f.store.bookings[overdueID].Status)
	assert.Equal(t, model.BookingStatusCompleted, f.store.bookings[finishedID].Status)
	assert.Equal(t, model.BookingStatusConfirmed, f.store.bookings[upcomingID].Status)
}

func TestListBookingsForUser(t *testing.T) {
	f := bookingFixture(t)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), f.userID, CreateBookingRequest{
		WorkspaceID: f.workspaceID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	require.NoError(t, err)

	rows, total, err := f.svc.ListForUser(context.Background(), f.userID, ListBookingsQuery{
		Page: paramsFor(1, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, f.customerID, rows[0].CustomerID)

	_, _, err = f.svc.ListForUser(context.Background(), uuid.New(), ListBookingsQuery{
		Page: paramsFor(1, 10),
	})
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
}
