package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"workhive/internal/model"
	"workhive/internal/repository"
	"workhive/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// wsStore is a shared in-memory backing store for the fake repositories, so
// transactional tests can snapshot and restore the whole state at once.
type wsStore struct {
	workspaces map[uuid.UUID]model.Workspace
	images     []model.WorkspaceImage
	buildings  map[uuid.UUID]bool
	types      map[uuid.UUID]bool
}

func newWsStore() *wsStore {
	return &wsStore{
		workspaces: make(map[uuid.UUID]model.Workspace),
		buildings:  make(map[uuid.UUID]bool),
		types:      make(map[uuid.UUID]bool),
	}
}

func (s *wsStore) snapshot() wsStore {
	cp := wsStore{
		workspaces: make(map[uuid.UUID]model.Workspace, len(s.workspaces)),
		images:     append([]model.WorkspaceImage(nil), s.images...),
		buildings:  make(map[uuid.UUID]bool, len(s.buildings)),
		types:      make(map[uuid.UUID]bool, len(s.types)),
	}
	for k, v := range s.workspaces {
		cp.workspaces[k] = v
	}
	for k := range s.buildings {
		cp.buildings[k] = true
	}
	for k := range s.types {
		cp.types[k] = true
	}
	return cp
}

func (s *wsStore) restore(snap wsStore) {
	s.workspaces = snap.workspaces
	s.images = snap.images
	s.buildings = snap.buildings
	s.types = snap.types
}

// fakeTxManager rolls the store back to its pre-transaction snapshot when
// fn fails, mirroring the atomicity the real manager gets from postgres.
type fakeTxManager struct {
	store *wsStore
}

func (t *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type fakeWorkspaceRepo struct {
	store *wsStore
}

func (r *fakeWorkspaceRepo) FindOrCreate(_ context.Context, ws *model.Workspace) (bool, error) {
	for _, existing := range r.store.workspaces {
		if existing.WorkspaceName == ws.WorkspaceName {
			*ws = existing
			return false, nil
		}
	}
	ws.ID = uuid.New()
	r.store.workspaces[ws.ID] = *ws
	return true, nil
}

func (r *fakeWorkspaceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Workspace, error) {
	ws, ok := r.store.workspaces[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ws, nil
}

func (r *fakeWorkspaceRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.store.workspaces[id]
	return ok, nil
}

func (r *fakeWorkspaceRepo) NameTaken(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for id, ws := range r.store.workspaces {
		if ws.WorkspaceName == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWorkspaceRepo) List(_ context.Context, filter repository.WorkspaceFilter) ([]model.Workspace, int64, error) {
	var all []model.Workspace
	for _, ws := range r.store.workspaces {
		if filter.Name != "" && !strings.Contains(strings.ToLower(ws.WorkspaceName), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Status != "" && ws.Status != filter.Status {
			continue
		}
		if filter.BuildingID != nil && (ws.BuildingID == nil || *ws.BuildingID != *filter.BuildingID) {
			continue
		}
		all = append(all, ws)
	}
	sort.Slice(all, func(i, j int) bool {
		if filter.SortDir == "desc" {
			return all[i].WorkspaceName > all[j].WorkspaceName
		}
		return all[i].WorkspaceName < all[j].WorkspaceName
	})

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

func (r *fakeWorkspaceRepo) Update(_ context.Context, ws *model.Workspace) error {
	if _, ok := r.store.workspaces[ws.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.workspaces[ws.ID] = *ws
	return nil
}

func (r *fakeWorkspaceRepo) SoftDeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		ws, ok := r.store.workspaces[id]
		if !ok || ws.Status != model.StatusActive {
			continue
		}
		ws.Status = model.StatusInactive
		r.store.workspaces[id] = ws
		count++
	}
	return count, nil
}

func (r *fakeWorkspaceRepo) AddImage(_ context.Context, img *model.WorkspaceImage) error {
	img.ID = uuid.New()
	r.store.images = append(r.store.images, *img)
	return nil
}

func (r *fakeWorkspaceRepo) HasImage(_ context.Context, workspaceID uuid.UUID, image string) (bool, error) {
	for _, img := range r.store.images {
		if img.WorkspaceID == workspaceID && img.Image == image {
			return true, nil
		}
	}
	return false, nil
}

type fakeBuildingRepo struct {
	store *wsStore
}

func (r *fakeBuildingRepo) Create(_ context.Context, b *model.Building) error {
	b.ID = uuid.New()
	r.store.buildings[b.ID] = true
	return nil
}

func (r *fakeBuildingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Building, error) {
	if !r.store.buildings[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Building{ID: id, Status: model.StatusActive}, nil
}

func (r *fakeBuildingRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.store.buildings[id], nil
}

func (r *fakeBuildingRepo) NameTaken(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeBuildingRepo) List(context.Context, repository.BuildingFilter) ([]model.Building, int64, error) {
	return nil, 0, nil
}

func (r *fakeBuildingRepo) Update(context.Context, *model.Building) error { return nil }

func (r *fakeBuildingRepo) SoftDelete(context.Context, uuid.UUID) (int64, error) { return 0, nil }

type fakeTypeRepo struct {
	store *wsStore
}

func (r *fakeTypeRepo) Create(_ context.Context, wt *model.WorkspaceType) error {
	wt.ID = uuid.New()
	r.store.types[wt.ID] = true
	return nil
}

func (r *fakeTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.WorkspaceType, error) {
	if !r.store.types[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.WorkspaceType{ID: id}, nil
}

func (r *fakeTypeRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.store.types[id], nil
}

func (r *fakeTypeRepo) List(context.Context) ([]model.WorkspaceType, error) { return nil, nil }

// workspaceFixture wires the service against the in-memory store with one
// seeded building and one workspace type.
func workspaceFixture() (*wsStore, WorkspaceService, uuid.UUID, uuid.UUID) {
	store := newWsStore()
	buildingID := uuid.New()
	typeID := uuid.New()
	store.buildings[buildingID] = true
	store.types[typeID] = true

	svc := NewWorkspaceService(
		&fakeWorkspaceRepo{store: store},
		&fakeBuildingRepo{store: store},
		&fakeTypeRepo{store: store},
		&fakeTxManager{store: store},
	)
	return store, svc, buildingID, typeID
}

func paramsFor(page, limit int) pagination.Params {
	return pagination.Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func TestComputePriceTiers(t *testing.T) {
	day, month := ComputePriceTiers(decimal.NewFromInt(10))

	assert.True(t, day.Equal(decimal.NewFromInt(64)), "day = %s", day)
	assert.True(t, month.Equal(decimal.NewFromInt(176)), "month = %s", month)
}

func TestCreateWorkspace(t *testing.T) {
	store, svc, buildingID, typeID := workspaceFixture()

	res, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Focus Pod 1",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
		Capacity:        4,
		Images:          []string{"front.png", "inside.png"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Focus Pod 1", res.WorkspaceName)
	assert.Equal(t, model.StatusActive, res.Status)
	assert.True(t, res.PricePerDay.Equal(decimal.NewFromInt(64)))
	assert.True(t, res.PricePerMonth.Equal(decimal.NewFromInt(176)))
	assert.Len(t, res.Images, 2)

	assert.Len(t, store.workspaces, 1)
	assert.Len(t, store.images, 2)
}

func TestCreateWorkspaceDuplicateName(t *testing.T) {
	store, svc, buildingID, typeID := workspaceFixture()

	_, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Focus Pod 1",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Focus Pod 1",
		WorkspacePrice:  decimal.NewFromInt(99),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
		Images:          []string{"other.png"},
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)

	// The first row survives untouched, the second attempt left nothing.
	assert.Len(t, store.workspaces, 1)
	assert.Empty(t, store.images)
	for _, ws := range store.workspaces {
		assert.True(t, ws.PricePerHour.Equal(decimal.NewFromInt(10)))
	}
}

func TestCreateWorkspaceDuplicateImageRollsBack(t *testing.T) {
	store, svc, buildingID, typeID := workspaceFixture()

	_, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Focus Pod 1",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
		Images:          []string{"a.png", "a.png"},
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)
	assert.Contains(t, be.Message, "1 workspace image(s) already exist")

	// Nothing from the failed unit is visible, including the workspace row.
	assert.Empty(t, store.workspaces)
	assert.Empty(t, store.images)
}

func TestUpdateWorkspaceMissingReferences(t *testing.T) {
	store, svc, buildingID, typeID := workspaceFixture()

	res, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Focus Pod 1",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), res.ID, UpdateWorkspaceRequest{
		WorkspaceName:   "Focus Pod 1 renamed",
		WorkspacePrice:  decimal.NewFromInt(20),
		WorkspaceTypeID: typeID,
		BuildingID:      uuid.New(), // not seeded
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindReferenceMissing, be.Kind)

	// No write happened.
	ws := store.workspaces[res.ID]
	assert.Equal(t, "Focus Pod 1", ws.WorkspaceName)
	assert.True(t, ws.PricePerHour.Equal(decimal.NewFromInt(10)))
}

func TestUpdateWorkspaceNameTaken(t *testing.T) {
	store, svc, buildingID, typeID := workspaceFixture()

	_, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Pod A",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Pod B",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), b.ID, UpdateWorkspaceRequest{
		WorkspaceName:   "Pod A",
		WorkspacePrice:  decimal.NewFromInt(30),
		WorkspaceTypeID: typeID,
		BuildingID:      buildingID,
	})

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)

	ws := store.workspaces[b.ID]
	assert.Equal(t, "Pod B", ws.WorkspaceName)
	assert.True(t, ws.PricePerHour.Equal(decimal.NewFromInt(10)))
}

func TestUpdateWorkspaceRecomputesTiers(t *testing.T) {
	_, svc, buildingID, typeID := workspaceFixture()

	created, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Pod A",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateWorkspaceRequest{
		WorkspaceName:   "Pod A",
		WorkspacePrice:  decimal.NewFromInt(20),
		WorkspaceTypeID: typeID,
		BuildingID:      buildingID,
	})
	require.NoError(t, err)

	assert.True(t, updated.PricePerDay.Equal(decimal.NewFromInt(128)))
	assert.True(t, updated.PricePerMonth.Equal(decimal.NewFromInt(352)))
}

func TestDeleteWorkspaces(t *testing.T) {
	store, svc, buildingID, typeID := workspaceFixture()

	a, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Pod A",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Pod B",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)

	count, err := svc.Delete(context.Background(), []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, model.StatusInactive, store.workspaces[a.ID].Status)
	assert.Equal(t, model.StatusInactive, store.workspaces[b.ID].Status)

	// Already inactive: nothing matches a second time.
	_, err = svc.Delete(context.Background(), []uuid.UUID{a.ID, b.ID})
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
}

func TestListWorkspacesPagination(t *testing.T) {
	_, svc, buildingID, typeID := workspaceFixture()

	for i := 0; i < 12; i++ {
		_, err := svc.Create(context.Background(), CreateWorkspaceRequest{
			WorkspaceName:   fmt.Sprintf("Pod %02d", i),
			WorkspacePrice:  decimal.NewFromInt(10),
			WorkspaceTypeID: typeID,
			BuildingID:      &buildingID,
		})
		require.NoError(t, err)
	}

	rows, total, err := svc.List(context.Background(), ListWorkspacesQuery{
		Page: paramsFor(2, 5),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), total)
	require.Len(t, rows, 5)
	assert.Equal(t, "Pod 05", rows[0].WorkspaceName)
	assert.Equal(t, "Pod 09", rows[4].WorkspaceName)
}

func TestAssignWorkspaceToMissingBuilding(t *testing.T) {
	_, svc, buildingID, typeID := workspaceFixture()

	created, err := svc.Create(context.Background(), CreateWorkspaceRequest{
		WorkspaceName:   "Pod A",
		WorkspacePrice:  decimal.NewFromInt(10),
		WorkspaceTypeID: typeID,
		BuildingID:      &buildingID,
	})
	require.NoError(t, err)

	_, err = svc.AssignToBuilding(context.Background(), created.ID, uuid.New())
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindReferenceMissing, be.Kind)
}
