package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workhive/internal/service"
	"workhive/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBuildingService struct {
	rows    []service.BuildingResponse
	total   int64
	lastQ   service.ListBuildingsQuery
	byIDErr error
}

func (s *stubBuildingService) Create(_ context.Context, _ service.CreateBuildingRequest) (*service.BuildingResponse, error) {
	return nil, nil
}

func (s *stubBuildingService) Update(_ context.Context, _ uuid.UUID, _ service.UpdateBuildingRequest) (*service.BuildingResponse, error) {
	return nil, nil
}

func (s *stubBuildingService) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubBuildingService) List(_ context.Context, q service.ListBuildingsQuery) ([]service.BuildingResponse, int64, error) {
	s.lastQ = q
	return s.rows, s.total, nil
}

func (s *stubBuildingService) GetByID(_ context.Context, _ uuid.UUID) (*service.BuildingResponse, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	return &service.BuildingResponse{BuildingName: "Tower A"}, nil
}

func newBuildingRouter(svc service.BuildingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBuildingHandler(svc, []byte("test-secret"), 10)
	h.RegisterRoutes(router.Group(""))
	return router
}

func TestListBuildingsEnvelope(t *testing.T) {
	stub := &stubBuildingService{
		rows: []service.BuildingResponse{
			{ID: uuid.New(), BuildingName: "Tower A", Status: "active"},
			{ID: uuid.New(), BuildingName: "Tower B", Status: "active"},
		},
		total: 12,
	}
	router := newBuildingRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/buildings?page=2&limit=5&name=tower", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Err)

	data := body.Data.(map[string]interface{})
	assert.Equal(t, float64(12), data["count"])
	assert.Equal(t, float64(2), data["page"])
	assert.Equal(t, float64(5), data["limit"])
	assert.Len(t, data["rows"], 2)

	// Query params reach the service with the parsed pagination.
	assert.Equal(t, "tower", stub.lastQ.Name)
	assert.Equal(t, 5, stub.lastQ.Page.Offset)
}

func TestGetBuildingNotFoundMapsTo404(t *testing.T) {
	stub := &stubBuildingService{byIDErr: service.NotFound("building does not exist")}
	router := newBuildingRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/buildings/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Err)
	assert.Equal(t, "building does not exist", body.Message)
}

func TestGetBuildingBadID(t *testing.T) {
	router := newBuildingRouter(&stubBuildingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/buildings/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Err)
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	router := newBuildingRouter(&stubBuildingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/buildings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
