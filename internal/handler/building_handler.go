package handler

import (
	"net/http"

	"workhive/internal/middleware"
	"workhive/internal/model"
	"workhive/internal/service"
	"workhive/pkg/pagination"
	"workhive/pkg/response"

	"github.com/gin-gonic/gin"
)

type BuildingHandler struct {
	buildingService service.BuildingService
	secret          []byte
	pageLimit       int
}

func NewBuildingHandler(buildingService service.BuildingService, secret []byte, pageLimit int) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService, secret: secret, pageLimit: pageLimit}
}

func (h *BuildingHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(h.secret, model.RoleAdmin)
	buildings := router.Group("/api/buildings")
	{
		buildings.GET("", h.ListBuildings)
		buildings.GET("/:id", h.GetBuilding)
		buildings.POST("", admin, h.CreateBuilding)
		buildings.PUT("/:id", admin, h.UpdateBuilding)
		buildings.DELETE("/:id", admin, h.DeleteBuilding)
	}
}

// ListBuildings returns paginated buildings with optional name/status filter
// @Summary      List buildings
// @Tags         buildings
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page"
// @Param        name    query  string  false  "Substring match on name"
// @Param        status  query  string  false  "Filter by status: active, inactive"
// @Param        order   query  string  false  "Sort, e.g. building_name_desc"
// @Success      200  {object}  response.Body
// @Router       /api/buildings [get]
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	page := pagination.Parse(c, h.pageLimit)

	rows, total, err := h.buildingService.List(c.Request.Context(), service.ListBuildingsQuery{
		Name:   c.Query("name"),
		Status: c.Query("status"),
		Order:  c.Query("order"),
		Page:   page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("building list", rows, total, page.Page, page.Limit))
}

// GetBuilding returns one building by id
// @Summary      Get building
// @Tags         buildings
// @Produce      json
// @Param        id  path  string  true  "Building ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/buildings/{id} [get]
func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	building, err := h.buildingService.GetByID(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("building", building))
}

// CreateBuilding creates a building
// @Summary      Create building
// @Tags         buildings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateBuildingRequest  true  "Building payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/buildings [post]
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	var req service.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	building, err := h.buildingService.Create(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("building created", building))
}

// UpdateBuilding applies a partial update
// @Summary      Update building
// @Tags         buildings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Building ID"
// @Param        payload  body  service.UpdateBuildingRequest  true  "Update payload"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/buildings/{id} [put]
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	building, err := h.buildingService.Update(c.Request.Context(), id, req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("building updated", building))
}

// DeleteBuilding soft-deletes the building
// @Summary      Delete building
// @Tags         buildings
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Building ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/buildings/{id} [delete]
func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.buildingService.Delete(c.Request.Context(), id); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("building deleted", nil))
}
