package handler

import (
	"net/http"

	"workhive/internal/middleware"
	"workhive/internal/model"
	"workhive/internal/service"
	"workhive/pkg/pagination"
	"workhive/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
	typeService      service.WorkspaceTypeService
	secret           []byte
	pageLimit        int
}

func NewWorkspaceHandler(
	workspaceService service.WorkspaceService,
	typeService service.WorkspaceTypeService,
	secret []byte,
	pageLimit int,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		typeService:      typeService,
		secret:           secret,
		pageLimit:        pageLimit,
	}
}

func (h *WorkspaceHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(h.secret, model.RoleAdmin)

	workspaces := router.Group("/api/workspaces")
	{
		workspaces.GET("", h.ListWorkspaces)
		workspaces.GET("/:id", h.GetWorkspace)
		workspaces.POST("", admin, h.CreateWorkspace)
		workspaces.PUT("/:id", admin, h.UpdateWorkspace)
		workspaces.PUT("/:id/building", admin, h.AssignBuilding)
		workspaces.DELETE("", admin, h.DeleteWorkspaces)
	}

	types := router.Group("/api/workspace-types")
	{
		types.GET("", h.ListWorkspaceTypes)
		types.POST("", admin, h.CreateWorkspaceType)
	}
}

// ListWorkspaces returns paginated workspaces with optional filters
// @Summary      List workspaces
// @Tags         workspaces
// @Produce      json
// @Param        page               query  int     false  "Page number (default: 1)"
// @Param        limit              query  int     false  "Items per page"
// @Param        name               query  string  false  "Substring match on name"
// @Param        building_id        query  string  false  "Filter by building"
// @Param        workspace_type_id  query  string  false  "Filter by type"
// @Param        status             query  string  false  "Filter by status: active, inactive"
// @Param        order              query  string  false  "Sort, e.g. price_per_hour_desc"
// @Success      200  {object}  response.Body
// @Router       /api/workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	page := pagination.Parse(c, h.pageLimit)

	buildingID, ok := queryUUID(c, "building_id")
	if !ok {
		return
	}
	typeID, ok := queryUUID(c, "workspace_type_id")
	if !ok {
		return
	}

	rows, total, err := h.workspaceService.List(c.Request.Context(), service.ListWorkspacesQuery{
		Name:            c.Query("name"),
		BuildingID:      buildingID,
		WorkspaceTypeID: typeID,
		Status:          c.Query("status"),
		Order:           c.Query("order"),
		Page:            page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("workspace list", rows, total, page.Page, page.Limit))
}

// GetWorkspace returns one workspace with its building and images
// @Summary      Get workspace
// @Tags         workspaces
// @Produce      json
// @Param        id  path  string  true  "Workspace ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/workspaces/{id} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ws, err := h.workspaceService.GetByID(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("workspace", ws))
}

// CreateWorkspace creates a workspace with its images atomically
// @Summary      Create workspace
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateWorkspaceRequest  true  "Workspace payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	var req service.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("workspace created", ws))
}

// UpdateWorkspace replaces the editable field set
// @Summary      Update workspace
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                          true  "Workspace ID"
// @Param        payload  body  service.UpdateWorkspaceRequest  true  "Update payload"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Failure      422  {object}  response.Body
// @Router       /api/workspaces/{id} [put]
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), id, req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("workspace updated", ws))
}

// AssignBuilding moves the workspace to another building
// @Summary      Assign workspace to building
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "Workspace ID"
// @Param        payload  body  assignBuildingRequest  true  "Target building"
// @Success      200  {object}  response.Body
// @Failure      422  {object}  response.Body
// @Router       /api/workspaces/{id}/building [put]
func (h *WorkspaceHandler) AssignBuilding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req assignBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	buildingID, err := uuidFromString(req.BuildingID)
	if err != nil {
		badRequest(c, "building_id must be a valid uuid")
		return
	}

	ws, err := h.workspaceService.AssignToBuilding(c.Request.Context(), id, buildingID)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("workspace assigned", ws))
}

type deleteWorkspacesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// DeleteWorkspaces bulk soft-deletes workspaces by id
// @Summary      Delete workspaces
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  deleteWorkspacesRequest  true  "Workspace ids"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/workspaces [delete]
func (h *WorkspaceHandler) DeleteWorkspaces(c *gin.Context) {
	var req deleteWorkspacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	count, err := h.workspaceService.Delete(c.Request.Context(), req.IDs)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("workspaces deleted", gin.H{"deleted": count}))
}

// ListWorkspaceTypes returns the full workspace type catalog
// @Summary      List workspace types
// @Tags         workspaces
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/workspace-types [get]
func (h *WorkspaceHandler) ListWorkspaceTypes(c *gin.Context) {
	types, err := h.typeService.List(c.Request.Context())
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("workspace types", types))
}

// CreateWorkspaceType adds a type to the catalog
// @Summary      Create workspace type
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateWorkspaceTypeRequest  true  "Type payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/workspace-types [post]
func (h *WorkspaceHandler) CreateWorkspaceType(c *gin.Context) {
	var req service.CreateWorkspaceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	wt, err := h.typeService.Create(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("workspace type created", wt))
}
