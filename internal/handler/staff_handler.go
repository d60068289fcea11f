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

type StaffHandler struct {
	staffService service.StaffService
	secret       []byte
	pageLimit    int
}

func NewStaffHandler(staffService service.StaffService, secret []byte, pageLimit int) *StaffHandler {
	return &StaffHandler{staffService: staffService, secret: secret, pageLimit: pageLimit}
}

func (h *StaffHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(h.secret, model.RoleAdmin)
	staffs := router.Group("/api/staffs")
	{
		staffs.GET("", admin, h.ListStaff)
		staffs.GET("/:id", admin, h.GetStaff)
		staffs.POST("", admin, h.CreateStaff)
		staffs.PUT("/:id", admin, h.UpdateStaff)
		staffs.PUT("/:id/building", admin, h.AssignBuilding)
		staffs.DELETE("/:id", admin, h.DeleteStaff)
	}
}

// ListStaff returns paginated staff with optional name/status filter
// @Summary      List staff
// @Tags         staffs
// @Security     BearerAuth
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page"
// @Param        name    query  string  false  "Substring match on name"
// @Param        status  query  string  false  "Filter by status: active, inactive"
// @Param        order   query  string  false  "Sort, e.g. email_desc"
// @Success      200  {object}  response.Body
// @Router       /api/staffs [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	page := pagination.Parse(c, h.pageLimit)

	rows, total, err := h.staffService.List(c.Request.Context(), service.ListStaffQuery{
		Name:   c.Query("name"),
		Status: c.Query("status"),
		Order:  c.Query("order"),
		Page:   page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("staff list", rows, total, page.Page, page.Limit))
}

// GetStaff returns one staff member by user id
// @Summary      Get staff
// @Tags         staffs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/staffs/{id} [get]
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	staff, err := h.staffService.GetByID(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("staff", staff))
}

// CreateStaff creates a staff account
// @Summary      Create staff
// @Tags         staffs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateStaffRequest  true  "Staff payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/staffs [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("staff created", staff))
}

// UpdateStaff applies a partial profile update
// @Summary      Update staff profile
// @Tags         staffs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                              true  "User ID"
// @Param        payload  body  service.UpdateStaffProfileRequest  true  "Profile fields"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/staffs/{id} [put]
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStaffProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	staff, err := h.staffService.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("staff updated", staff))
}

type assignBuildingRequest struct {
	BuildingID string `json:"building_id" binding:"required,uuid"`
}

// AssignBuilding moves the staff member to another building
// @Summary      Assign staff to building
// @Tags         staffs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "User ID"
// @Param        payload  body  assignBuildingRequest  true  "Target building"
// @Success      200  {object}  response.Body
// @Failure      422  {object}  response.Body
// @Router       /api/staffs/{id}/building [put]
func (h *StaffHandler) AssignBuilding(c *gin.Context) {
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

	staff, err := h.staffService.AssignToBuilding(c.Request.Context(), id, buildingID)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("staff assigned", staff))
}

// DeleteStaff removes the staff profile and its account
// @Summary      Delete staff
// @Tags         staffs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/staffs/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	count, err := h.staffService.Delete(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("staff deleted", gin.H{"deleted": count}))
}
