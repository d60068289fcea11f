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

type AmenityHandler struct {
	amenityService service.AmenityService
	secret         []byte
	pageLimit      int
}

func NewAmenityHandler(amenityService service.AmenityService, secret []byte, pageLimit int) *AmenityHandler {
	return &AmenityHandler{amenityService: amenityService, secret: secret, pageLimit: pageLimit}
}

func (h *AmenityHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(h.secret, model.RoleAdmin)
	amenities := router.Group("/api/amenities")
	{
		amenities.GET("", h.ListAmenities)
		amenities.GET("/:id", h.GetAmenity)
		amenities.POST("", admin, h.CreateAmenity)
		amenities.PUT("/:id", admin, h.UpdateAmenity)
		amenities.DELETE("", admin, h.DeleteAmenities)
	}
}

// ListAmenities returns paginated amenities with optional filters
// @Summary      List amenities
// @Tags         amenities
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page"
// @Param        name    query  string  false  "Substring match on name"
// @Param        type    query  string  false  "Filter by type: device, furniture, service"
// @Param        status  query  string  false  "Filter by status: active, inactive"
// @Param        order   query  string  false  "Sort, e.g. original_price_desc"
// @Success      200  {object}  response.Body
// @Router       /api/amenities [get]
func (h *AmenityHandler) ListAmenities(c *gin.Context) {
	page := pagination.Parse(c, h.pageLimit)

	rows, total, err := h.amenityService.List(c.Request.Context(), service.ListAmenitiesQuery{
		Name:   c.Query("name"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Order:  c.Query("order"),
		Page:   page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("amenity list", rows, total, page.Page, page.Limit))
}

// GetAmenity returns one amenity by id
// @Summary      Get amenity
// @Tags         amenities
// @Produce      json
// @Param        id  path  string  true  "Amenity ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/amenities/{id} [get]
func (h *AmenityHandler) GetAmenity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	amenity, err := h.amenityService.GetByID(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("amenity", amenity))
}

// CreateAmenity creates an amenity; the depreciation price is derived
// @Summary      Create amenity
// @Tags         amenities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateAmenityRequest  true  "Amenity payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/amenities [post]
func (h *AmenityHandler) CreateAmenity(c *gin.Context) {
	var req service.CreateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	amenity, err := h.amenityService.Create(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("amenity created", amenity))
}

// UpdateAmenity applies a partial update
// @Summary      Update amenity
// @Tags         amenities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Amenity ID"
// @Param        payload  body  service.UpdateAmenityRequest  true  "Update payload"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/amenities/{id} [put]
func (h *AmenityHandler) UpdateAmenity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	amenity, err := h.amenityService.Update(c.Request.Context(), id, req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("amenity updated", amenity))
}

type deleteAmenitiesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// DeleteAmenities bulk deletes amenities by id
// @Summary      Delete amenities
// @Tags         amenities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  deleteAmenitiesRequest  true  "Amenity ids"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/amenities [delete]
func (h *AmenityHandler) DeleteAmenities(c *gin.Context) {
	var req deleteAmenitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	count, err := h.amenityService.Delete(c.Request.Context(), req.IDs)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("amenities deleted", gin.H{"deleted": count}))
}
