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

type BookingHandler struct {
	bookingService service.BookingService
	secret         []byte
	pageLimit      int
}

func NewBookingHandler(bookingService service.BookingService, secret []byte, pageLimit int) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, secret: secret, pageLimit: pageLimit}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff)
	customer := middleware.RequireRole(h.secret, model.RoleCustomer)
	anyRole := middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff, model.RoleCustomer)

	bookings := router.Group("/api/bookings")
	{
		bookings.POST("", customer, h.CreateBooking)
		bookings.GET("", staff, h.ListBookings)
		bookings.GET("/my", customer, h.ListMyBookings)
		bookings.GET("/:id", anyRole, h.GetBooking)
		bookings.PUT("/:id/check-in", staff, h.CheckIn)
		bookings.PUT("/:id/check-out", staff, h.CheckOut)
		bookings.PUT("/:id/cancel", anyRole, h.CancelBooking)
	}
}

// CreateBooking books a workspace for the authenticated customer
// @Summary      Create booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateBookingRequest  true  "Booking payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Failure      422  {object}  response.Body
// @Router       /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		badRequest(c, "invalid session")
		return
	}

	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userID, req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("booking created", booking))
}

// ListBookings returns paginated bookings with optional filters
// @Summary      List bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        page          query  int     false  "Page number (default: 1)"
// @Param        limit         query  int     false  "Items per page"
// @Param        customer_id   query  string  false  "Filter by customer"
// @Param        workspace_id  query  string  false  "Filter by workspace"
// @Param        status        query  string  false  "Filter by booking status"
// @Param        order         query  string  false  "Sort, e.g. start_time_desc"
// @Success      200  {object}  response.Body
// @Router       /api/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	page := pagination.Parse(c, h.pageLimit)

	customerID, ok := queryUUID(c, "customer_id")
	if !ok {
		return
	}
	workspaceID, ok := queryUUID(c, "workspace_id")
	if !ok {
		return
	}

	rows, total, err := h.bookingService.List(c.Request.Context(), service.ListBookingsQuery{
		CustomerID:  customerID,
		WorkspaceID: workspaceID,
		Status:      c.Query("status"),
		Order:       c.Query("order"),
		Page:        page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("booking list", rows, total, page.Page, page.Limit))
}

// ListMyBookings returns the authenticated customer's bookings
// @Summary      List own bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page"
// @Param        status  query  string  false  "Filter by booking status"
// @Param        order   query  string  false  "Sort, e.g. start_time_desc"
// @Success      200  {object}  response.Body
// @Router       /api/bookings/my [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		badRequest(c, "invalid session")
		return
	}

	page := pagination.Parse(c, h.pageLimit)

	rows, total, err := h.bookingService.ListForUser(c.Request.Context(), userID, service.ListBookingsQuery{
		Status: c.Query("status"),
		Order:  c.Query("order"),
		Page:   page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("booking list", rows, total, page.Page, page.Limit))
}

// GetBooking returns one booking with its amenity lines
// @Summary      Get booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Booking ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.GetByID(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("booking", booking))
}

// CheckIn marks a confirmed booking as checked in
// @Summary      Check in
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Booking ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/bookings/{id}/check-in [put]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.CheckIn(c.Request.Context(), id); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("booking checked in", nil))
}

// CheckOut marks a checked-in booking as checked out
// @Summary      Check out
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Booking ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/bookings/{id}/check-out [put]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.CheckOut(c.Request.Context(), id); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("booking checked out", nil))
}

// CancelBooking cancels a confirmed booking
// @Summary      Cancel booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Booking ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/bookings/{id}/cancel [put]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.Cancel(c.Request.Context(), id); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("booking cancelled", nil))
}
