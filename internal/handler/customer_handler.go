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

type CustomerHandler struct {
	customerService service.CustomerService
	secret          []byte
	pageLimit       int
}

func NewCustomerHandler(customerService service.CustomerService, secret []byte, pageLimit int) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, secret: secret, pageLimit: pageLimit}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff)
	customers := router.Group("/api/customers")
	{
		customers.GET("", staff, h.ListCustomers)
		customers.GET("/:id", staff, h.GetCustomer)
		customers.DELETE("/:id", middleware.RequireRole(h.secret, model.RoleAdmin), h.RemoveCustomer)
	}
}

// ListCustomers returns paginated customers with optional name/status filter
// @Summary      List customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page"
// @Param        name    query  string  false  "Substring match on name"
// @Param        status  query  string  false  "Filter by status: active, inactive"
// @Param        order   query  string  false  "Sort, e.g. name_desc"
// @Success      200  {object}  response.Body
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page := pagination.Parse(c, h.pageLimit)

	rows, total, err := h.customerService.List(c.Request.Context(), service.ListCustomersQuery{
		Name:   c.Query("name"),
		Status: c.Query("status"),
		Order:  c.Query("order"),
		Page:   page,
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKList("customer list", rows, total, page.Page, page.Limit))
}

// GetCustomer returns one customer by user id
// @Summary      Get customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("customer", customer))
}

// RemoveCustomer deactivates the customer account
// @Summary      Remove customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) RemoveCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.customerService.Remove(c.Request.Context(), id); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("customer removed", nil))
}
