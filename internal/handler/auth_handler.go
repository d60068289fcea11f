package handler

import (
	"net/http"

	"workhive/internal/middleware"
	"workhive/internal/model"
	"workhive/internal/service"
	"workhive/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   service.AuthService
	secret        []byte
	secureCookies bool
}

func NewAuthHandler(authService service.AuthService, secret []byte, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secret: secret, secureCookies: secureCookies}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff, model.RoleCustomer), h.Me)
	}
}

// Login verifies credentials and issues a signed token
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}

	middleware.SetTokenCookie(c, token.Token, 3600*24, h.secureCookies)
	c.JSON(http.StatusOK, response.OK("login successful", token))
}

// Register creates a customer account
// @Summary      Register customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.RegisterRequest  true  "Account payload"
// @Success      201  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	customer, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("account created", customer))
}

// Logout clears the auth cookie
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c, h.secureCookies)
	c.JSON(http.StatusOK, response.OK("logged out", nil))
}

// Me returns the authenticated caller's id and role
// @Summary      Current session
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Failure      401  {object}  response.Body
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, _ := c.Get(middleware.CtxUserID)
	role, _ := c.Get(middleware.CtxUserRole)
	c.JSON(http.StatusOK, response.OK("session", gin.H{"user_id": id, "role": role}))
}
