package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

// UserHandler serves the admin-only user management routes.
type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

type createUserRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,pwd"`
	Role             string `json:"role" binding:"omitempty,role"`
	IsEmailConfirmed bool   `json:"isEmailConfirmed"`
}

type updateUserRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Password         *string `json:"password" binding:"omitempty,pwd"`
	Role             *string `json:"role" binding:"omitempty,role"`
	IsEmailConfirmed *bool   `json:"isEmailConfirmed"`
}

// List GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	d, found := descriptor(c, query.Users)
	if !found {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), d)
	if err != nil {
		fail(c, err)
		return
	}
	listing(c, d, page)
}

// Get GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.UserInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Role:             entity.Role(req.Role),
		IsEmailConfirmed: req.IsEmailConfirmed,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// Update PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := application.UserPatch{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		IsEmailConfirmed: req.IsEmailConfirmed,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		patch.Role = &role
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

// Delete DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, struct{}{})
}
