package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,signuprole"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateDetailsRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

// sendToken mirrors the session into the cookie and returns it in the body.
func (h *AuthHandler) sendToken(c *gin.Context, s application.Session) {
	h.Cookies.SetToken(c, s.Token, s.Expires)
	response.Token(c, http.StatusOK, s.Token)
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, s)
}

// ConfirmEmail GET /api/v1/auth/confirmemail/:token
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	s, err := h.Svc.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, s)
}

// ResendConfirmation PUT /api/v1/auth/resendemailconfirm?email=
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	s, err := h.Svc.ResendConfirmation(c.Request.Context(), c.Query("email"))
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, s)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Validation("Please provide an email and password"))
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, s)
}

// Logout GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	ok(c, struct{}{})
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), middleware.Principal(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

// UpdateDetails PUT /api/v1/auth/updatedetails
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateDetails(c.Request.Context(), middleware.Principal(c).ID, req.Name, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

// UpdatePassword PUT /api/v1/auth/updatepassword
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.UpdatePassword(c.Request.Context(), middleware.Principal(c).ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, s)
}

// ForgotPassword POST /api/v1/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Email sent")
}

// ResetPassword PUT /api/v1/auth/resetpassword/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, s)
}
