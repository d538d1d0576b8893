package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/container"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Protect gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, protect gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Protect: protect}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	// Credential and token endpoints are limited per IP and route.
	limit := middleware.RateLimit(container.GetRedis(), cfg.AuthRateLimit, cfg.AuthRateWindow, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", limit, m.Handler.Register)
	auth.POST("/login", limit, m.Handler.Login)
	auth.GET("/logout", m.Handler.Logout)
	auth.GET("/confirmemail/:token", limit, m.Handler.ConfirmEmail)
	auth.PUT("/resendemailconfirm", limit, m.Handler.ResendConfirmation)
	auth.POST("/forgotpassword", limit, m.Handler.ForgotPassword)
	auth.PUT("/resetpassword/:token", limit, m.Handler.ResetPassword)

	me := auth.Group("/")
	me.Use(m.Protect)
	{
		me.GET("/me", m.Handler.Me)
		me.PUT("/updatedetails", m.Handler.UpdateDetails)
		me.PUT("/updatepassword", limit, m.Handler.UpdatePassword)
	}
}
