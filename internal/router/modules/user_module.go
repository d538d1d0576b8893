package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

// UserModule exposes admin-only user management under /users.
type UserModule struct {
	Handler *handlers.UserHandler
	Protect gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, protect gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Protect: protect}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Protect, middleware.Authorize(entity.RoleAdmin))
	{
		users.GET("", middleware.AdvancedQuery(query.Users), m.Handler.List)
		users.POST("", m.Handler.Create)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
