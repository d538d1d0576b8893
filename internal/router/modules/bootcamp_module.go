package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type BootcampModule struct {
	Handler *handlers.BootcampHandler
	Protect gin.HandlerFunc
}

func NewBootcampModule(h *handlers.BootcampHandler, protect gin.HandlerFunc) *BootcampModule {
	return &BootcampModule{Handler: h, Protect: protect}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	bootcamps := rg.Group("/bootcamps")
	bootcamps.GET("", middleware.AdvancedQuery(query.Bootcamps, "courses"), m.Handler.List)
	bootcamps.GET("/search", m.Handler.Search)
	bootcamps.GET("/radius/:zipcode/:distance", m.Handler.WithinRadius)
	bootcamps.GET("/:id", m.Handler.Get)

	publish := bootcamps.Group("")
	publish.Use(m.Protect, middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	{
		publish.POST("", m.Handler.Create)
		publish.PUT("/:id", m.Handler.Update)
		publish.DELETE("/:id", m.Handler.Delete)
		publish.PUT("/:id/photo", m.Handler.UploadPhoto)
	}
}
