package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Protect gin.HandlerFunc
}

func NewReviewModule(h *handlers.ReviewHandler, protect gin.HandlerFunc) *ReviewModule {
	return &ReviewModule{Handler: h, Protect: protect}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	list := middleware.AdvancedQuery(query.Reviews, "bootcamp")
	reviewer := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RoleUser, entity.RoleAdmin)}

	rg.GET("/bootcamps/:id/reviews", list, m.Handler.List)
	rg.POST("/bootcamps/:id/reviews", append(reviewer, m.Handler.Create)...)

	reviews := rg.Group("/reviews")
	reviews.GET("", list, m.Handler.List)
	reviews.GET("/:id", m.Handler.Get)
	reviews.PUT("/:id", append(reviewer, m.Handler.Update)...)
	reviews.DELETE("/:id", append(reviewer, m.Handler.Delete)...)
}
