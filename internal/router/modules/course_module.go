package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Protect gin.HandlerFunc
}

func NewCourseModule(h *handlers.CourseHandler, protect gin.HandlerFunc) *CourseModule {
	return &CourseModule{Handler: h, Protect: protect}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	list := middleware.AdvancedQuery(query.Courses, "bootcamp")
	publisher := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)}

	// nested under a bootcamp; the param name must match /bootcamps/:id
	rg.GET("/bootcamps/:id/courses", list, m.Handler.List)
	rg.POST("/bootcamps/:id/courses", append(publisher, m.Handler.Create)...)

	courses := rg.Group("/courses")
	courses.GET("", list, m.Handler.List)
	courses.GET("/:id", m.Handler.Get)
	courses.PUT("/:id", append(publisher, m.Handler.Update)...)
	courses.DELETE("/:id", append(publisher, m.Handler.Delete)...)
}
