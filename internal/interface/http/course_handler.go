package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

type createCourseRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	Weeks                int     `json:"weeks" binding:"required,min=1"`
	Tuition              float64 `json:"tuition" binding:"required,gte=0"`
	MinimumSkill         string  `json:"minimumSkill" binding:"required,skill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type updateCourseRequest struct {
	Title                *string  `json:"title" binding:"omitempty,min=1"`
	Description          *string  `json:"description" binding:"omitempty,min=1"`
	Weeks                *int     `json:"weeks" binding:"omitempty,min=1"`
	Tuition              *float64 `json:"tuition" binding:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimumSkill" binding:"omitempty,skill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
	BootcampID           *string  `json:"bootcampId" binding:"omitempty,uuid"`
}

// List GET /api/v1/courses and GET /api/v1/bootcamps/:id/courses
func (h *CourseHandler) List(c *gin.Context) {
	d, found := descriptor(c, query.Courses)
	if !found {
		return
	}
	if id := c.Param("id"); id != "" {
		if err := d.Restrict(query.Courses, "bootcampId", id); err != nil {
			fail(c, err)
			return
		}
	}
	page, err := h.Svc.List(c.Request.Context(), d)
	if err != nil {
		fail(c, err)
		return
	}
	listing(c, d, page)
}

// Get GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, course)
}

// Create POST /api/v1/bootcamps/:id/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req createCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), c.Param("id"), application.CourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         entity.Skill(req.MinimumSkill),
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

// Update PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req updateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := application.CoursePatch{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		ScholarshipAvailable: req.ScholarshipAvailable,
		BootcampID:           req.BootcampID,
	}
	if req.MinimumSkill != nil {
		skill := entity.Skill(*req.MinimumSkill)
		patch.MinimumSkill = &skill
	}
	course, err := h.Svc.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, course)
}

// Delete DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, struct{}{})
}
