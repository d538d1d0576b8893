package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type ReviewHandler struct {
	Svc *application.ReviewService
}

func NewReviewHandler(svc *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

type createReviewRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required,max=1000"`
	Rating int    `json:"rating" binding:"required,rating"`
}

type updateReviewRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=100"`
	Text   *string `json:"text" binding:"omitempty,min=1,max=1000"`
	Rating *int    `json:"rating" binding:"omitempty,rating"`
}

// List GET /api/v1/reviews and GET /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	d, found := descriptor(c, query.Reviews)
	if !found {
		return
	}
	if id := c.Param("id"); id != "" {
		if err := d.Restrict(query.Reviews, "bootcampId", id); err != nil {
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

// Get GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

// Create POST /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), c.Param("id"), application.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

// Update PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var req updateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), application.ReviewPatch{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

// Delete DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, struct{}{})
}
