package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type BootcampHandler struct {
	Svc *application.BootcampService
}

func NewBootcampHandler(svc *application.BootcampService) *BootcampHandler {
	return &BootcampHandler{Svc: svc}
}

type createBootcampRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,http_url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required,min=1,dive,career"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

type updateBootcampRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=50"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Website       *string  `json:"website" binding:"omitempty,http_url"`
	Phone         *string  `json:"phone" binding:"omitempty,max=20"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address" binding:"omitempty,min=1"`
	Careers       []string `json:"careers" binding:"omitempty,min=1,dive,career"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	d, found := descriptor(c, query.Bootcamps)
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

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req createBootcampRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), application.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	var req updateBootcampRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), application.BootcampPatch{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, struct{}{})
}

// WithinRadius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		fail(c, apperror.Validation("Invalid distance %q", c.Param("distance")))
		return
	}
	bootcamps, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, bootcamps, nil)
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo (multipart field "file")
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, apperror.Validation("Please upload a file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	location, err := h.Svc.UploadPhoto(c.Request.Context(), middleware.Principal(c), c.Param("id"), fh.Size, f)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, location)
}

// Search GET /api/v1/bootcamps/search?q=&size=
func (h *BootcampHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchText(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, hits, nil)
}
