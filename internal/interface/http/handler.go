package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/response"
	"github.com/oksasatya/devcamper-api/pkg/validation"
)

// bindJSON decodes the body into dst. On failure the error is attached to
// the context and false is returned.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.Validation("%s", validation.Message(err)))
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// listing renders a page, honouring ?select= from the descriptor.
func listing[T any](c *gin.Context, d *query.Descriptor, page application.Page[T]) {
	items, err := query.Project(page.Items, d.Select)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, items, page.Pagination)
}

// descriptor returns the translated listing query, or the defaults for a
// bare request when no AdvancedQuery middleware ran.
func descriptor(c *gin.Context, schema *query.Schema) (*query.Descriptor, bool) {
	if d := middleware.Descriptor(c); d != nil {
		return d, true
	}
	d, err := query.Translate(schema, c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return d, true
}

func ok[T any](c *gin.Context, data T) { response.Success(c, http.StatusOK, data) }
