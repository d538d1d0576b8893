package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/query"
)

const CtxQueryKey = "query"

// AdvancedQuery translates the request's query string against schema and
// stores the resulting descriptor for the handler. Unknown fields, bad
// operators and bad values end the request with a 400.
func AdvancedQuery(schema *query.Schema, populate ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := query.Translate(schema, c.Request.URL.Query(), populate...)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(CtxQueryKey, d)
		c.Next()
	}
}

// Descriptor returns the descriptor stored by AdvancedQuery.
func Descriptor(c *gin.Context) *query.Descriptor {
	if v, ok := c.Get(CtxQueryKey); ok {
		if d, ok := v.(*query.Descriptor); ok {
			return d
		}
	}
	return nil
}
