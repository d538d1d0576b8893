package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the client address resolved by RealIP.
const CtxRealIPKey = "real_ip"

// RealIP resolves the client address once per request for rate-limit keys
// and logs. CF-Connecting-IP wins, then the left-most X-Forwarded-For hop,
// then gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := parseIP(c.GetHeader("CF-Connecting-IP"))
		if ip == "" {
			if first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ","); first != "" {
				ip = parseIP(first)
			}
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

// parseIP returns the canonical form of s, or "" when s is not an address.
func parseIP(s string) string {
	if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
		return ip.String()
	}
	return ""
}
