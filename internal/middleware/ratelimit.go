package middleware

import (
	"fmt"
	"net/http"
	"time"

	pkgredis "github.com/blogicum/core/internal/pkg/redis"
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const rateLimitWindow = time.Second

// RateLimit caps anonymous write requests to limit per IP per second. A nil
// client or a non-positive limit disables it; redis errors let requests pass.
func RateLimit(rdb *pkgredis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 || IsAuthenticated(c) {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("blogicum:rate_limit:%s:%d", ip, time.Now().Unix())
		count, err := rdb.Hit(c.Request.Context(), key, rateLimitWindow+time.Second)
		if err != nil {
			c.Next()
			return
		}
		if count > int64(limit) {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
