package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/services"
	"github.com/Hamid-2027/seatMeCombine/internal/utils"
)

// RateLimitMiddleware throttles requests per client IP. Requests over the
// limit get a 429 with a Retry-After header.
func RateLimitMiddleware(limiter *services.RateLimitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := limiter.Allow(c.Request.Context(), utils.GetRealIP(c))
		if err != nil {
			var limitErr *services.RateLimitError
			if errors.As(err, &limitErr) {
				retryAfter := int(limitErr.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Header("Retry-After", strconv.Itoa(retryAfter))
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error": "Too many requests, please slow down",
					"code":  "RATE_LIMITED",
				})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
