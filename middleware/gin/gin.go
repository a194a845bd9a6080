// Package middleware adapts the limiters to gin handlers. It is boundary
// glue only: identity extraction, header writing, and the shape of the deny
// response all live here, never in pkg/limiter.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jintaekimmm/simple-rate-limiter/pkg/limiter"
)

// KeyFunc extracts the identity to limit on from the request.
type KeyFunc func(*gin.Context) string

// ClientIP derives the identity from gin's client IP resolution, which
// already accounts for trusted proxy headers.
func ClientIP() KeyFunc {
	return func(c *gin.Context) string { return c.ClientIP() }
}

// RateLimit guards every request through rl before the handler runs. The
// action is the matched route pattern, falling back to the raw URL path for
// unmatched routes.
func RateLimit(rl *limiter.RateLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		dec, err := rl.Guard(c.Request.Context(), keyFunc(c), action(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limiter error"})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(dec.Remaining, 10))

		if !dec.Allowed {
			if dec.RetryAfter > 0 {
				c.Header("Retry-After", strconv.FormatInt(int64(dec.RetryAfter.Seconds())+1, 10))
			}
			c.AbortWithStatusJSON(dec.Status, gin.H{"message": dec.Message})
			return
		}

		c.Next()
	}
}

// FailureGuard rejects requests from identities that are locked out. The
// handler itself still reports the outcome via fl.Fail and fl.Reset, because
// only it knows whether the guarded action succeeded.
func FailureGuard(fl *limiter.FailureLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		dec, err := fl.Guard(c.Request.Context(), keyFunc(c), action(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limiter error"})
			return
		}

		if !dec.Allowed {
			c.AbortWithStatusJSON(dec.Status, gin.H{"message": dec.Message})
			return
		}

		c.Next()
	}
}

func action(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
