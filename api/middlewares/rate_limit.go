package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	// General API visitors
	visitors   = make(map[string]*visitor)
	visitorsMu sync.Mutex

	// Stricter visitors for winner selections
	selectionVisitors   = make(map[string]*visitor)
	selectionVisitorsMu sync.Mutex
)

// newVisitorLimiter: 1 request/second average, burst of 20.
func newVisitorLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 20)
}

// newSelectionVisitorLimiter: one pick per second on average, burst of 5.
// A human picking after the reveal animation stays well below this.
func newSelectionVisitorLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 5)
}

func lookupVisitor(mu *sync.Mutex, pool map[string]*visitor, ip string, newLimiter func() *rate.Limiter) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := pool[ip]
	if !exists {
		limiter := newLimiter()
		pool[ip] = &visitor{
			limiter:  limiter,
			lastSeen: time.Now(),
		}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// CleanupVisitors forgets IPs not seen for maxIdle and returns how many
// were dropped.
func CleanupVisitors(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	dropped := 0

	visitorsMu.Lock()
	for ip, v := range visitors {
		if v.lastSeen.Before(cutoff) {
			delete(visitors, ip)
			dropped++
		}
	}
	visitorsMu.Unlock()

	selectionVisitorsMu.Lock()
	for ip, v := range selectionVisitors {
		if v.lastSeen.Before(cutoff) {
			delete(selectionVisitors, ip)
			dropped++
		}
	}
	selectionVisitorsMu.Unlock()

	return dropped
}

// RateLimitMiddleware applies a simple per-IP rate limit for all routes.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := lookupVisitor(&visitorsMu, visitors, c.ClientIP(), newVisitorLimiter)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down.",
			})
			return
		}

		c.Next()
	}
}

// SelectionRateLimitMiddleware applies a stricter per-IP limit to winner
// selections.
func SelectionRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := lookupVisitor(&selectionVisitorsMu, selectionVisitors, c.ClientIP(), newSelectionVisitorLimiter)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many selections. Please wait for the next pair.",
			})
			return
		}

		c.Next()
	}
}
