package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/denischpt/portfolio/internal/api/dto/common"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultClientIdleTTL is how long an idle client's bucket is kept
const DefaultClientIdleTTL = 10 * time.Minute

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second, zero disables limiting
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// How long an idle client's bucket is kept
	IdleTTL time.Duration
}

type clientState struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client address
type clientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientState
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func (l *clientLimiters) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Remove stale client states
	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, state := range l.clients {
			if now.Sub(state.lastSeen) > l.idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	state, exists := l.clients[key]
	if !exists {
		state = &clientState{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = state
	}
	state.lastSeen = now
	return state.limiter
}

// RateLimitMiddleware limits POST requests with one token bucket per
// client address. Other methods pass through so preflights never consume
// tokens.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.RPS <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	burst := config.Burst
	if burst < 1 {
		burst = 1
	}
	idleTTL := config.IdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultClientIdleTTL
	}
	limiters := &clientLimiters{
		clients:   make(map[string]*clientState),
		limit:     rate.Limit(config.RPS),
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		limiter := limiters.get(utils.GetRealIP(c), time.Now())
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse(i18n.Text(LanguageFrom(c), i18n.KeyRateLimited)))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Header("X-RateLimit-Reset", time.Now().Add(time.Duration(float64(time.Second)/config.RPS)).UTC().Format(time.RFC1123))

		c.Next()
	}
}
