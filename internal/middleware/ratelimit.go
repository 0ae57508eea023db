package middleware

import (
	"crypto/subtle"
	"net"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/appointease/internal/httperr"
)

// RateLimiter limita requisições por IP com token bucket.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	ttl      time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
		visitors: map[string]*visitor{},
		ttl:      10 * time.Minute,
	}
}

func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, k)
		}
	}

	v := rl.visitors[key]
	if v == nil {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return rl.MiddlewareUnless(nil)
}

// MiddlewareUnless não consome o balde quando skip devolve true.
func (rl *RateLimiter) MiddlewareUnless(skip func(*gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skip != nil && skip(c) {
			c.Next()
			return
		}
		if !rl.allow(c.ClientIP(), time.Now()) {
			httperr.TooManyRequests(c, "rate_limited", "too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

// InternalCaller reconhece a chamada que o próprio serviço faz ao endpoint de
// confirmação: header com a chave configurada, ou origem loopback.
// O IP vem de c.ClientIP, então depende dos proxies confiáveis do engine.
func InternalCaller(apiKey, header string) func(*gin.Context) bool {
	return func(c *gin.Context) bool {
		if apiKey != "" && subtle.ConstantTimeCompare([]byte(c.GetHeader(header)), []byte(apiKey)) == 1 {
			return true
		}
		ip := net.ParseIP(c.ClientIP())
		return ip != nil && ip.IsLoopback()
	}
}
