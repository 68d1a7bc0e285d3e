package network

import (
	"context"
	"sync"

	"github.com/anisan-cli/anifetch/key"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// DomainLimiter rate limits requests per domain with a token bucket each.
// Requests to different domains do not wait for each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter allows rps requests per second to each domain, without bursts.
// A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

var (
	limiter     *DomainLimiter
	limiterOnce sync.Once
)

// Limiter returns the process-wide limiter configured by network.rate_limit.
func Limiter() *DomainLimiter {
	limiterOnce.Do(func() {
		limiter = NewDomainLimiter(viper.GetFloat64(key.NetworkRateLimit))
	})
	return limiter
}
