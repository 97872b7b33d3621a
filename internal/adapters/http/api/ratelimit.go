package api

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/talentmatch/pkg/metrics"
)

// rateLimiter is a process-wide token bucket shared by all /api routes.
// A nil limiter lets every request through.
type rateLimiter struct {
	limiter *rate.Limiter
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if rps <= 0 {
		return &rateLimiter{}
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// wrap rejects requests with 429 once the bucket is empty.
func (l *rateLimiter) wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	if l.limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			metrics.RecordRateLimited(endpoint)
			w.Header().Set("Retry-After", "1")
			writeError(w, "Too many requests", ErrRateLimited)
			return
		}
		next(w, r)
	}
}
