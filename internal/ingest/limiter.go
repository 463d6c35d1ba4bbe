package ingest

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces out page downloads so a single draft site sees at most
// perSec requests per second. Hosts are compared without port or case.
type HostLimiter struct {
	perSec rate.Limit
	burst  int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewHostLimiter returns a limiter allowing perSec requests per host. A
// non-positive rate disables limiting.
func NewHostLimiter(perSec float64, burst int) *HostLimiter {
	lim := rate.Limit(perSec)
	if perSec <= 0 {
		lim = rate.Inf
	}
	return &HostLimiter{perSec: lim, burst: max(burst, 1), hosts: map[string]*rate.Limiter{}}
}

func hostKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func (hl *HostLimiter) forHost(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	lim := hl.hosts[host]
	if lim == nil {
		lim = rate.NewLimiter(hl.perSec, hl.burst)
		hl.hosts[host] = lim
	}
	return lim
}

// WaitURL blocks until a request to raw's host may proceed. Unparsable
// URLs share one bucket.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	return hl.forHost(hostKey(raw)).Wait(ctx)
}

// Hosts reports how many distinct hosts have been seen.
func (hl *HostLimiter) Hosts() int {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	return len(hl.hosts)
}
