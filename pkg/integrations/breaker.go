package integrations

import (
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// breakers holds one circuit breaker per repository host. A host that keeps
// failing is skipped for a while instead of costing every lookup a full
// retry cycle.
type breakers struct {
	mu        sync.RWMutex
	byHost    map[string]*circuit.Breaker
	threshold int64
}

func newBreakers(threshold int64) *breakers {
	return &breakers{byHost: make(map[string]*circuit.Breaker), threshold: threshold}
}

// get returns or creates the breaker for host.
func (b *breakers) get(host string) *circuit.Breaker {
	b.mu.RLock()
	br, ok := b.byHost[host]
	b.mu.RUnlock()
	if ok {
		return br
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if br, ok := b.byHost[host]; ok {
		return br
	}

	// Trips after threshold consecutive failures; a success resets the count.
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	br = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ConsecutiveTripFunc(b.threshold),
	})
	b.byHost[host] = br
	return br
}

// states reports "open" or "closed" per host.
func (b *breakers) states() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]string, len(b.byHost))
	for host, br := range b.byHost {
		if br.Tripped() {
			out[host] = "open"
		} else {
			out[host] = "closed"
		}
	}
	return out
}
