// Package identity rotates the browser identities (user agent, language, optional proxy)
// presented to stores so consecutive requests do not share one fingerprint.
package identity

import (
	"sync"
	"time"
)

// Identity is one request profile
type Identity struct {
	UserAgent      string
	AcceptLanguage string
	Proxy          string
}

// DefaultUserAgents are current desktop browser strings
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// Pool hands out identities round-robin, skipping ones that were recently blocked
type Pool struct {
	identities []Identity
	index      int
	cooldown   time.Duration
	mu         sync.Mutex
	failed     map[int]time.Time
	now        func() time.Time
}

// NewPool combines user agents and proxies into identities. An empty proxy list yields
// direct connections.
func NewPool(userAgents, proxies []string, cooldown time.Duration) *Pool {
	if len(userAgents) == 0 {
		userAgents = DefaultUserAgents
	}
	if len(proxies) == 0 {
		proxies = []string{""}
	}
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}

	var ids []Identity
	for i, ua := range userAgents {
		ids = append(ids, Identity{
			UserAgent:      ua,
			AcceptLanguage: "en-US,en;q=0.5",
			Proxy:          proxies[i%len(proxies)],
		})
	}

	return &Pool{
		identities: ids,
		cooldown:   cooldown,
		failed:     make(map[int]time.Time),
		now:        time.Now,
	}
}

// Next returns the next healthy identity. When every identity is cooling down, the one after
// the last handed out is returned anyway.
func (p *Pool) Next() Identity {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.index
	for {
		i := p.index
		p.index = (p.index + 1) % len(p.identities)

		if failTime, ok := p.failed[i]; ok {
			if p.now().Sub(failTime) < p.cooldown {
				if p.index == start {
					return p.identities[i]
				}
				continue
			}
			delete(p.failed, i)
		}
		return p.identities[i]
	}
}

// MarkBlocked benches an identity for the cool-down period
func (p *Pool) MarkBlocked(id Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, candidate := range p.identities {
		if candidate == id {
			p.failed[i] = p.now()
		}
	}
}

// Size returns the number of identities in the pool
func (p *Pool) Size() int {
	return len(p.identities)
}
