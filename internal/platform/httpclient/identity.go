package httpclient

import (
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// DefaultUserAgents is the pool of desktop browser signatures rotated per request.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
}

const (
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	defaultAcceptLanguage = "en-US,en;q=0.5"
	defaultReferer        = "https://www.google.com/"
)

// IdentityPool hands out request identities: a random User-Agent plus
// generic Accept, Accept-Language and Referer headers.
type IdentityPool struct {
	mu         sync.Mutex
	userAgents []string
	rnd        *rand.Rand
}

// NewIdentityPool creates a pool from the given user agents.
// An empty list falls back to DefaultUserAgents.
func NewIdentityPool(userAgents ...string) *IdentityPool {
	if len(userAgents) == 0 {
		userAgents = DefaultUserAgents
	}
	return &IdentityPool{
		userAgents: append([]string(nil), userAgents...),
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// UserAgent picks one signature at random.
func (p *IdentityPool) UserAgent() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.userAgents) == 1 {
		return p.userAgents[0]
	}
	return p.userAgents[p.rnd.Intn(len(p.userAgents))]
}

// Size returns the number of signatures in the pool.
func (p *IdentityPool) Size() int {
	return len(p.userAgents)
}

// Apply sets the identity headers on req.
func (p *IdentityPool) Apply(req *http.Request) {
	req.Header.Set("User-Agent", p.UserAgent())
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", defaultAcceptLanguage)
	req.Header.Set("Referer", defaultReferer)
}
