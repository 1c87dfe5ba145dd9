package app

import (
	"sync"
	"time"

	"github.com/dkeye/Steward/internal/domain"
)

const (
	defaultCooldown = 3 * time.Second

	// Pruning kicks in once the map grows past this; entries idle for
	// pruneAge are dropped. Keeps the advisory map from growing forever.
	pruneThreshold = 4096
	pruneAge       = time.Hour
)

type cooldownKey struct {
	member  domain.MemberID
	command string
}

// CooldownGate is an advisory per-(member, command) throttle. Not a
// correctness mechanism, just a UX brake on command spam.
type CooldownGate struct {
	mu      sync.Mutex
	last    map[cooldownKey]time.Time
	windows map[string]time.Duration
}

// NewCooldownGate builds a gate with per-command windows; commands without
// an entry get defaultCooldown.
func NewCooldownGate(windows map[string]time.Duration) *CooldownGate {
	if windows == nil {
		windows = make(map[string]time.Duration)
	}
	return &CooldownGate{
		last:    make(map[cooldownKey]time.Time),
		windows: windows,
	}
}

// Allow reports whether the invocation is accepted and, if so, records it.
// A rejected invocation does not reset the window.
func (g *CooldownGate) Allow(member domain.MemberID, command string) bool {
	window, ok := g.windows[command]
	if !ok {
		window = defaultCooldown
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	key := cooldownKey{member: member, command: command}
	if last, ok := g.last[key]; ok && now.Sub(last) < window {
		return false
	}
	g.last[key] = now

	if len(g.last) > pruneThreshold {
		g.pruneLocked(now)
	}
	return true
}

func (g *CooldownGate) pruneLocked(now time.Time) {
	for key, t := range g.last {
		if now.Sub(t) > pruneAge {
			delete(g.last, key)
		}
	}
}
