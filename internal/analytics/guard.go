package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultGuardWindow is how long a profile stays suppressed after a tracked
// page view.
const DefaultGuardWindow = 60 * time.Second

// ViewGuard suppresses rapid duplicate page-view writes for the same
// profile: re-render churn and accidental double navigation must not inflate
// view counts. It keeps an in-flight flag plus the last tracked
// (profile key, time) pair in memory, backed by a per-(session, profile)
// Redis key so the window survives a full page reload within the same
// session.
//
// This is a best-effort heuristic, not a correctness guarantee: there is no
// server-side idempotency key and no distributed lock. A view count inflated
// by a few has no functional consequence here.
type ViewGuard struct {
	mu       sync.Mutex
	inFlight bool
	lastKey  string
	lastAt   time.Time

	window time.Duration
	rdb    *redis.Client
	nowFn  func() time.Time
}

// NewViewGuard creates a guard with the default 60-second window. rdb may be
// nil; the in-memory checks still apply.
func NewViewGuard(rdb *redis.Client) *ViewGuard {
	return &ViewGuard{
		window: DefaultGuardWindow,
		rdb:    rdb,
		nowFn:  time.Now,
	}
}

func sessionKey(sessionID string, profileKey string) string {
	return fmt.Sprintf("pageview:%s:%s", sessionID, profileKey)
}

// Allow reports whether a page-view write for profileKey may proceed. When
// it returns true the guard is marked in flight and the caller must call
// Done exactly once with the write outcome.
func (g *ViewGuard) Allow(ctx context.Context, profileKey, sessionID string) bool {
	g.mu.Lock()
	now := g.nowFn()
	if g.inFlight || (g.lastKey == profileKey && now.Sub(g.lastAt) < g.window) {
		g.mu.Unlock()
		return false
	}
	g.inFlight = true
	g.lastKey = profileKey
	g.lastAt = now
	g.mu.Unlock()

	// Session-scoped fallback so the window survives a reload. Redis being
	// unavailable degrades to the in-memory checks only.
	if g.rdb != nil && sessionID != "" {
		exists, err := g.rdb.Exists(ctx, sessionKey(sessionID, profileKey)).Result()
		if err == nil && exists > 0 {
			g.mu.Lock()
			g.inFlight = false
			g.mu.Unlock()
			return false
		}
	}

	return true
}

// Done releases the in-flight flag. When tracked is true the session window
// is recorded so reloads within it stay suppressed.
func (g *ViewGuard) Done(ctx context.Context, profileKey, sessionID string, tracked bool) {
	if tracked && g.rdb != nil && sessionID != "" {
		g.rdb.Set(ctx, sessionKey(sessionID, profileKey), 1, g.window)
	}

	g.mu.Lock()
	g.inFlight = false
	if !tracked {
		// A failed write should not start a suppression window.
		g.lastKey = ""
		g.lastAt = time.Time{}
	}
	g.mu.Unlock()
}
