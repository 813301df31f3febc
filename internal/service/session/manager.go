package session

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mostafamoumen/contactchat/internal/core"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

// Session is one user's conversational state, created lazily on first
// message.
type Session struct {
	UserID string
	Memory Strategy
}

type entry struct {
	sess     *Session
	mu       sync.Mutex
	lastSeen time.Time
	inUse    int
	elem     *list.Element
}

// Manager is the user_id → session table, wrapped as a bounded cache:
// least-recently-used sessions are evicted past capacity, idle sessions past
// the TTL. It also hands out the per-user lock that serializes concurrent
// requests for the same user while leaving other users fully parallel.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	order    *list.List // front = most recently used, values are user ids
	factory  func() Strategy
	capacity int
	ttl      time.Duration
}

func NewManager(capacity int, ttl time.Duration, factory func() Strategy) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		order:    list.New(),
		factory:  factory,
		capacity: capacity,
		ttl:      ttl,
	}
}

// Acquire returns the user's session with its per-user lock held. The
// release func must be called once the request is done with the session.
func (m *Manager) Acquire(ctx context.Context, userID string) (*Session, func(), error) {
	if m.factory == nil {
		return nil, nil, fmt.Errorf("%w: no memory strategy configured", core.ErrSession)
	}

	m.mu.Lock()
	now := time.Now()
	m.sweep(ctx, now)

	e, ok := m.sessions[userID]
	if !ok {
		e = &entry{
			sess:     &Session{UserID: userID, Memory: m.factory()},
			lastSeen: now,
		}
		e.elem = m.order.PushFront(userID)
		m.sessions[userID] = e
		m.evict(ctx)
		log.FromCtx(ctx).Debug().Str("user_id", userID).Msg("session created")
	} else {
		m.order.MoveToFront(e.elem)
	}
	e.inUse++
	m.mu.Unlock()

	// Serialize per user outside the table lock so a slow model call for
	// one user never blocks the rest.
	e.mu.Lock()

	if err := ctx.Err(); err != nil {
		e.mu.Unlock()
		m.release(e)
		return nil, nil, fmt.Errorf("%w: %v", core.ErrSession, err)
	}

	release := func() {
		e.mu.Unlock()
		m.release(e)
	}
	return e.sess, release, nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) release(e *entry) {
	m.mu.Lock()
	e.inUse--
	e.lastSeen = time.Now()
	m.mu.Unlock()
}

// evict drops least-recently-used idle sessions past capacity. Caller holds
// m.mu. Sessions currently serving a request are skipped.
func (m *Manager) evict(ctx context.Context) {
	if m.capacity <= 0 {
		return
	}
	for elem := m.order.Back(); elem != nil && len(m.sessions) > m.capacity; {
		prev := elem.Prev()
		if elem == m.order.Front() {
			// Never evict the entry being acquired right now.
			break
		}
		userID := elem.Value.(string)
		if e := m.sessions[userID]; e.inUse == 0 {
			m.remove(ctx, userID, e, "capacity")
		}
		elem = prev
	}
}

// sweep drops sessions idle longer than the TTL. Caller holds m.mu.
func (m *Manager) sweep(ctx context.Context, now time.Time) {
	if m.ttl <= 0 {
		return
	}
	cutoff := now.Add(-m.ttl)
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		userID := elem.Value.(string)
		e := m.sessions[userID]
		if e.lastSeen.After(cutoff) {
			break
		}
		if e.inUse == 0 {
			m.remove(ctx, userID, e, "ttl")
		}
		elem = prev
	}
}

func (m *Manager) remove(ctx context.Context, userID string, e *entry, reason string) {
	m.order.Remove(e.elem)
	delete(m.sessions, userID)
	log.FromCtx(ctx).Debug().Str("user_id", userID).Str("reason", reason).Msg("session evicted")
}
