package state

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryTTL is how long an untouched in-memory session is kept.
const DefaultMemoryTTL = 24 * time.Hour

// MemoryStore keeps sessions in process. Like the Redis hash, a session
// expires ttl after its last write.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[string]*memSession
	subs      map[string]map[chan Change]struct{}
	lastSweep time.Time
	now       func() time.Time
}

type memSession struct {
	kv      map[string]string
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithTTL(DefaultMemoryTTL)
}

func NewMemoryStoreWithTTL(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memSession),
		subs:     make(map[string]map[chan Change]struct{}),
		now:      time.Now,
	}
}

// session returns the live session, dropping it first when expired.
// Caller holds mu.
func (m *MemoryStore) session(sessionID string, now time.Time) *memSession {
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	if !now.Before(sess.expires) {
		delete(m.sessions, sessionID)
		return nil
	}
	return sess
}

// sweep drops expired sessions, at most once per minute. Caller holds mu.
func (m *MemoryStore) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < time.Minute {
		return
	}
	m.lastSweep = now
	for id, sess := range m.sessions {
		if !now.Before(sess.expires) {
			delete(m.sessions, id)
		}
	}
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.session(sessionID, m.now())
	if sess == nil {
		return "", ErrNotFound
	}
	v, ok := sess.kv[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	sess := m.session(sessionID, now)
	if sess == nil {
		sess = &memSession{kv: make(map[string]string)}
		m.sessions[sessionID] = sess
	}
	sess.kv[key] = value
	sess.expires = now.Add(m.ttl)
	m.publish(sessionID, Change{Key: key, Value: value})
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.session(sessionID, m.now())
	if sess == nil {
		return nil
	}
	for _, k := range keys {
		if _, ok := sess.kv[k]; !ok {
			continue
		}
		delete(sess.kv, k)
		m.publish(sessionID, Change{Key: k, Deleted: true})
	}
	if len(sess.kv) == 0 {
		delete(m.sessions, sessionID)
	}
	return nil
}

func (m *MemoryStore) Subscribe(ctx context.Context, sessionID string) (<-chan Change, error) {
	ch := make(chan Change, 16)

	m.mu.Lock()
	if m.subs[sessionID] == nil {
		m.subs[sessionID] = make(map[chan Change]struct{})
	}
	m.subs[sessionID][ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs[sessionID], ch)
		if len(m.subs[sessionID]) == 0 {
			delete(m.subs, sessionID)
		}
		close(ch)
		m.mu.Unlock()
	}()

	return ch, nil
}

// publish must be called with mu held. A subscriber that is not keeping up
// misses the change rather than blocking writers.
func (m *MemoryStore) publish(sessionID string, c Change) {
	for ch := range m.subs[sessionID] {
		select {
		case ch <- c:
		default:
		}
	}
}
