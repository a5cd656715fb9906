package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/fasthash/fnv1a"

	bruntime "github.com/gosuda/tinybasic/runtime"
)

const shardCount = 16

type entry struct {
	session    *bruntime.Session
	lastAccess atomic.Int64
}

type shard struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

// Store keeps sessions keyed by id, spread over shards so lookups for
// different sessions rarely contend.
type Store struct {
	shards [shardCount]shard
	opts   []bruntime.Option
	now    func() time.Time
}

func NewStore(opts ...bruntime.Option) *Store {
	st := &Store{opts: opts, now: time.Now}
	for i := range st.shards {
		st.shards[i].sessions = map[string]*entry{}
	}
	return st
}

func (st *Store) shardFor(id string) *shard {
	return &st.shards[fnv1a.HashString64(id)%shardCount]
}

// Create registers a fresh session and returns its id.
func (st *Store) Create() (string, *bruntime.Session) {
	id := uuid.NewString()
	e := &entry{session: bruntime.NewSession(st.opts...)}
	e.lastAccess.Store(st.now().UnixNano())
	sh := st.shardFor(id)
	sh.mu.Lock()
	sh.sessions[id] = e
	sh.mu.Unlock()
	return id, e.session
}

// Get returns the session for id and marks it as used.
func (st *Store) Get(id string) (*bruntime.Session, bool) {
	sh := st.shardFor(id)
	sh.mu.Lock()
	e, ok := sh.sessions[id]
	sh.mu.Unlock()
	if !ok {
		return nil, false
	}
	e.lastAccess.Store(st.now().UnixNano())
	return e.session, true
}

func (st *Store) Delete(id string) bool {
	sh := st.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.sessions[id]; !ok {
		return false
	}
	delete(sh.sessions, id)
	return true
}

func (st *Store) Len() int {
	n := 0
	for i := range st.shards {
		sh := &st.shards[i]
		sh.mu.Lock()
		n += len(sh.sessions)
		sh.mu.Unlock()
	}
	return n
}

// EvictIdle drops sessions unused for longer than ttl. Sessions in the
// middle of an evaluation are kept.
func (st *Store) EvictIdle(ttl time.Duration) int {
	cutoff := st.now().Add(-ttl).UnixNano()
	evicted := 0
	for i := range st.shards {
		sh := &st.shards[i]
		sh.mu.Lock()
		for id, e := range sh.sessions {
			if e.lastAccess.Load() < cutoff && !e.session.Busy() {
				delete(sh.sessions, id)
				evicted++
			}
		}
		sh.mu.Unlock()
	}
	return evicted
}
