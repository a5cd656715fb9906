package server

import (
	"context"
	"sync"
	"testing"
	"time"

	bruntime "github.com/gosuda/tinybasic/runtime"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStoreCreateGetDelete(t *testing.T) {
	st := NewStore()
	ids := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, sess := st.Create()
		if sess == nil || ids[id] {
			t.Fatalf("bad session %q", id)
		}
		ids[id] = true
	}
	if st.Len() != 100 {
		t.Fatalf("len = %d", st.Len())
	}
	for id := range ids {
		if _, ok := st.Get(id); !ok {
			t.Fatalf("missing %q", id)
		}
		if !st.Delete(id) {
			t.Fatalf("delete %q failed", id)
		}
	}
	if st.Len() != 0 {
		t.Fatalf("len after delete = %d", st.Len())
	}
}

func TestStoreEvictIdle(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	st := NewStore()
	st.now = clock.Now

	stale, _ := st.Create()
	fresh, _ := st.Create()
	clock.Advance(10 * time.Minute)
	if _, ok := st.Get(fresh); !ok {
		t.Fatalf("fresh session missing")
	}
	clock.Advance(time.Minute)

	if n := st.EvictIdle(5 * time.Minute); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if _, ok := st.Get(stale); ok {
		t.Fatalf("stale session survived")
	}
	if _, ok := st.Get(fresh); !ok {
		t.Fatalf("fresh session evicted")
	}
}

func TestStoreKeepsBusySessions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	started := make(chan struct{})
	release := make(chan struct{})
	st := NewStore(bruntime.WithInputProvider(func(bruntime.InputRequest) (string, error) {
		close(started)
		<-release
		return "1", nil
	}))
	st.now = clock.Now
	id, sess := st.Create()
	done := make(chan error, 1)
	go func() {
		_, err := sess.Exec(context.Background(), "INPUT a")
		done <- err
	}()
	<-started
	clock.Advance(time.Hour)
	if n := st.EvictIdle(time.Minute); n != 0 {
		t.Fatalf("busy session evicted")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("exec: %v", err)
	}
	if n := st.EvictIdle(time.Minute); n != 1 {
		t.Fatalf("idle session kept after exec finished")
	}
	if _, ok := st.Get(id); ok {
		t.Fatalf("session still present")
	}
}

func TestSweeperSkipsOverlappingPass(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	st := NewStore()
	st.now = clock.Now
	st.Create()
	clock.Advance(time.Hour)

	sw, err := NewSweeper(st, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}
	defer sw.Stop()

	sw.running.Set()
	if n := sw.sweep(); n != 0 {
		t.Fatalf("overlapping sweep evicted %d", n)
	}
	sw.running.UnSet()
	if n := sw.sweep(); n != 1 {
		t.Fatalf("sweep evicted %d, want 1", n)
	}
}
