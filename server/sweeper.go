package server

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/tevino/abool/v2"
)

// Sweeper periodically evicts idle sessions from a Store.
type Sweeper struct {
	store     *Store
	ttl       time.Duration
	scheduler gocron.Scheduler
	running   *abool.AtomicBool
}

func NewSweeper(store *Store, ttl, interval time.Duration) (*Sweeper, error) {
	sw := &Sweeper{store: store, ttl: ttl, running: abool.New()}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	if _, err := s.NewJob(gocron.DurationJob(interval), gocron.NewTask(sw.sweep)); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}
	sw.scheduler = s
	return sw, nil
}

func (sw *Sweeper) Start() {
	sw.scheduler.Start()
}

func (sw *Sweeper) Stop() error {
	return sw.scheduler.Shutdown()
}

// sweep runs one eviction pass. A pass that starts while another is
// still running does nothing.
func (sw *Sweeper) sweep() int {
	if !sw.running.SetToIf(false, true) {
		return 0
	}
	defer sw.running.UnSet()
	n := sw.store.EvictIdle(sw.ttl)
	if n > 0 {
		log.Printf("evicted %d idle sessions, %d remain", n, sw.store.Len())
	}
	return n
}
