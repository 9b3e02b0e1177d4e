package ratelimit

import (
	"log/slog"
	"time"
)

// Sweeper periodically runs Guard.Sweep in the background.
type Sweeper struct {
	guard    *Guard
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(guard *Guard, interval time.Duration) *Sweeper {
	return &Sweeper{
		guard:    guard,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				s.guard.Sweep(now)
				slog.Debug("rate guard sweep finished")
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Sweeper) Stop() error {
	close(s.stop)
	<-s.done
	return nil
}
