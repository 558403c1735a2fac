package dashboard

import (
	"sync"
	"time"
)

// Timer is a handle on a recurring schedule
type Timer interface {
	Stop()
}

// Scheduler starts recurring callbacks. The first call happens one interval
// after Every returns, not immediately.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Timer
}

// TickerScheduler runs callbacks on a time.Ticker goroutine
type TickerScheduler struct{}

// Every implements Scheduler
func (TickerScheduler) Every(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-t.ticker.C:
				fn()
			case <-t.stop:
				return
			}
		}
	}()

	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.stop)
	})
}

// Session is the auto refresh state: whether polling runs and the handle
// of its timer. A live timer exists exactly when active is true.
type Session struct {
	active bool
	timer  Timer
}

// Active reports whether auto refresh is running
func (s *Session) Active() bool {
	return s.active
}

func (s *Session) start(sched Scheduler, interval time.Duration, fn func()) {
	s.timer = sched.Every(interval, fn)
	s.active = true
}

func (s *Session) stop() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = nil
	s.active = false
}
