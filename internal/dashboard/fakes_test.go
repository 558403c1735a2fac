package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"InfraDash/internal/dashboard/fetch"
)

type fakeTimer struct {
	mu      sync.Mutex
	stopped bool
	fn      func()
}

func (t *fakeTimer) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *fakeTimer) live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}

// fakeScheduler records every timer it hands out and fires them on demand
type fakeScheduler struct {
	mu        sync.Mutex
	timers    []*fakeTimer
	intervals []time.Duration
}

func (s *fakeScheduler) Every(interval time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{fn: fn}
	s.timers = append(s.timers, t)
	s.intervals = append(s.intervals, interval)
	return t
}

func (s *fakeScheduler) liveTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if t.live() {
			n++
		}
	}
	return n
}

// tick fires every live timer once
func (s *fakeScheduler) tick() {
	s.mu.Lock()
	timers := append([]*fakeTimer(nil), s.timers...)
	s.mu.Unlock()
	for _, t := range timers {
		if t.live() {
			t.fn()
		}
	}
}

type fakeReply struct {
	status int
	body   string
	err    error
	panic  bool
}

// fakeFetcher answers from a per-endpoint table and counts calls
type fakeFetcher struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   map[string]int
	// gate, when set, blocks Get until closed
	gate chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{replies: make(map[string]fakeReply), calls: make(map[string]int)}
}

func (f *fakeFetcher) set(endpoint string, r fakeReply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[endpoint] = r
}

func (f *fakeFetcher) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeFetcher) Get(ctx context.Context, endpoint string) (*fetch.Response, error) {
	f.mu.Lock()
	f.calls[endpoint]++
	r, ok := f.replies[endpoint]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if !ok {
		return nil, &fetch.NetworkError{Endpoint: endpoint, Err: errors.New("no route to host")}
	}
	if r.panic {
		panic("fetcher exploded")
	}
	if r.err != nil {
		return nil, r.err
	}
	return &fetch.Response{StatusCode: r.status, Body: []byte(r.body)}, nil
}
