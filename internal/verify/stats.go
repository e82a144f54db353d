package verify

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/daidr/mcverify-go/internal/chat"
)

// statsSampler renders process stats as fake player-sample lines in
// the server list hover text. ReadMemStats stops the world, so the
// snapshot is taken by a background loop and status pings only ever
// read the cached copy.
type statsSampler struct {
	interval time.Duration
	start    time.Time

	stop chan struct{}
	done chan struct{}

	mu     sync.Mutex
	cached []statusSample
}

func newStatsSampler(interval time.Duration) *statsSampler {
	return &statsSampler{
		interval: interval,
		start:    time.Now(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start primes the snapshot and keeps it fresh until Stop.
func (s *statsSampler) Start() {
	s.refresh(time.Now())
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.refresh(now)
			}
		}
	}()
}

// Stop ends the refresh loop and waits for it to exit.
func (s *statsSampler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *statsSampler) refresh(now time.Time) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	lines := []string{
		chat.Gold + "Server stats",
		fmt.Sprintf("%sHeap: %s%s / %s", chat.White, chat.Yellow,
			humanize.IBytes(m.HeapAlloc), humanize.IBytes(m.HeapSys)),
		fmt.Sprintf("%sGC cycles: %s%s", chat.White, chat.Yellow,
			humanize.Comma(int64(m.NumGC))),
		fmt.Sprintf("%sGoroutines: %s%d", chat.White, chat.Yellow,
			runtime.NumGoroutine()),
		fmt.Sprintf("%sUptime: %s%s", chat.White, chat.Yellow,
			now.Sub(s.start).Round(time.Second)),
	}

	fresh := make([]statusSample, 0, len(lines))
	for _, line := range lines {
		fresh = append(fresh, statusSample{Name: line, ID: uuid.Nil.String()})
	}

	s.mu.Lock()
	s.cached = fresh
	s.mu.Unlock()
}

// sample returns the latest snapshot. Never blocks on a computation.
func (s *statsSampler) sample() []statusSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached
}
