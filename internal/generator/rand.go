package generator

import (
	"math/rand"
	"sync"
	"time"
)

// lockedSource serializes draws so one rand.Rand can be shared by concurrent
// requests, the same way math/rand guards its package-level source.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	n := s.src.Int63()
	s.mu.Unlock()
	return n
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	s.src.Seed(seed)
	s.mu.Unlock()
}

// NewSharedRand wraps src so the returned rand.Rand is safe for concurrent
// use. A nil src seeds from the current time. The source must not be used
// outside the returned rand.Rand.
func NewSharedRand(src rand.Source) *rand.Rand {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return rand.New(&lockedSource{src: src})
}
