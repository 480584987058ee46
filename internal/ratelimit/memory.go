package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

const (
	sweepInterval = time.Minute
	idleTTL       = 15 * time.Minute
)

type bucket struct {
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

// Memory is a per-key token bucket holding at most perMinute tokens and refilling
// at perMinute per minute. State lives in the process.
type Memory struct {
	mu        sync.Mutex
	limit     int
	rate      float64
	capacity  float64
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewMemory(perMinute int) *Memory {
	return newMemory(perMinute, time.Now)
}

func newMemory(perMinute int, now func() time.Time) *Memory {
	if perMinute < 1 {
		perMinute = 1
	}
	return &Memory{
		limit:     perMinute,
		rate:      float64(perMinute) / 60.0,
		capacity:  float64(perMinute),
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
		now:       now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= sweepInterval {
		for k, b := range m.buckets {
			if now.Sub(b.lastSeen) > idleTTL {
				delete(m.buckets, k)
			}
		}
		m.lastSweep = now
	}

	b := m.buckets[key]
	if b == nil {
		b = &bucket{tokens: m.capacity, lastRef: now}
		m.buckets[key] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.lastRef).Seconds(); elapsed > 0 {
		b.tokens = math.Min(m.capacity, b.tokens+elapsed*m.rate)
		b.lastRef = now
	}

	if b.tokens >= 1.0 {
		b.tokens--
		return Decision{Allowed: true, Limit: m.limit, Remaining: int(math.Floor(b.tokens))}, nil
	}

	sec := math.Ceil((1.0 - b.tokens) / m.rate)
	if sec < 1 {
		sec = 1
	}
	return Decision{Limit: m.limit, RetryAfter: time.Duration(sec) * time.Second}, nil
}
