package command

import (
	"sync"
	"time"
)

// Metrics holds process-wide execution counters, broken down by command name
// and by purpose. One long-lived instance is owned by the Executor; it is
// never persisted by this package.
type Metrics struct {
	mu             sync.Mutex
	byName         map[string]*bucket
	byPurpose      map[Purpose]*bucket
	failuresByName map[string]int
	failuresByType map[ErrorType]int
}

type bucket struct {
	invocations   int
	successes     int
	totalDuration time.Duration
}

// BucketSnapshot is the read-only view of one counter bucket.
type BucketSnapshot struct {
	Invocations     int
	Successes       int
	SuccessRate     float64
	TotalDuration   time.Duration
	AverageDuration time.Duration
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	TotalInvocations int
	ByName           map[string]BucketSnapshot
	ByPurpose        map[Purpose]BucketSnapshot
	FailuresByName   map[string]int
	FailuresByType   map[ErrorType]int
}

// NewMetrics creates an empty counter set.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.reset()
	return m
}

// Record updates all counters for one execution.
func (m *Metrics) Record(name string, purpose Purpose, success bool, duration time.Duration, errType ErrorType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bucketFor(name, purpose, success, duration)
	if !success {
		m.failuresByName[name]++
		m.failuresByType[errType]++
	}
}

func (m *Metrics) bucketFor(name string, purpose Purpose, success bool, duration time.Duration) {
	nb, ok := m.byName[name]
	if !ok {
		nb = &bucket{}
		m.byName[name] = nb
	}
	pb, ok := m.byPurpose[purpose]
	if !ok {
		pb = &bucket{}
		m.byPurpose[purpose] = pb
	}
	for _, b := range []*bucket{nb, pb} {
		b.invocations++
		b.totalDuration += duration
		if success {
			b.successes++
		}
	}
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		ByName:         make(map[string]BucketSnapshot, len(m.byName)),
		ByPurpose:      make(map[Purpose]BucketSnapshot, len(m.byPurpose)),
		FailuresByName: make(map[string]int, len(m.failuresByName)),
		FailuresByType: make(map[ErrorType]int, len(m.failuresByType)),
	}
	for name, b := range m.byName {
		snap.TotalInvocations += b.invocations
		snap.ByName[name] = b.snapshot()
	}
	for purpose, b := range m.byPurpose {
		snap.ByPurpose[purpose] = b.snapshot()
	}
	for name, n := range m.failuresByName {
		snap.FailuresByName[name] = n
	}
	for kind, n := range m.failuresByType {
		snap.FailuresByType[kind] = n
	}
	return snap
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func (m *Metrics) reset() {
	m.byName = make(map[string]*bucket)
	m.byPurpose = make(map[Purpose]*bucket)
	m.failuresByName = make(map[string]int)
	m.failuresByType = make(map[ErrorType]int)
}

func (b *bucket) snapshot() BucketSnapshot {
	s := BucketSnapshot{
		Invocations:   b.invocations,
		Successes:     b.successes,
		TotalDuration: b.totalDuration,
	}
	if b.invocations > 0 {
		s.SuccessRate = float64(b.successes) / float64(b.invocations)
		s.AverageDuration = b.totalDuration / time.Duration(b.invocations)
	}
	return s
}
