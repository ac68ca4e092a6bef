package recovery

import (
	"sync"
	"time"
)

// Metrics counts recovery attempts per strategy and per command, plus the
// average attempt duration. Updated synchronously at the end of every
// AttemptRecovery call that executed a strategy.
type Metrics struct {
	mu            sync.Mutex
	total         int
	successful    int
	failed        int
	byStrategy    map[string]*counter
	byCommand     map[string]*counter
	totalDuration time.Duration
}

type counter struct {
	attempts  int
	successes int
}

// CounterSnapshot is the read-only view of one counter.
type CounterSnapshot struct {
	Attempts  int
	Successes int
}

// MetricsSnapshot is a point-in-time copy of the recovery counters.
type MetricsSnapshot struct {
	Total           int
	Successful      int
	Failed          int
	ByStrategy      map[string]CounterSnapshot
	ByCommand       map[string]CounterSnapshot
	AverageDuration time.Duration
}

// NewMetrics creates an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		byStrategy: make(map[string]*counter),
		byCommand:  make(map[string]*counter),
	}
}

// Record updates counters for one executed strategy attempt.
func (m *Metrics) Record(strategy string, result *Result, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	if result.Success {
		m.successful++
	} else {
		m.failed++
	}
	m.totalDuration += duration

	sc := m.counterFor(m.byStrategy, strategy)
	sc.attempts++
	if result.Success {
		sc.successes++
	}
	for _, cmdResult := range result.Commands {
		cc := m.counterFor(m.byCommand, cmdResult.Name)
		cc.attempts++
		if cmdResult.Success {
			cc.successes++
		}
	}
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Total:      m.total,
		Successful: m.successful,
		Failed:     m.failed,
		ByStrategy: make(map[string]CounterSnapshot, len(m.byStrategy)),
		ByCommand:  make(map[string]CounterSnapshot, len(m.byCommand)),
	}
	for name, c := range m.byStrategy {
		snap.ByStrategy[name] = CounterSnapshot{Attempts: c.attempts, Successes: c.successes}
	}
	for name, c := range m.byCommand {
		snap.ByCommand[name] = CounterSnapshot{Attempts: c.attempts, Successes: c.successes}
	}
	if m.total > 0 {
		snap.AverageDuration = m.totalDuration / time.Duration(m.total)
	}
	return snap
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total, m.successful, m.failed = 0, 0, 0
	m.totalDuration = 0
	m.byStrategy = make(map[string]*counter)
	m.byCommand = make(map[string]*counter)
}

func (m *Metrics) counterFor(table map[string]*counter, name string) *counter {
	c, ok := table[name]
	if !ok {
		c = &counter{}
		table[name] = c
	}
	return c
}
