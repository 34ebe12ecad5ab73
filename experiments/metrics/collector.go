package metrics

import (
	"sync/atomic"
	"time"
)

// TurnMetric counts the actions taken during one turn, human actions issued
// before the turn ended included.
type TurnMetric struct {
	Turn       int
	Duration   time.Duration
	Attacks    int
	AttacksWon int
	Naval      int
	Cities     int
	Idle       int
}

type GameMetric struct {
	Seed       int64
	Players    int
	GridSide   int
	Terrain    string
	Winner     int // Player ID, -1 when the turn limit was reached
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTurns int
}

type Collector interface {
	Start(turn int)
	AddAttack(won, naval bool)
	AddCity()
	AddIdle()
	Complete() TurnMetric
}

type collector struct {
	turn       int
	startTime  time.Time
	attacks    atomic.Int32
	attacksWon atomic.Int32
	naval      atomic.Int32
	cities     atomic.Int32
	idle       atomic.Int32
}

func NewCollector() Collector {
	return &collector{startTime: time.Now()}
}

// Start resets the counters for a new turn.
func (m *collector) Start(turn int) {
	m.turn = turn
	m.startTime = time.Now()
	m.attacks.Store(0)
	m.attacksWon.Store(0)
	m.naval.Store(0)
	m.cities.Store(0)
	m.idle.Store(0)
}

func (m *collector) AddAttack(won, naval bool) {
	m.attacks.Add(1)
	if won {
		m.attacksWon.Add(1)
	}
	if naval {
		m.naval.Add(1)
	}
}

func (m *collector) AddCity() {
	m.cities.Add(1)
}

func (m *collector) AddIdle() {
	m.idle.Add(1)
}

func (m *collector) Complete() TurnMetric {
	return TurnMetric{
		Turn:       m.turn,
		Duration:   time.Since(m.startTime),
		Attacks:    int(m.attacks.Load()),
		AttacksWon: int(m.attacksWon.Load()),
		Naval:      int(m.naval.Load()),
		Cities:     int(m.cities.Load()),
		Idle:       int(m.idle.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(turn int)            {}
func (m *dummyCollector) AddAttack(won, naval bool) {}
func (m *dummyCollector) AddCity()                  {}
func (m *dummyCollector) AddIdle()                  {}
func (m *dummyCollector) Complete() TurnMetric      { return TurnMetric{} }
