package core

// EventKind identifies something that happened during a simulation step.
type EventKind uint8

const (
	EventWaveStarted EventKind = iota
	EventEnemySpawned
	EventEnemyKilled
	EventEnemyArrived
	EventTowerAttacked
	EventTowerPlaced
	EventTowerUpgraded
	EventTowerRemoved
	EventPathAnomaly
	EventGameWon
	EventGameLost
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventWaveStarted:
		return "WaveStarted"
	case EventEnemySpawned:
		return "EnemySpawned"
	case EventEnemyKilled:
		return "EnemyKilled"
	case EventEnemyArrived:
		return "EnemyArrived"
	case EventTowerAttacked:
		return "TowerAttacked"
	case EventTowerPlaced:
		return "TowerPlaced"
	case EventTowerUpgraded:
		return "TowerUpgraded"
	case EventTowerRemoved:
		return "TowerRemoved"
	case EventPathAnomaly:
		return "PathAnomaly"
	case EventGameWon:
		return "GameWon"
	case EventGameLost:
		return "GameLost"
	default:
		return "Unknown"
	}
}

// Event records one occurrence. Fields that do not apply to a kind are zero.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Wave   int
	Enemy  Handle
	Tower  int
	Amount int // Damage, cost or money depending on kind
	Coord  Coord
	Detail string
}

// Outcome is the terminal result of a game.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "win"
	case OutcomeLost:
		return "loss"
	default:
		return "unknown"
	}
}

// StepResult contains everything that happened during one Step.
type StepResult struct {
	Frame   uint64
	Tick    uint64
	Events  []Event
	Outcome Outcome
}

// Has reports whether an event of kind k occurred.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
