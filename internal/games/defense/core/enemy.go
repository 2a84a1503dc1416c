package core

import "time"

// Movement thresholds in cells.
const (
	SnapThreshold    = 0.01 // Closer than this snaps onto the waypoint
	AdvanceThreshold = 0.1  // Closer than this targets the next waypoint
)

// EnemyStatus tracks where an enemy is in its lifecycle.
type EnemyStatus uint8

const (
	EnemyAlive   EnemyStatus = iota
	EnemyDead                // Killed by a tower, waiting for the sweep
	EnemyArrived             // Reached the goal, waiting for the sweep
)

// String returns the string representation of the status.
func (s EnemyStatus) String() string {
	switch s {
	case EnemyAlive:
		return "Alive"
	case EnemyDead:
		return "Dead"
	case EnemyArrived:
		return "Arrived"
	default:
		return "Unknown"
	}
}

// Enemy is an agent walking the path.
// Enemies never remove themselves; the roster owner sweeps dead and arrived
// ones after each step.
type Enemy struct {
	handle    Handle
	Variant   string
	Glyph     rune
	Wave      int
	Health    int
	MaxHealth int
	Speed     float64 // Cells per second
	Pos       Vec

	path   []Vec
	target int
	status EnemyStatus
}

// NewEnemy places an enemy on the first waypoint, heading for the second.
func NewEnemy(variant EnemyVariant, wave, health int, speed float64, path []Vec) Enemy {
	e := Enemy{
		Variant:   variant.ID,
		Glyph:     variant.Glyph,
		Wave:      wave,
		Health:    health,
		MaxHealth: health,
		Speed:     speed,
		path:      path,
		target:    1,
	}
	if len(path) > 0 {
		e.Pos = path[0]
	}
	return e
}

// Handle returns the roster handle assigned when the enemy was added.
func (e *Enemy) Handle() Handle {
	return e.handle
}

// Status returns the lifecycle status.
func (e *Enemy) Status() EnemyStatus {
	return e.status
}

// Alive reports whether the enemy is still on the field.
func (e *Enemy) Alive() bool {
	return e.status == EnemyAlive
}

// Target returns the index of the waypoint the enemy is heading for.
func (e *Enemy) Target() int {
	return e.target
}

// TakeDamage subtracts n health. Returns true if this hit killed the enemy.
// Damage to an enemy that is no longer alive is ignored.
func (e *Enemy) TakeDamage(n int) bool {
	if e.status != EnemyAlive || n <= 0 {
		return false
	}
	e.Health -= n
	if e.Health <= 0 {
		e.Health = 0
		e.status = EnemyDead
		return true
	}
	return false
}

// Advance moves the enemy Speed*dt cells along its path. Distance left over
// after reaching a waypoint carries on towards the next one, so the ground
// covered does not depend on how the time is sliced into frames.
// Returns true if the enemy reached the goal during this call.
func (e *Enemy) Advance(dt time.Duration) bool {
	if e.status != EnemyAlive {
		return false
	}

	step := e.Speed * dt.Seconds()
	for e.target < len(e.path) {
		wp := e.path[e.target]
		if d := e.Pos.Dist(wp); d <= step {
			e.Pos = wp
			step -= d
			e.target++
			continue
		}

		e.Pos = e.Pos.MoveTowards(wp, step)
		dist := e.Pos.Dist(wp)
		if dist < SnapThreshold {
			e.Pos = wp
		}
		if dist < AdvanceThreshold {
			e.target++
		}
		break
	}

	if e.target >= len(e.path) {
		e.status = EnemyArrived
		return true
	}
	return false
}
