package core

import (
	"math"
	"slices"
	"time"
)

// UpgradeDamageFactor compounds per upgrade level.
const UpgradeDamageFactor = 1.05

// TowerKind describes a buildable tower type.
type TowerKind struct {
	ID             string
	Name           string
	Glyph          rune
	Cost           int
	BaseDamage     int
	Range          float64 // Euclidean radius in cells
	AttackInterval time.Duration
}

// Targets resolves enemy handles. *Roster implements it.
type Targets interface {
	Get(h Handle) (*Enemy, bool)
}

// Attack records one tower shot.
type Attack struct {
	TowerID int
	Target  Handle
	Damage  int
	Killed  bool
}

// Tower holds a first-in-range-first-attacked queue of enemies and attacks
// the head of that queue once per attack interval.
type Tower struct {
	ID    int
	Kind  TowerKind
	Coord Coord
	Pos   Vec

	damage         int
	level          int
	timer          time.Duration
	queue          []Handle
	upgradeEnabled bool
}

// NewTower creates a level 0 tower of the given kind at c.
func NewTower(id int, kind TowerKind, c Coord) *Tower {
	if kind.AttackInterval <= 0 {
		kind.AttackInterval = time.Second
	}
	return &Tower{
		ID:     id,
		Kind:   kind,
		Coord:  c,
		Pos:    c.Center(),
		damage: kind.BaseDamage,
	}
}

// Cost returns the placement cost.
func (t *Tower) Cost() int {
	return t.Kind.Cost
}

// Level returns the upgrade level.
func (t *Tower) Level() int {
	return t.level
}

// Damage returns the effective damage per attack.
func (t *Tower) Damage() int {
	return t.damage
}

// Timer returns the time accumulated towards the next attack.
func (t *Tower) Timer() time.Duration {
	return t.timer
}

// Queue returns a copy of the in-range queue, head first.
func (t *Tower) Queue() []Handle {
	return slices.Clone(t.queue)
}

// InRange reports whether pos lies within the tower's range.
func (t *Tower) InRange(pos Vec) bool {
	return t.Pos.Dist(pos) <= t.Kind.Range
}

// Sense updates queue membership for one enemy: entering range appends it,
// leaving range removes it.
func (t *Tower) Sense(h Handle, pos Vec) {
	i := slices.Index(t.queue, h)
	switch in := t.InRange(pos); {
	case in && i < 0:
		t.queue = append(t.queue, h)
	case !in && i >= 0:
		t.queue = slices.Delete(t.queue, i, i+1)
	}
}

// Forget drops h from the queue.
func (t *Tower) Forget(h Handle) {
	if i := slices.Index(t.queue, h); i >= 0 {
		t.queue = slices.Delete(t.queue, i, i+1)
	}
}

// ClearQueue empties the queue and stops the attack timer.
func (t *Tower) ClearQueue() {
	t.queue = t.queue[:0]
	t.timer = 0
}

// Update advances the attack timer and fires at the queue head when due.
// Dead or stale handles at the head are dropped first; with nothing to shoot
// the timer is held at zero.
func (t *Tower) Update(dt time.Duration, targets Targets) (Attack, bool) {
	var head *Enemy
	for len(t.queue) > 0 {
		e, ok := targets.Get(t.queue[0])
		if ok && e.Alive() {
			head = e
			break
		}
		t.queue = t.queue[1:]
	}
	if head == nil {
		t.timer = 0
		return Attack{}, false
	}

	t.timer += dt
	if t.timer < t.Kind.AttackInterval {
		return Attack{}, false
	}
	t.timer = 0
	return Attack{
		TowerID: t.ID,
		Target:  head.Handle(),
		Damage:  t.damage,
		Killed:  head.TakeDamage(t.damage),
	}, true
}

// UpgradeCost returns the price of the next level: 1 from level 0, then 2*level.
func (t *Tower) UpgradeCost() int {
	if t.level == 0 {
		return 1
	}
	return 2 * t.level
}

// TryUpgrade levels the tower up if money covers the cost.
// Returns whether it upgraded and exactly what the caller must deduct.
// The tower never touches the player's money itself.
func (t *Tower) TryUpgrade(money int) (bool, int) {
	cost := t.UpgradeCost()
	if money < cost {
		return false, 0
	}
	t.level++
	t.damage = ceilScaled(t.Kind.BaseDamage, math.Pow(UpgradeDamageFactor, float64(t.level)))
	return true, cost
}

// SetUpgradeEnabled toggles upgrade eligibility.
func (t *Tower) SetUpgradeEnabled(enabled bool) {
	t.upgradeEnabled = enabled
}

// UpgradeEnabled reports whether the tower may currently be upgraded.
func (t *Tower) UpgradeEnabled() bool {
	return t.upgradeEnabled
}
