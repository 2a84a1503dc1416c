package core

import (
	"testing"
	"time"
)

func archer() TowerKind {
	return TowerKind{ID: "archer", Name: "Archer", Glyph: 'A', Cost: 2, BaseDamage: 1, Range: 1.5, AttackInterval: time.Second}
}

func TestUpgradeCostSequence(t *testing.T) {
	tw := NewTower(1, archer(), C(0, 0))
	expected := []int{1, 2, 4, 6, 8, 10}
	for level, cost := range expected {
		if got := tw.UpgradeCost(); got != cost {
			t.Errorf("level %d: UpgradeCost() = %d, expected %d", level, got, cost)
		}
		ok, spent := tw.TryUpgrade(1000)
		if !ok || spent != cost {
			t.Errorf("level %d: TryUpgrade() = (%v, %d), expected (true, %d)", level, ok, spent, cost)
		}
	}
}

func TestUpgradeDamage(t *testing.T) {
	tests := []struct {
		base     int
		levels   int
		expected int
	}{
		{1, 1, 2},   // ceil(1.05)
		{1, 2, 2},   // ceil(1.1025)
		{3, 1, 4},   // ceil(3.15)
		{10, 1, 11}, // ceil(10.5)
		{20, 1, 21}, // exact product stays put
		{20, 2, 23}, // ceil(22.05)
		{100, 3, 116},
	}

	for _, tc := range tests {
		kind := archer()
		kind.BaseDamage = tc.base
		tw := NewTower(1, kind, C(0, 0))
		for i := 0; i < tc.levels; i++ {
			tw.TryUpgrade(1000)
		}
		if tw.Damage() != tc.expected {
			t.Errorf("base %d level %d: Damage() = %d, expected %d", tc.base, tc.levels, tw.Damage(), tc.expected)
		}
	}
}

// Upgrade from level 0 with exactly enough money.
func TestUpgradeWithExactMoney(t *testing.T) {
	tw := NewTower(1, archer(), C(0, 0))
	ok, spent := tw.TryUpgrade(1)
	if !ok || spent != 1 {
		t.Fatalf("TryUpgrade(1) = (%v, %d), expected (true, 1)", ok, spent)
	}
	if tw.Damage() != 2 {
		t.Errorf("Damage() = %d, expected 2", tw.Damage())
	}
	if tw.UpgradeCost() != 2 {
		t.Errorf("UpgradeCost() = %d, expected 2", tw.UpgradeCost())
	}
}

func TestUpgradeInsufficientMoney(t *testing.T) {
	tw := NewTower(1, archer(), C(0, 0))
	tw.TryUpgrade(1)
	ok, spent := tw.TryUpgrade(1)
	if ok || spent != 0 {
		t.Errorf("TryUpgrade(1) at level 1 = (%v, %d), expected (false, 0)", ok, spent)
	}
	if tw.Level() != 1 || tw.Damage() != 2 {
		t.Errorf("failed upgrade changed tower: level %d damage %d", tw.Level(), tw.Damage())
	}
}

func TestTowerSenseQueueOrder(t *testing.T) {
	r := NewRoster()
	a := r.Add(testEnemy(3))
	b := r.Add(testEnemy(3))
	c := r.Add(testEnemy(3))
	tw := NewTower(1, archer(), C(5, 5))

	far := V(0, 0)
	near := V(5, 6)

	tw.Sense(b, near)
	tw.Sense(a, near)
	tw.Sense(c, far)
	assertQueue(t, tw, b, a)

	// Sensing again while in range keeps the position.
	tw.Sense(b, near)
	assertQueue(t, tw, b, a)

	tw.Sense(c, near)
	tw.Sense(b, far)
	assertQueue(t, tw, a, c)

	// Re-entry goes to the back.
	tw.Sense(b, near)
	assertQueue(t, tw, a, c, b)

	tw.Forget(c)
	assertQueue(t, tw, a, b)
}

func assertQueue(t *testing.T, tw *Tower, expected ...Handle) {
	t.Helper()
	q := tw.Queue()
	if len(q) != len(expected) {
		t.Fatalf("Queue() = %v, expected %v", q, expected)
	}
	for i := range expected {
		if q[i] != expected[i] {
			t.Errorf("Queue()[%d] = %v, expected %v", i, q[i], expected[i])
		}
	}
}

func TestTowerRangeBoundary(t *testing.T) {
	tw := NewTower(1, archer(), C(5, 5))
	tests := []struct {
		pos      Vec
		expected bool
	}{
		{V(5, 5), true},
		{V(6.5, 5), true}, // exactly on the radius
		{V(6, 6), true},   // diagonal neighbour, ~1.41
		{V(6.6, 5), false},
		{V(7, 7), false},
	}
	for _, tc := range tests {
		if got := tw.InRange(tc.pos); got != tc.expected {
			t.Errorf("InRange(%v) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestTowerAttackCadence(t *testing.T) {
	r := NewRoster()
	h := r.Add(testEnemy(100))
	tw := NewTower(1, archer(), C(0, 0))
	tw.Sense(h, V(0, 0))

	frame := 250 * time.Millisecond
	attacks := 0
	for i := 1; i <= 12; i++ {
		if _, ok := tw.Update(frame, r); ok {
			attacks++
			if i%4 != 0 {
				t.Errorf("attack on frame %d, expected only on multiples of 4", i)
			}
			if tw.Timer() != 0 {
				t.Errorf("Timer() = %v after attack, expected 0", tw.Timer())
			}
		}
	}
	if attacks != 3 {
		t.Errorf("attacks = %d over 3s, expected 3", attacks)
	}
	e, _ := r.Get(h)
	if e.Health != 97 {
		t.Errorf("Health = %d, expected 97", e.Health)
	}
}

func TestTowerIdleTimerHeldAtZero(t *testing.T) {
	r := NewRoster()
	tw := NewTower(1, archer(), C(0, 0))

	for i := 0; i < 10; i++ {
		if _, ok := tw.Update(300*time.Millisecond, r); ok {
			t.Fatal("idle tower attacked")
		}
		if tw.Timer() != 0 {
			t.Fatalf("Timer() = %v while idle, expected 0", tw.Timer())
		}
	}

	// An enemy entering after a long idle period waits a full interval.
	h := r.Add(testEnemy(5))
	tw.Sense(h, V(0, 0))
	if _, ok := tw.Update(900*time.Millisecond, r); ok {
		t.Error("tower attacked before a full interval elapsed")
	}
	if _, ok := tw.Update(100*time.Millisecond, r); !ok {
		t.Error("tower did not attack after a full interval")
	}
}

func TestTowerPrunesDeadHead(t *testing.T) {
	r := NewRoster()
	dead := r.Add(testEnemy(1))
	removed := r.Add(testEnemy(1))
	live := r.Add(testEnemy(5))

	tw := NewTower(1, archer(), C(0, 0))
	for _, h := range []Handle{dead, removed, live} {
		tw.Sense(h, V(0, 0))
	}
	e, _ := r.Get(dead)
	e.TakeDamage(1)
	r.Remove(removed)

	a, ok := tw.Update(time.Second, r)
	if !ok {
		t.Fatal("expected attack on the live enemy")
	}
	if a.Target != live {
		t.Errorf("attacked %v, expected %v", a.Target, live)
	}
	assertQueue(t, tw, live)
}

func TestTowerKillReported(t *testing.T) {
	r := NewRoster()
	h := r.Add(testEnemy(1))
	tw := NewTower(1, archer(), C(0, 0))
	tw.Sense(h, V(0, 0))

	a, ok := tw.Update(time.Second, r)
	if !ok || !a.Killed {
		t.Fatalf("Update() = (%+v, %v), expected a killing attack", a, ok)
	}
	// The dead enemy is pruned on the next update and the timer stays idle.
	if _, ok := tw.Update(time.Second, r); ok {
		t.Error("tower attacked a dead enemy")
	}
	if len(tw.Queue()) != 0 {
		t.Errorf("Queue() = %v, expected empty", tw.Queue())
	}
}

func TestTowerUpgradeEligibility(t *testing.T) {
	tw := NewTower(1, archer(), C(0, 0))
	if tw.UpgradeEnabled() {
		t.Error("new tower should not be upgrade-eligible")
	}
	tw.SetUpgradeEnabled(true)
	if !tw.UpgradeEnabled() {
		t.Error("SetUpgradeEnabled(true) had no effect")
	}
}
