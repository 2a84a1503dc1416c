package core

// EconomyConfig holds the starting resources and money flow.
type EconomyConfig struct {
	StartingLives   int
	StartingMoney   int
	WaveBonus       int // Money granted when each wave after the first starts
	LifeLossPenalty int // Money lost with every life
	KillReward      int // Money granted per kill
}

// DefaultEconomyConfig returns 3 lives, 5 money, +2 per wave and 1 money lost per life.
func DefaultEconomyConfig() EconomyConfig {
	return EconomyConfig{
		StartingLives:   3,
		StartingMoney:   5,
		WaveBonus:       2,
		LifeLossPenalty: 1,
	}
}

// Progress tracks lives, money, score and the terminal outcome.
// Once the game is won or lost, lives and score no longer change.
type Progress struct {
	cfg   EconomyConfig
	lives int
	money int
	score int
	lost  bool
	won   bool
}

// NewProgress creates a tracker with the configured starting resources.
func NewProgress(cfg EconomyConfig) *Progress {
	p := &Progress{cfg: cfg}
	p.Reset()
	return p
}

// Reset restores the starting resources and clears the outcome.
func (p *Progress) Reset() {
	p.lives = p.cfg.StartingLives
	p.money = max(p.cfg.StartingMoney, 0)
	p.score = 0
	p.lost = false
	p.won = false
}

// Lives returns the remaining lives.
func (p *Progress) Lives() int { return p.lives }

// Money returns the current money, never negative.
func (p *Progress) Money() int { return p.money }

// Score returns the number of kills scored.
func (p *Progress) Score() int { return p.score }

// Lost reports whether the player ran out of lives.
func (p *Progress) Lost() bool { return p.lost }

// Won reports whether every wave was cleared.
func (p *Progress) Won() bool { return p.won }

// Over reports whether the game reached a terminal state.
func (p *Progress) Over() bool { return p.lost || p.won }

// LoseLife removes n lives and the configured money penalty for each.
// Returns true if this call ended the game.
func (p *Progress) LoseLife(n int) bool {
	if p.Over() || n <= 0 {
		return false
	}
	p.lives -= n
	p.SubtractMoney(n * p.cfg.LifeLossPenalty)
	if p.lives <= 0 {
		p.lives = 0
		p.lost = true
		return true
	}
	return false
}

// AddMoney adds n money. Negative amounts are subtracted.
func (p *Progress) AddMoney(n int) {
	if n < 0 {
		p.SubtractMoney(-n)
		return
	}
	p.money += n
}

// SubtractMoney removes n money, flooring at zero.
func (p *Progress) SubtractMoney(n int) {
	if n <= 0 {
		return
	}
	p.money = max(p.money-n, 0)
}

// Spend removes n money only if all of it is available.
func (p *Progress) Spend(n int) bool {
	if n < 0 || p.money < n {
		return false
	}
	p.money -= n
	return true
}

// IncrementScore adds n to the score unless the game is over.
func (p *Progress) IncrementScore(n int) {
	if p.Over() {
		return
	}
	p.score += n
}

// Win marks the game won. Returns true only for the call that ended the game.
func (p *Progress) Win() bool {
	if p.Over() {
		return false
	}
	p.won = true
	return true
}
