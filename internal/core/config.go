package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended in a win
	Paused   bool // Whether the game is paused
	Stage    int  // Current wave
	Lives    int  // Lives left
	Money    int  // Money left
}

// StepResult is returned by Game.Step() after each frame.
// Contains the updated game state and a status line for the last notable event.
type StepResult struct {
	State   GameState
	Message string
}

// RunSummary describes a finished game for the run history.
type RunSummary struct {
	Outcome   string // "win", "loss" or "quit"
	Wave      int    // Last wave reached
	Kills     int
	LivesLeft int
	MoneyLeft int
	Seed      int64
	Layout    string
}
