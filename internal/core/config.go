package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 ticks/s.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the platform-facing status of a running game.
type GameState struct {
	Score         int     // Current score
	Distance      float64 // World distance covered this run
	Life          int     // Remaining lives
	Level         int     // Current level, 0 in endless mode
	LevelComplete bool    // Level distance reached
	GameOver      bool    // Whether the game has ended
	Paused        bool    // Whether the game is paused
}

// Finished reports whether the run has ended for any reason.
func (s GameState) Finished() bool {
	return s.GameOver || s.LevelComplete
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []string // Human-readable tick events for logs and streams
}
