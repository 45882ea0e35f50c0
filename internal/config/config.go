// Package config provides YAML-based configuration loading for the 2048
// board, rules, spawning and animation timing.
package config

import (
	"errors"
	"fmt"
)

// MaxBoardSize bounds rows and cols so a board still fits a terminal.
const MaxBoardSize = 16

// T2048Config contains all configuration for a 2048 game.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Rules     RulesConfig     `yaml:"rules"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the default grid dimensions.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// RulesConfig defines the end-of-game rules.
type RulesConfig struct {
	WinThreshold int `yaml:"win_threshold"` // Tile value that wins the game
}

// SpawnConfig defines how new tiles appear.
type SpawnConfig struct {
	InitialTiles int     `yaml:"initial_tiles"` // Tiles placed on a fresh board, at least one
	Count        int     `yaml:"count"`         // Tiles placed after every move
	Value        int     `yaml:"value"`         // Value of a spawned tile
	DoubleChance float64 `yaml:"double_chance"` // Probability a spawn is 2*value instead
}

// AnimationConfig defines transition lengths in ticks.
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks"` // 0 settles a move instantly
	PopTicks   int `yaml:"pop_ticks"`
}

// Validate checks the configuration for values the game cannot run with.
func (c T2048Config) Validate() error {
	var errs []error

	if c.Board.Rows <= 0 || c.Board.Rows > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.rows must be in 1..%d, got %d", MaxBoardSize, c.Board.Rows))
	}
	if c.Board.Cols <= 0 || c.Board.Cols > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.cols must be in 1..%d, got %d", MaxBoardSize, c.Board.Cols))
	}
	if !isPowerOfTwo(c.Rules.WinThreshold) {
		errs = append(errs, fmt.Errorf("rules.win_threshold must be a power of two >= 2, got %d", c.Rules.WinThreshold))
	}
	if !isPowerOfTwo(c.Spawn.Value) {
		errs = append(errs, fmt.Errorf("spawn.value must be a power of two >= 2, got %d", c.Spawn.Value))
	}
	if c.Spawn.InitialTiles <= 0 {
		errs = append(errs, fmt.Errorf("spawn.initial_tiles must be positive, got %d", c.Spawn.InitialTiles))
	}
	if cells := c.Board.Rows * c.Board.Cols; cells > 0 && c.Spawn.InitialTiles > cells {
		errs = append(errs, fmt.Errorf("spawn.initial_tiles %d exceeds the %d cells of the board", c.Spawn.InitialTiles, cells))
	}
	if c.Spawn.Count < 0 {
		errs = append(errs, fmt.Errorf("spawn.count must not be negative, got %d", c.Spawn.Count))
	}
	if c.Spawn.DoubleChance < 0 || c.Spawn.DoubleChance > 1 {
		errs = append(errs, fmt.Errorf("spawn.double_chance must be in [0,1], got %g", c.Spawn.DoubleChance))
	}
	if c.Animation.SlideTicks < 0 {
		errs = append(errs, fmt.Errorf("animation.slide_ticks must not be negative, got %d", c.Animation.SlideTicks))
	}
	if c.Animation.PopTicks < 0 {
		errs = append(errs, fmt.Errorf("animation.pop_ticks must not be negative, got %d", c.Animation.PopTicks))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid t2048 config: %w", errors.Join(errs...))
	}
	return nil
}

// WithSize returns a copy of c using the given board dimensions.
func (c T2048Config) WithSize(rows, cols int) T2048Config {
	c.Board.Rows = rows
	c.Board.Cols = cols
	return c
}

func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
