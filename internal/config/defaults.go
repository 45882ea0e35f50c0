package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Rows: 4,
			Cols: 4,
		},
		Rules: RulesConfig{
			WinThreshold: 2048,
		},
		Spawn: SpawnConfig{
			InitialTiles: 2,
			Count:        1,
			Value:        2,
			DoubleChance: 0.0,
		},
		Animation: AnimationConfig{
			SlideTicks: 8,
			PopTicks:   6,
		},
	}
}
