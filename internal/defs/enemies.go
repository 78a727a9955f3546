// internal/defs/enemies.go
package defs

import "go-village-defense/internal/config"

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Health     int     `yaml:"health"`
	Speed      float64 `yaml:"speed"`
	GoldReward int     `yaml:"goldReward"`
}

// DefaultEnemy — враг, которого использует уровень без секции enemies.
func DefaultEnemy() EnemyDefinition {
	return EnemyDefinition{
		ID:         "default",
		Name:       "Goblin",
		Health:     config.EnemyHealth,
		Speed:      config.EnemySpeed,
		GoldReward: config.EnemyGoldReward,
	}
}
