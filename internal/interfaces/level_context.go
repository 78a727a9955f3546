// internal/interfaces/level_context.go
package interfaces

import "go-village-defense/internal/types"

// LevelContext — то, что секвенсор волн требует от уровня.
// Передаётся при создании вместо глобальных менеджеров.
type LevelContext interface {
	LevelID() string
	// SpawnEnemy создаёт врага волны waveIndex в начале пути.
	SpawnEnemy(waveIndex int) (types.EntityID, error)
	// ClearEnemies убирает всех врагов и пули без терминальных событий.
	ClearEnemies()
	OnLevelWon(attemptID string)
	OnLevelLost(attemptID string)
}
