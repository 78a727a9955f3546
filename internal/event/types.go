// internal/event/types.go
package event

import (
	"go-village-defense/internal/component"
	"go-village-defense/internal/types"
)

const (
	EnemySpawned    EventType = "EnemySpawned"    // Враг появился на старте пути
	EnemyReachedEnd EventType = "EnemyReachedEnd" // Враг дошёл до деревни
	EnemyDestroyed  EventType = "EnemyDestroyed"  // Враг уничтожен
	WaveStarted     EventType = "WaveStarted"
	WaveResolved    EventType = "WaveResolved" // Все враги волны отчитались, урон применён
	VillageDamaged  EventType = "VillageDamaged"
	LevelWon        EventType = "LevelWon"
	LevelLost       EventType = "LevelLost"
	UnitPlaced      EventType = "UnitPlaced"
)

// EnemyData — данные для EnemySpawned/EnemyReachedEnd/EnemyDestroyed
type EnemyData struct {
	ID         types.EntityID
	DefID      string
	Wave       int
	GoldReward int
	Outcome    component.Outcome
}

// WaveData — данные для WaveStarted/WaveResolved
type WaveData struct {
	Index         int
	EnemyCount    int
	ReachedEnd    int
	VillageHealth int
}

// VillageDamagedData — сколько урона нанесено и что осталось
type VillageDamagedData struct {
	Wave      int
	Amount    int
	Health    int
	Destroyed bool
}

// OutcomeData — данные для LevelWon/LevelLost
type OutcomeData struct {
	LevelID   string
	AttemptID string
	Wave      int
}

// UnitPlacedData — данные для UnitPlaced
type UnitPlacedData struct {
	ID    types.EntityID
	DefID string
	X, Y  float64
}
