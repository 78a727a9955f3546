// internal/app/snapshot.go
package app

import (
	"go-village-defense/internal/entity"
	"go-village-defense/internal/types"
)

// EnemyView — то, что слой отрисовки знает о враге.
type EnemyView struct {
	ID        types.EntityID `yaml:"id"`
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	Alive     bool           `yaml:"alive"`
	Health    int            `yaml:"health"`
	MaxHealth int            `yaml:"maxHealth"`
}

type UnitView struct {
	ID    types.EntityID `yaml:"id"`
	DefID string         `yaml:"defId"`
	X     float64        `yaml:"x"`
	Y     float64        `yaml:"y"`
}

type ProjectileView struct {
	ID types.EntityID `yaml:"id"`
	X  float64        `yaml:"x"`
	Y  float64        `yaml:"y"`
}

// Snapshot — состояние уровня на момент вызова. Копия, не ссылается на ECS.
type Snapshot struct {
	LevelID       string           `yaml:"levelId"`
	AttemptID     string           `yaml:"attemptId"`
	Phase         string           `yaml:"phase"`
	Running       bool             `yaml:"running"`
	WaveIndex     int              `yaml:"waveIndex"`
	WaveCount     int              `yaml:"waveCount"`
	Spawned       int              `yaml:"spawned"`
	Resolved      int              `yaml:"resolved"`
	VillageHealth int              `yaml:"villageHealth"`
	VillageMax    int              `yaml:"villageMax"`
	Gold          int              `yaml:"gold"`
	GameTime      float64          `yaml:"gameTime"`
	Enemies       []EnemyView      `yaml:"enemies,omitempty"`
	Units         []UnitView       `yaml:"units,omitempty"`
	Projectiles   []ProjectileView `yaml:"projectiles,omitempty"`
}

func (l *Level) Snapshot() Snapshot {
	st := l.Sequencer.State()
	snap := Snapshot{
		LevelID:       l.Config.ID,
		AttemptID:     l.Sequencer.AttemptID(),
		Phase:         st.Phase.String(),
		Running:       l.Running(),
		WaveIndex:     st.Index,
		WaveCount:     l.Sequencer.WaveCount(),
		Spawned:       st.Spawned,
		Resolved:      st.Resolved,
		VillageHealth: l.Village.Current(),
		VillageMax:    l.Village.Max(),
		Gold:          l.ledger.Gold(),
		GameTime:      l.gameTime,
	}
	for _, id := range l.ECS.EnemyIDs() {
		pos, ok := l.ECS.Positions[id]
		if !ok {
			continue
		}
		view := EnemyView{ID: id, X: pos.X, Y: pos.Y, Alive: l.ECS.IsActiveEnemy(id)}
		if h, ok := l.ECS.Healths[id]; ok {
			view.Health, view.MaxHealth = h.Current, h.Max
		}
		snap.Enemies = append(snap.Enemies, view)
	}
	for _, id := range entity.SortedIDs(l.ECS.Units) {
		if pos, ok := l.ECS.Positions[id]; ok {
			snap.Units = append(snap.Units, UnitView{ID: id, DefID: l.ECS.Units[id].DefID, X: pos.X, Y: pos.Y})
		}
	}
	for _, id := range entity.SortedIDs(l.ECS.Projectiles) {
		if pos, ok := l.ECS.Positions[id]; ok {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: id, X: pos.X, Y: pos.Y})
		}
	}
	return snap
}
