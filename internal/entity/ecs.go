// internal/entity/ecs.go
package entity

import (
	"errors"
	"sort"

	"go-village-defense/internal/component"
	"go-village-defense/internal/types"
)

// ErrNegativeDamage — урон по врагу не может быть отрицательным.
var ErrNegativeDamage = errors.New("enemy: negative damage")

type ECS struct {
	NextID        types.EntityID
	Positions     map[types.EntityID]*component.Position
	Velocities    map[types.EntityID]*component.Velocity
	Paths         map[types.EntityID]*component.Path
	Healths       map[types.EntityID]*component.Health
	Renderables   map[types.EntityID]*component.Renderable
	Enemies       map[types.EntityID]*component.Enemy
	Units         map[types.EntityID]*component.Unit
	Combats       map[types.EntityID]*component.Combat
	Projectiles   map[types.EntityID]*component.Projectile
	DamageFlashes map[types.EntityID]*component.DamageFlash
	Fades         map[types.EntityID]*component.FadeEffect
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Positions:     make(map[types.EntityID]*component.Position),
		Velocities:    make(map[types.EntityID]*component.Velocity),
		Paths:         make(map[types.EntityID]*component.Path),
		Healths:       make(map[types.EntityID]*component.Health),
		Renderables:   make(map[types.EntityID]*component.Renderable),
		Enemies:       make(map[types.EntityID]*component.Enemy),
		Units:         make(map[types.EntityID]*component.Unit),
		Combats:       make(map[types.EntityID]*component.Combat),
		Projectiles:   make(map[types.EntityID]*component.Projectile),
		DamageFlashes: make(map[types.EntityID]*component.DamageFlash),
		Fades:         make(map[types.EntityID]*component.FadeEffect),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity удаляет все компоненты сущности.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Renderables, id)
	delete(ecs.Enemies, id)
	delete(ecs.Units, id)
	delete(ecs.Combats, id)
	delete(ecs.Projectiles, id)
	delete(ecs.DamageFlashes, id)
	delete(ecs.Fades, id)
}

// ResolveEnemy переводит врага в терминальное состояние.
// Возвращает копию компонента и true только при первом вызове для данного врага:
// это единственная точка, после которой отправляются ReachedEnd/Destroyed.
func (ecs *ECS) ResolveEnemy(id types.EntityID, outcome component.Outcome) (component.Enemy, bool) {
	enemy, ok := ecs.Enemies[id]
	if !ok || enemy.Resolved || outcome == component.OutcomeNone {
		return component.Enemy{}, false
	}
	enemy.Resolved = true
	enemy.Outcome = outcome
	resolved := *enemy
	ecs.RemoveEntity(id)
	return resolved, true
}

// IsActiveEnemy — враг существует и ещё не отчитался.
func (ecs *ECS) IsActiveEnemy(id types.EntityID) bool {
	enemy, ok := ecs.Enemies[id]
	return ok && !enemy.Resolved
}

// EnemyIDs возвращает ID врагов в порядке создания.
func (ecs *ECS) EnemyIDs() []types.EntityID {
	return SortedIDs(ecs.Enemies)
}

// SortedIDs возвращает ключи карты компонентов по возрастанию,
// чтобы системы обходили сущности детерминированно.
func SortedIDs[T any](m map[types.EntityID]T) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
