// internal/system/utils.go
package system

import (
	"fmt"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/event"
	"go-village-defense/internal/types"
)

// ApplyDamage наносит урон врагу. Отрицательный урон — ошибка вызывающего.
// Урон по уже разрешённому или удалённому врагу ничего не делает.
func ApplyDamage(ecs *entity.ECS, queue *event.Queue, entityID types.EntityID, damage int) error {
	if damage < 0 {
		return fmt.Errorf("%w: %d", entity.ErrNegativeDamage, damage)
	}
	if !ecs.IsActiveEnemy(entityID) {
		return nil
	}
	health, hasHealth := ecs.Healths[entityID]
	if !hasHealth {
		return nil
	}

	health.Current -= damage
	if health.Current < 0 {
		health.Current = 0
	}

	if health.Current == 0 {
		resolveEnemy(ecs, queue, entityID, component.OutcomeDestroyed)
		return nil
	}

	// Добавляем или сбрасываем компонент "вспышки"
	if damage > 0 {
		ecs.DamageFlashes[entityID] = &component.DamageFlash{Timer: config.DamageFlashSeconds}
	}
	return nil
}

// resolveEnemy — единственное место, откуда уходят EnemyReachedEnd и EnemyDestroyed.
// Повторный вызов для того же врага ничего не отправляет.
func resolveEnemy(ecs *entity.ECS, queue *event.Queue, id types.EntityID, outcome component.Outcome) bool {
	pos, hasPos := ecs.Positions[id]
	renderable, hasRenderable := ecs.Renderables[id]
	enemy, ok := ecs.ResolveEnemy(id, outcome)
	if !ok {
		return false
	}
	if outcome == component.OutcomeDestroyed && hasPos && hasRenderable {
		spawnFade(ecs, *pos, *renderable)
	}
	eventType := event.EnemyDestroyed
	if outcome == component.OutcomeReachedEnd {
		eventType = event.EnemyReachedEnd
	}
	queue.Push(event.Event{
		Type: eventType,
		Data: event.EnemyData{
			ID:         id,
			DefID:      enemy.DefID,
			Wave:       enemy.Wave,
			GoldReward: enemy.GoldReward,
			Outcome:    outcome,
		},
	})
	return true
}

// spawnFade оставляет на месте убитого врага затухающий круг. У следа нет
// компонента Enemy, поэтому секвенсор и бой его не видят.
func spawnFade(ecs *entity.ECS, pos component.Position, renderable component.Renderable) {
	id := ecs.NewEntity()
	ecs.Positions[id] = &pos
	renderable.HasStroke = false
	ecs.Renderables[id] = &renderable
	ecs.Fades[id] = &component.FadeEffect{Duration: config.FadeSeconds, StartRadius: renderable.Radius}
}
