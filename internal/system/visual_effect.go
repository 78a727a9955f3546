// internal/system/visual_effect.go
package system

import (
	"go-village-defense/internal/entity"
)

// VisualEffectSystem управляет визуальными эффектами, такими как вспышки урона.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	for id, flash := range s.ecs.DamageFlashes {
		flash.Timer -= deltaTime
		if flash.Timer <= 0 {
			delete(s.ecs.DamageFlashes, id)
		}
	}

	for _, id := range entity.SortedIDs(s.ecs.Fades) {
		fade := s.ecs.Fades[id]
		fade.CurrentTimer += deltaTime
		if fade.CurrentTimer >= fade.Duration {
			s.ecs.RemoveEntity(id)
			continue
		}
		// Круг сжимается к концу эффекта
		if renderable, ok := s.ecs.Renderables[id]; ok {
			progress := fade.CurrentTimer / fade.Duration
			renderable.Radius = fade.StartRadius * (1 - progress)
		}
	}
}

// ClearEffects убирает все следы, например при перезапуске уровня.
func (s *VisualEffectSystem) ClearEffects() {
	for _, id := range entity.SortedIDs(s.ecs.Fades) {
		s.ecs.RemoveEntity(id)
	}
	for id := range s.ecs.DamageFlashes {
		delete(s.ecs.DamageFlashes, id)
	}
}
