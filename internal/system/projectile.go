// internal/system/projectile.go
package system

import (
	"log"
	"math"

	"go-village-defense/internal/config"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/event"
	"go-village-defense/internal/types"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	ecs   *entity.ECS
	queue *event.Queue
}

func NewProjectileSystem(ecs *entity.ECS, queue *event.Queue) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, queue: queue}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		pos := s.ecs.Positions[id]
		if pos == nil {
			s.removeProjectile(id)
			continue
		}

		proj.Age += deltaTime
		if proj.Age >= proj.Lifetime {
			s.removeProjectile(id)
			continue
		}

		// Цель пропала, сразу удаляем снаряд
		targetPos, targetExists := s.ecs.Positions[proj.TargetID]
		if !targetExists || !s.ecs.IsActiveEnemy(proj.TargetID) {
			s.removeProjectile(id)
			continue
		}

		dx := targetPos.X - pos.X
		dy := targetPos.Y - pos.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		step := proj.Speed * deltaTime

		if dist <= step || dist <= config.BulletHitRadius {
			if err := ApplyDamage(s.ecs, s.queue, proj.TargetID, proj.Damage); err != nil {
				log.Printf("[ProjectileSystem] %v", err)
			}
			s.removeProjectile(id)
			continue
		}
		pos.X += dx / dist * step
		pos.Y += dy / dist * step
	}
}

// Вспомогательная функция для удаления снаряда
func (s *ProjectileSystem) removeProjectile(id types.EntityID) {
	delete(s.ecs.Positions, id)
	delete(s.ecs.Projectiles, id)
	delete(s.ecs.Renderables, id)
}
