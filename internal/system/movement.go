// internal/system/movement.go
package system

import (
	"math"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/event"
)

// MovementSystem ведёт врагов по точкам пути.
type MovementSystem struct {
	ecs   *entity.ECS
	queue *event.Queue
}

func NewMovementSystem(ecs *entity.ECS, queue *event.Queue) *MovementSystem {
	return &MovementSystem{ecs: ecs, queue: queue}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Paths) {
		if !s.ecs.IsActiveEnemy(id) {
			continue
		}
		pos, hasPos := s.ecs.Positions[id]
		vel, hasVel := s.ecs.Velocities[id]
		path := s.ecs.Paths[id]
		if !hasPos || !hasVel {
			continue
		}

		if path.CurrentIndex >= len(path.Points) {
			resolveEnemy(s.ecs, s.queue, id, component.OutcomeReachedEnd)
			continue
		}

		target := path.Points[path.CurrentIndex]
		dx := target.X - pos.X
		dy := target.Y - pos.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		moveDistance := vel.Speed * deltaTime

		if dist <= moveDistance || dist <= config.ArrivalEpsilon {
			pos.X = target.X
			pos.Y = target.Y
			path.CurrentIndex++
			// Прошли последнюю точку — враг у деревни
			if path.CurrentIndex >= len(path.Points) {
				resolveEnemy(s.ecs, s.queue, id, component.OutcomeReachedEnd)
			}
			continue
		}

		pos.X += (dx / dist) * moveDistance
		pos.Y += (dy / dist) * moveDistance
	}
}
