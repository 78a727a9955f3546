// internal/system/combat.go
package system

import (
	"math"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/types"
	"go-village-defense/internal/utils"
)

// DamageModifier отдаёт общий множитель урона юнитов (улучшения из магазина).
type DamageModifier interface {
	DamageMultiplier() float64
}

// CombatSystem управляет стрельбой юнитов
type CombatSystem struct {
	ecs      *entity.ECS
	modifier DamageModifier
}

func NewCombatSystem(ecs *entity.ECS, modifier DamageModifier) *CombatSystem {
	return &CombatSystem{ecs: ecs, modifier: modifier}
}

func (s *CombatSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Combats) {
		combat := s.ecs.Combats[id]
		pos, hasPos := s.ecs.Positions[id]
		if !hasPos {
			continue
		}

		if combat.Timer > 0 {
			combat.Timer -= deltaTime
			if combat.Timer > 0 {
				continue
			}
		}

		targetID := s.findNearestEnemyInRange(pos, combat.Range)
		if targetID == 0 {
			combat.Timer = 0
			continue
		}
		s.fire(id, pos, targetID, combat)
		combat.Target = targetID
		combat.Timer = combat.Cooldown
	}
}

// ScaledDamage — урон пули с учётом множителя, не меньше 1 при ненулевом базовом.
func (s *CombatSystem) ScaledDamage(base int) int {
	multiplier := 1.0
	if s.modifier != nil {
		multiplier = s.modifier.DamageMultiplier()
	}
	damage := int(math.Round(float64(base) * multiplier))
	if base > 0 && damage < 1 {
		damage = 1
	}
	return damage
}

// findNearestEnemyInRange: при равном расстоянии побеждает меньший ID.
func (s *CombatSystem) findNearestEnemyInRange(from *component.Position, radius float64) types.EntityID {
	var nearest types.EntityID
	best := math.MaxFloat64
	for _, id := range s.ecs.EnemyIDs() {
		if !s.ecs.IsActiveEnemy(id) {
			continue
		}
		enemyPos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		dist := utils.Distance(from.X, from.Y, enemyPos.X, enemyPos.Y)
		if dist <= radius && dist < best {
			best = dist
			nearest = id
		}
	}
	return nearest
}

func (s *CombatSystem) fire(ownerID types.EntityID, from *component.Position, targetID types.EntityID, combat *component.Combat) {
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: from.X, Y: from.Y}
	s.ecs.Projectiles[id] = &component.Projectile{
		OwnerID:  ownerID,
		TargetID: targetID,
		Speed:    combat.BulletSpeed,
		Damage:   s.ScaledDamage(combat.Damage),
		Lifetime: combat.BulletLifetime,
	}
	s.ecs.Renderables[id] = &component.Renderable{
		Color:  config.ProjectileColor,
		Radius: config.BulletRadius,
	}
}
