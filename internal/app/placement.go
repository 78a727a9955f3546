// internal/app/placement.go
package app

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/event"
	"go-village-defense/internal/types"
	"go-village-defense/internal/utils"
)

var (
	ErrGameNotStarted   = errors.New("game is not running")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrSlotNotOwned     = errors.New("unit slot is not purchased")
	ErrInvalidPlacement = errors.New("cannot place a unit here")
	ErrInsufficientGold = errors.New("not enough gold")
)

// PathClearance — минимальное расстояние от юнита до дороги врагов.
const PathClearance = 0.6

// PlaceUnit ставит юнита в точку (x, y) мира и списывает его цену.
func (l *Level) PlaceUnit(unitID string, x, y float64) (types.EntityID, error) {
	if !l.Running() {
		return 0, ErrGameNotStarted
	}
	def, ok := l.units[unitID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, unitID)
	}
	if !l.ledger.OwnsSlot(def.Slot) {
		return 0, fmt.Errorf("%w: slot %d", ErrSlotNotOwned, def.Slot)
	}
	if !l.CanPlaceUnit(x, y) {
		return 0, ErrInvalidPlacement
	}
	if !l.ledger.SpendGold(def.PlaceCost) {
		return 0, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientGold, def.ID, def.PlaceCost, l.ledger.Gold())
	}

	id := l.createUnitEntity(def, x, y)
	l.Events.Push(event.Event{
		Type: event.UnitPlaced,
		Data: event.UnitPlacedData{ID: id, DefID: def.ID, X: x, Y: y},
	})
	log.Printf("[Level] %s: placed %s at (%.1f, %.1f) for %d gold", l.Config.ID, def.ID, x, y, def.PlaceCost)
	return id, nil
}

// CanPlaceUnit: не на дороге и не поверх другого юнита.
func (l *Level) CanPlaceUnit(x, y float64) bool {
	for i := 1; i < len(l.path); i++ {
		if distanceToSegment(x, y, l.path[i-1], l.path[i]) < PathClearance {
			return false
		}
	}
	for _, id := range entity.SortedIDs(l.ECS.Units) {
		pos, ok := l.ECS.Positions[id]
		if ok && utils.Distance(x, y, pos.X, pos.Y) < 2*config.UnitRadius {
			return false
		}
	}
	return true
}

// UnitDefinition возвращает определение юнита по ID.
func (l *Level) UnitDefinition(id string) (defs.UnitDefinition, bool) {
	def, ok := l.units[id]
	return def, ok
}

func (l *Level) createUnitEntity(def defs.UnitDefinition, x, y float64) types.EntityID {
	id := l.ECS.NewEntity()
	l.ECS.Positions[id] = &component.Position{X: x, Y: y}
	l.ECS.Units[id] = &component.Unit{DefID: def.ID, Slot: def.Slot}
	l.ECS.Combats[id] = &component.Combat{
		Cooldown:       def.Cooldown,
		Range:          def.Range,
		Damage:         def.Damage,
		BulletSpeed:    def.BulletSpeed,
		BulletLifetime: def.BulletLifetime,
	}
	l.ECS.Renderables[id] = &component.Renderable{
		Color:     unitColor(def.Slot),
		Radius:    config.UnitRadius,
		HasStroke: true,
	}
	return id
}

func unitColor(slot int) color.RGBA {
	if slot >= 1 && slot <= len(config.UnitColors) {
		return config.UnitColors[slot-1]
	}
	return config.UnitColors[0]
}

func distanceToSegment(x, y float64, a, b component.Position) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return utils.Distance(x, y, a.X, a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / lengthSq
	t = utils.Clamp01(t)
	return utils.Distance(x, y, a.X+t*dx, a.Y+t*dy)
}

// EntityAt ищет юнита или активного врага под точкой (x, y) мира.
// Юниты проверяются первыми: они неподвижны и по ним кликают чаще.
func (l *Level) EntityAt(x, y float64) (types.EntityID, bool) {
	for _, id := range entity.SortedIDs(l.ECS.Units) {
		if pos, ok := l.ECS.Positions[id]; ok && utils.Distance(x, y, pos.X, pos.Y) <= config.UnitRadius*1.5 {
			return id, true
		}
	}
	for _, id := range l.ECS.EnemyIDs() {
		if !l.ECS.IsActiveEnemy(id) {
			continue
		}
		if pos, ok := l.ECS.Positions[id]; ok && utils.Distance(x, y, pos.X, pos.Y) <= config.EnemyRadius*1.5 {
			return id, true
		}
	}
	return 0, false
}
