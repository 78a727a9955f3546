// internal/defs/units.go
package defs

import (
	"fmt"

	"go-village-defense/internal/config"
)

// UnitDefinition holds all the static data for a player-placed shooter.
type UnitDefinition struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Slot           int     `yaml:"slot"`      // слот магазина, который нужно купить
	PlaceCost      int     `yaml:"placeCost"` // цена установки на поле
	Range          float64 `yaml:"range"`
	Cooldown       float64 `yaml:"cooldown"`
	Damage         int     `yaml:"damage"`
	BulletSpeed    float64 `yaml:"bulletSpeed"`
	BulletLifetime float64 `yaml:"bulletLifetime"`
}

// DefaultUnits — три стрелка, по одному на слот магазина.
func DefaultUnits() []UnitDefinition {
	base := UnitDefinition{
		Range:          config.UnitRange,
		Cooldown:       config.UnitCooldown,
		Damage:         config.UnitDamage,
		BulletSpeed:    config.BulletSpeed,
		BulletLifetime: config.BulletLifetime,
	}
	units := make([]UnitDefinition, 0, 3)
	for i, cost := range []int{25, 45, 75} {
		u := base
		u.ID = fmt.Sprintf("unit%d", i+1)
		u.Name = fmt.Sprintf("Archer %d", i+1)
		u.Slot = i + 1
		u.PlaceCost = cost
		u.Damage = base.Damage + i
		units = append(units, u)
	}
	return units
}

func validateUnit(u UnitDefinition) error {
	switch {
	case u.ID == "":
		return fmt.Errorf("unit id is required")
	case u.Slot < 1:
		return fmt.Errorf("unit %s: slot must be at least 1, got %d", u.ID, u.Slot)
	case u.PlaceCost < 0:
		return fmt.Errorf("unit %s: placeCost cannot be negative", u.ID)
	case u.Range <= 0:
		return fmt.Errorf("unit %s: range must be positive", u.ID)
	case u.Cooldown <= 0:
		return fmt.Errorf("unit %s: cooldown must be positive", u.ID)
	case u.Damage < 0:
		return fmt.Errorf("unit %s: damage cannot be negative", u.ID)
	case u.BulletSpeed <= 0 || u.BulletLifetime <= 0:
		return fmt.Errorf("unit %s: bullet speed and lifetime must be positive", u.ID)
	}
	return nil
}
