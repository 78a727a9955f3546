// internal/defs/levels.go
package defs

import (
	"fmt"

	"go-village-defense/internal/config"

	"gopkg.in/yaml.v3"
)

// WaveSpec описывает одну волну: сколько врагов и с каким интервалом.
type WaveSpec struct {
	Enemy      string  `yaml:"enemy"`      // ID врага, по умолчанию первый из enemies
	EnemyCount int     `yaml:"count"`      // > 0
	SpawnDelay float64 `yaml:"spawnDelay"` // >= 0, сек

	delayOmitted bool // в YAML не было spawnDelay
}

func (w *WaveSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enemy      string   `yaml:"enemy"`
		Count      int      `yaml:"count"`
		SpawnDelay *float64 `yaml:"spawnDelay"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	w.Enemy = raw.Enemy
	w.EnemyCount = raw.Count
	w.delayOmitted = raw.SpawnDelay == nil
	if raw.SpawnDelay != nil {
		w.SpawnDelay = *raw.SpawnDelay
	}
	return nil
}

// DamageConfig — политика урона по деревне.
type DamageConfig struct {
	Policy        DamagePolicy `yaml:"policy"`
	Schedule      []DamageStep `yaml:"schedule"`      // для scripted*, индекс — номер волны
	ArrivalDamage int          `yaml:"arrivalDamage"` // для per_arrival
}

// LevelConfig — всё, что нужно секвенсору для одного уровня.
// После загрузки не меняется.
type LevelConfig struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Order         int               `yaml:"order"` // позиция на карте уровней
	VillageHealth int               `yaml:"villageHealth"`
	WaveDelay     float64           `yaml:"waveDelay"`
	Path          []Point           `yaml:"path"`
	Enemies       []EnemyDefinition `yaml:"enemies"`
	Waves         []WaveSpec        `yaml:"waves"`
	Damage        DamageConfig      `yaml:"damage"`
	RewardGold    int               `yaml:"rewardGold"` // бонус за прохождение
	SpawnDelay    *float64          `yaml:"spawnDelay"` // общий интервал по умолчанию для волн
}

// Enemy возвращает определение врага по ID.
func (c *LevelConfig) Enemy(id string) (EnemyDefinition, bool) {
	for _, e := range c.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return EnemyDefinition{}, false
}

// DamageStepFor возвращает шаг таблицы для волны waveIndex.
// Волны за пределами таблицы урона не наносят.
func (c *LevelConfig) DamageStepFor(waveIndex int) DamageStep {
	if waveIndex < 0 || waveIndex >= len(c.Damage.Schedule) {
		return DamageStep{Kind: StepNone}
	}
	return c.Damage.Schedule[waveIndex]
}

// ApplyDefaults заполняет необязательные поля.
func (c *LevelConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "Level " + c.ID
	}
	if c.VillageHealth == 0 {
		c.VillageHealth = config.VillageMaxHealth
	}
	if c.WaveDelay == 0 {
		c.WaveDelay = config.WaveDelay
	}
	if len(c.Enemies) == 0 {
		c.Enemies = []EnemyDefinition{DefaultEnemy()}
	}
	for i := range c.Enemies {
		e := &c.Enemies[i]
		if e.Name == "" {
			e.Name = e.ID
		}
		if e.Health == 0 {
			e.Health = config.EnemyHealth
		}
		if e.Speed == 0 {
			e.Speed = config.EnemySpeed
		}
	}
	spawnDelay := config.SpawnDelay
	if c.SpawnDelay != nil {
		spawnDelay = *c.SpawnDelay
	}
	for i := range c.Waves {
		w := &c.Waves[i]
		if w.Enemy == "" {
			w.Enemy = c.Enemies[0].ID
		}
		if w.delayOmitted {
			w.SpawnDelay = spawnDelay
			w.delayOmitted = false
		}
	}
	if c.Damage.Policy == "" {
		c.Damage.Policy = DamageScripted
	}
	if c.Damage.Policy.UsesSchedule() && len(c.Damage.Schedule) == 0 {
		c.Damage.Schedule = DefaultSchedule(len(c.Waves))
	}
	if c.Damage.Policy == DamagePerArrival && c.Damage.ArrivalDamage == 0 {
		c.Damage.ArrivalDamage = config.ArrivalDamage
	}
}

// DefaultSchedule: первая волна без урона, последняя обнуляет деревню,
// промежуточные делят здоровье пополам. Для трёх волн: none, halve, zero.
func DefaultSchedule(waves int) []DamageStep {
	schedule := make([]DamageStep, waves)
	for i := range schedule {
		switch {
		case i == 0:
			schedule[i] = DamageStep{Kind: StepNone}
		case i == waves-1:
			schedule[i] = DamageStep{Kind: StepZero}
		default:
			schedule[i] = DamageStep{Kind: StepHalve}
		}
	}
	return schedule
}

// Validate проверяет конфигурацию уровня. Уровень с ошибкой не создаётся.
func (c *LevelConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("level ID is required")
	}
	if len(c.Path) < 2 {
		return fmt.Errorf("level %s: path needs at least 2 points, got %d", c.ID, len(c.Path))
	}
	if c.VillageHealth <= 0 {
		return fmt.Errorf("level %s: villageHealth must be positive, got %d", c.ID, c.VillageHealth)
	}
	if c.WaveDelay < 0 {
		return fmt.Errorf("level %s: waveDelay cannot be negative", c.ID)
	}
	if c.RewardGold < 0 {
		return fmt.Errorf("level %s: rewardGold cannot be negative", c.ID)
	}

	seen := make(map[string]bool, len(c.Enemies))
	for i, e := range c.Enemies {
		if e.ID == "" {
			return fmt.Errorf("level %s: enemies[%d]: id is required", c.ID, i)
		}
		if seen[e.ID] {
			return fmt.Errorf("level %s: duplicate enemy id %q", c.ID, e.ID)
		}
		seen[e.ID] = true
		if e.Health <= 0 || e.Speed <= 0 {
			return fmt.Errorf("level %s: enemy %s: health and speed must be positive", c.ID, e.ID)
		}
		if e.GoldReward < 0 {
			return fmt.Errorf("level %s: enemy %s: goldReward cannot be negative", c.ID, e.ID)
		}
	}

	if len(c.Waves) == 0 {
		return fmt.Errorf("level %s: at least one wave is required", c.ID)
	}
	for i, w := range c.Waves {
		if w.EnemyCount <= 0 {
			return fmt.Errorf("level %s: wave %d: count must be at least 1, got %d", c.ID, i, w.EnemyCount)
		}
		if w.SpawnDelay < 0 {
			return fmt.Errorf("level %s: wave %d: spawnDelay cannot be negative", c.ID, i)
		}
		if !seen[w.Enemy] {
			return fmt.Errorf("level %s: wave %d: unknown enemy %q", c.ID, i, w.Enemy)
		}
	}

	switch c.Damage.Policy {
	case DamageScripted, DamageScriptedBreach:
		if len(c.Damage.Schedule) != len(c.Waves) {
			return fmt.Errorf("level %s: damage schedule has %d steps for %d waves", c.ID, len(c.Damage.Schedule), len(c.Waves))
		}
	case DamagePerArrival:
		if c.Damage.ArrivalDamage < 0 {
			return fmt.Errorf("level %s: arrivalDamage cannot be negative", c.ID)
		}
	default:
		return fmt.Errorf("level %s: damage policy must be one of: scripted, scripted_breach, per_arrival, got %q", c.ID, c.Damage.Policy)
	}
	return nil
}
