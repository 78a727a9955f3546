// internal/app/level.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/event"
	"go-village-defense/internal/ledger"
	"go-village-defense/internal/system"
	"go-village-defense/internal/types"
	"go-village-defense/internal/village"
)

// OutcomeFunc получает исход попытки уровня.
type OutcomeFunc func(levelID string, outcome component.Phase, attemptID string)

// Level holds one level's state: ECS, systems and the wave sequencer.
type Level struct {
	Config             *defs.LevelConfig
	ECS                *entity.ECS
	EventDispatcher    *event.Dispatcher
	Events             *event.Queue
	Village            *village.Health
	Sequencer          *system.WaveSequencer
	MovementSystem     *system.MovementSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	VisualEffectSystem *system.VisualEffectSystem
	EconomySystem      *system.EconomySystem
	SpeedMultiplier    float64

	ledger    *ledger.Ledger
	units     map[string]defs.UnitDefinition
	path      []component.Position
	gameTime  float64
	onOutcome OutcomeFunc
}

// NewLevel собирает уровень. Некорректная конфигурация отклоняется здесь же.
func NewLevel(cfg *defs.LevelConfig, l *ledger.Ledger, units []defs.UnitDefinition) (*Level, error) {
	if cfg == nil {
		return nil, errors.New("level config is required")
	}
	if l == nil {
		return nil, errors.New("ledger is required")
	}
	if len(units) == 0 {
		units = defs.DefaultUnits()
	}
	if err := defs.ValidateUnits(units); err != nil {
		return nil, fmt.Errorf("level %s: %w", cfg.ID, err)
	}

	health, err := village.NewHealth(cfg.VillageHealth)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", cfg.ID, err)
	}

	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	queue := event.NewQueue()
	lvl := &Level{
		Config:             cfg,
		ECS:                ecs,
		EventDispatcher:    eventDispatcher,
		Events:             queue,
		Village:            health,
		MovementSystem:     system.NewMovementSystem(ecs, queue),
		CombatSystem:       system.NewCombatSystem(ecs, l),
		ProjectileSystem:   system.NewProjectileSystem(ecs, queue),
		VisualEffectSystem: system.NewVisualEffectSystem(ecs),
		EconomySystem:      system.NewEconomySystem(l, eventDispatcher),
		SpeedMultiplier:    1,
		ledger:             l,
		units:              make(map[string]defs.UnitDefinition, len(units)),
		path:               make([]component.Position, len(cfg.Path)),
	}
	for _, u := range units {
		lvl.units[u.ID] = u
	}
	for i, p := range cfg.Path {
		lvl.path[i] = component.Position{X: p.X, Y: p.Y}
	}

	lvl.Sequencer, err = system.NewWaveSequencer(cfg, health, lvl, queue, eventDispatcher)
	if err != nil {
		return nil, err
	}
	return lvl, nil
}

// SetOutcomeHandler задаёт, кому сообщать о победе или поражении.
func (l *Level) SetOutcomeHandler(fn OutcomeFunc) {
	l.onOutcome = fn
}

// Update продвигает уровень на один тик и раздаёт накопленные события.
func (l *Level) Update(deltaTime float64) {
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	dt := deltaTime * l.SpeedMultiplier
	l.VisualEffectSystem.Update(dt)
	if !l.Sequencer.Running() {
		return
	}
	l.gameTime += dt

	l.CombatSystem.Update(dt)
	l.ProjectileSystem.Update(dt)
	l.Sequencer.Update(dt)
	l.MovementSystem.Update(dt)
	l.Events.Drain(l.EventDispatcher)
}

// StartGame начинает попытку заново. Поставленные юниты остаются на поле.
func (l *Level) StartGame() {
	l.gameTime = 0
	l.EconomySystem.Reset()
	for _, combat := range l.ECS.Combats {
		combat.Timer = 0
		combat.Target = 0
	}
	l.Sequencer.StartGame()
	// WaveStarted первой волны доставляем сразу, до первого тика
	l.Events.Drain(l.EventDispatcher)
}

func (l *Level) StopGame() {
	l.Sequencer.StopGame()
	l.ClearProjectiles()
}

func (l *Level) Running() bool                  { return l.Sequencer.Running() }
func (l *Level) Outcome() component.Phase       { return l.Sequencer.Outcome() }
func (l *Level) GameTime() float64              { return l.gameTime }
func (l *Level) Path() []component.Position     { return l.path }
func (l *Level) Ledger() *ledger.Ledger         { return l.ledger }
func (l *Level) WaveState() component.WaveState { return l.Sequencer.State() }

// LevelID implements interfaces.LevelContext.
func (l *Level) LevelID() string { return l.Config.ID }

// SpawnEnemy implements interfaces.LevelContext.
func (l *Level) SpawnEnemy(waveIndex int) (types.EntityID, error) {
	if waveIndex < 0 || waveIndex >= len(l.Config.Waves) {
		return 0, fmt.Errorf("wave index %d out of range", waveIndex)
	}
	enemyID := l.Config.Waves[waveIndex].Enemy
	def, ok := l.Config.Enemy(enemyID)
	if !ok {
		return 0, fmt.Errorf("enemy definition not found for ID: %s", enemyID)
	}

	points := make([]component.Position, len(l.path))
	copy(points, l.path)

	id := l.ECS.NewEntity()
	l.ECS.Positions[id] = &component.Position{X: points[0].X, Y: points[0].Y}
	l.ECS.Velocities[id] = &component.Velocity{Speed: def.Speed}
	l.ECS.Paths[id] = &component.Path{Points: points, CurrentIndex: 0}
	l.ECS.Healths[id] = &component.Health{Current: def.Health, Max: def.Health}
	l.ECS.Renderables[id] = &component.Renderable{
		Color:  config.EnemyColor,
		Radius: config.EnemyRadius,
	}
	l.ECS.Enemies[id] = &component.Enemy{
		DefID:      def.ID,
		Wave:       waveIndex,
		GoldReward: def.GoldReward,
	}
	l.Events.Push(event.Event{
		Type: event.EnemySpawned,
		Data: event.EnemyData{ID: id, DefID: def.ID, Wave: waveIndex, GoldReward: def.GoldReward},
	})
	return id, nil
}

// ClearEnemies implements interfaces.LevelContext.
func (l *Level) ClearEnemies() {
	for _, id := range entity.SortedIDs(l.ECS.Enemies) {
		l.ECS.RemoveEntity(id)
	}
	l.ClearProjectiles()
	l.VisualEffectSystem.ClearEffects()
}

func (l *Level) ClearProjectiles() {
	for _, id := range entity.SortedIDs(l.ECS.Projectiles) {
		l.ECS.RemoveEntity(id)
	}
}

// OnLevelWon implements interfaces.LevelContext.
func (l *Level) OnLevelWon(attemptID string) {
	l.ledger.CompleteLevel(l.Config.ID)
	if l.Config.RewardGold > 0 {
		if err := l.ledger.AddGold(l.Config.RewardGold); err != nil {
			log.Printf("[Level] %s: reward rejected: %v", l.Config.ID, err)
		}
	}
	if l.onOutcome != nil {
		l.onOutcome(l.Config.ID, component.PhaseWon, attemptID)
	}
}

// OnLevelLost implements interfaces.LevelContext.
func (l *Level) OnLevelLost(attemptID string) {
	if l.onOutcome != nil {
		l.onOutcome(l.Config.ID, component.PhaseLost, attemptID)
	}
}
