// internal/system/wave.go
package system

import (
	"errors"
	"fmt"
	"log"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/event"
	"go-village-defense/internal/interfaces"
	"go-village-defense/internal/types"
	"go-village-defense/internal/village"

	"github.com/google/uuid"
)

// WaveSequencer ведёт одну попытку уровня: спавн волн, ожидание, урон по деревне, исход.
// Все таймеры — обратные отсчёты в Update, других точек ожидания нет.
type WaveSequencer struct {
	cfg     *defs.LevelConfig
	village *village.Health
	level   interfaces.LevelContext
	queue   *event.Queue

	state       component.WaveState
	active      map[types.EntityID]bool // враги текущей волны, ещё не отчитавшиеся
	gameStarted bool
	attemptID   string
}

// NewWaveSequencer проверяет зависимости и конфигурацию уровня.
func NewWaveSequencer(cfg *defs.LevelConfig, health *village.Health, level interfaces.LevelContext,
	queue *event.Queue, dispatcher *event.Dispatcher) (*WaveSequencer, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("wave sequencer: level config is required")
	case health == nil:
		return nil, errors.New("wave sequencer: village health pool is required")
	case level == nil:
		return nil, errors.New("wave sequencer: level context is required")
	case queue == nil || dispatcher == nil:
		return nil, errors.New("wave sequencer: event queue and dispatcher are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("wave sequencer: %w", err)
	}

	s := &WaveSequencer{
		cfg:     cfg,
		village: health,
		level:   level,
		queue:   queue,
		active:  make(map[types.EntityID]bool),
	}
	dispatcher.Subscribe(event.EnemyReachedEnd, s)
	dispatcher.Subscribe(event.EnemyDestroyed, s)
	return s, nil
}

// StartGame начинает новую попытку с первой волны.
func (s *WaveSequencer) StartGame() {
	s.queue.Clear()
	s.level.ClearEnemies()
	s.active = make(map[types.EntityID]bool)
	s.village.ResetDestroyedFlag()
	s.village.ResetHealth()

	s.gameStarted = true
	s.attemptID = uuid.NewString()
	s.state = component.WaveState{}
	log.Printf("[WaveSequencer] level %s: attempt %s started", s.cfg.ID, s.attemptID)
	s.startWave(0)
}

// StopGame обрывает все ожидания. Номер волны остаётся как был.
func (s *WaveSequencer) StopGame() {
	if !s.gameStarted {
		return
	}
	s.gameStarted = false
	s.state.Phase = component.PhaseIdle
	s.state.Timer = 0
	s.state.Outcome = component.PhaseIdle
	s.active = make(map[types.EntityID]bool)
	log.Printf("[WaveSequencer] level %s: stopped at wave %d", s.cfg.ID, s.state.Index+1)
}

func (s *WaveSequencer) Running() bool              { return s.gameStarted }
func (s *WaveSequencer) State() component.WaveState { return s.state }
func (s *WaveSequencer) AttemptID() string          { return s.attemptID }
func (s *WaveSequencer) ActiveEnemies() int         { return len(s.active) }
func (s *WaveSequencer) WaveCount() int             { return len(s.cfg.Waves) }
func (s *WaveSequencer) Config() *defs.LevelConfig  { return s.cfg }

// Outcome — PhaseWon/PhaseLost после отчёта, иначе PhaseIdle.
func (s *WaveSequencer) Outcome() component.Phase {
	if s.state.Phase.Finished() {
		return s.state.Phase
	}
	return component.PhaseIdle
}

func (s *WaveSequencer) currentWave() defs.WaveSpec {
	return s.cfg.Waves[s.state.Index]
}

// Update продвигает таймеры текущей фазы.
func (s *WaveSequencer) Update(deltaTime float64) {
	if !s.gameStarted {
		return
	}
	switch s.state.Phase {
	case component.PhaseSpawning:
		s.updateSpawning(deltaTime)
	case component.PhaseInterWave:
		s.state.Timer -= deltaTime
		if s.state.Timer <= 0 {
			s.startWave(s.state.Index)
		}
	case component.PhaseSettling:
		s.state.Timer -= deltaTime
		if s.state.Timer <= 0 {
			s.reportOutcome()
		}
	}
	s.checkResolution()
}

// OnEvent считает терминальные события врагов текущей волны.
// События от чужих или уже учтённых врагов отбрасываются.
func (s *WaveSequencer) OnEvent(e event.Event) {
	if e.Type != event.EnemyReachedEnd && e.Type != event.EnemyDestroyed {
		return
	}
	data, ok := e.Data.(event.EnemyData)
	if !ok || !s.gameStarted || !s.active[data.ID] {
		return
	}
	delete(s.active, data.ID)
	s.state.Resolved++
	if e.Type == event.EnemyReachedEnd {
		s.state.ReachedEnd++
	}
	s.checkResolution()
}

func (s *WaveSequencer) startWave(index int) {
	wave := s.cfg.Waves[index]
	s.state.Phase = component.PhaseSpawning
	s.state.Index = index
	s.state.Spawned = 0
	s.state.Resolved = 0
	s.state.ReachedEnd = 0
	s.state.Timer = 0 // первый враг сразу
	s.queue.Push(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveData{Index: index, EnemyCount: wave.EnemyCount, VillageHealth: s.village.Current()},
	})
}

func (s *WaveSequencer) updateSpawning(deltaTime float64) {
	wave := s.currentWave()
	s.state.Timer -= deltaTime
	for s.state.Timer <= 0 && s.state.Spawned < wave.EnemyCount {
		id, err := s.level.SpawnEnemy(s.state.Index)
		if err != nil {
			log.Printf("[WaveSequencer] level %s: spawn failed: %v", s.cfg.ID, err)
			s.StopGame()
			return
		}
		s.active[id] = true
		s.state.Spawned++
		s.state.Timer += wave.SpawnDelay
	}
	if s.state.Spawned == wave.EnemyCount {
		s.state.Phase = component.PhaseAwaitingResolution
		s.state.Timer = 0
	}
}

// checkResolution: волна закончена, когда все заспавнены и все отчитались.
func (s *WaveSequencer) checkResolution() {
	if !s.gameStarted || s.state.Phase != component.PhaseAwaitingResolution {
		return
	}
	if s.state.Resolved < s.currentWave().EnemyCount {
		return
	}
	s.state.Phase = component.PhaseApplyingDamage
	s.applyDamage()
}

func (s *WaveSequencer) applyDamage() {
	index := s.state.Index
	amount := s.waveDamage()
	if err := s.village.TakeDamage(amount); err != nil {
		log.Printf("[WaveSequencer] level %s: %v", s.cfg.ID, err)
	}
	s.queue.Push(event.Event{
		Type: event.VillageDamaged,
		Data: event.VillageDamagedData{
			Wave:      index,
			Amount:    amount,
			Health:    s.village.Current(),
			Destroyed: s.village.Destroyed(),
		},
	})
	s.queue.Push(event.Event{
		Type: event.WaveResolved,
		Data: event.WaveData{
			Index:         index,
			EnemyCount:    s.currentWave().EnemyCount,
			ReachedEnd:    s.state.ReachedEnd,
			VillageHealth: s.village.Current(),
		},
	})
	log.Printf("[WaveSequencer] level %s: wave %d resolved, %d reached the village, damage %d, health %d/%d",
		s.cfg.ID, index+1, s.state.ReachedEnd, amount, s.village.Current(), s.village.Max())

	if s.village.Destroyed() {
		s.settle(component.PhaseLost)
		return
	}
	if index+1 >= len(s.cfg.Waves) {
		s.settle(component.PhaseWon)
		return
	}
	s.state.Index = index + 1
	s.state.Phase = component.PhaseInterWave
	s.state.Timer = s.cfg.WaveDelay
}

// waveDamage считает урон по деревне для текущей волны.
func (s *WaveSequencer) waveDamage() int {
	switch s.cfg.Damage.Policy {
	case defs.DamagePerArrival:
		return s.cfg.Damage.ArrivalDamage * s.state.ReachedEnd
	case defs.DamageScriptedBreach:
		if s.state.ReachedEnd == 0 {
			return 0
		}
	}
	return s.cfg.DamageStepFor(s.state.Index).Damage(s.village.Current())
}

func (s *WaveSequencer) settle(outcome component.Phase) {
	s.state.Phase = component.PhaseSettling
	s.state.Outcome = outcome
	s.state.Timer = config.OutcomeSettleDelay
}

func (s *WaveSequencer) reportOutcome() {
	outcome := s.state.Outcome
	s.state.Phase = outcome
	s.state.Timer = 0
	s.gameStarted = false

	eventType := event.LevelWon
	if outcome == component.PhaseLost {
		eventType = event.LevelLost
	}
	s.queue.Push(event.Event{
		Type: eventType,
		Data: event.OutcomeData{LevelID: s.cfg.ID, AttemptID: s.attemptID, Wave: s.state.Index},
	})
	log.Printf("[WaveSequencer] level %s: %s (attempt %s)", s.cfg.ID, outcome, s.attemptID)

	if outcome == component.PhaseWon {
		s.level.OnLevelWon(s.attemptID)
	} else {
		s.level.OnLevelLost(s.attemptID)
	}
}
