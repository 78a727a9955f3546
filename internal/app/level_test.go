package app

import (
	"errors"
	"testing"

	"go-village-defense/internal/component"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/event"
	"go-village-defense/internal/ledger"
	"go-village-defense/internal/types"
)

const step = 1.0 / 60

func scenarioConfig() *defs.LevelConfig {
	cfg := &defs.LevelConfig{
		ID:            "1",
		VillageHealth: 100,
		Path:          []defs.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Waves: []defs.WaveSpec{
			{EnemyCount: 5, SpawnDelay: 1},
			{EnemyCount: 5, SpawnDelay: 1},
			{EnemyCount: 5, SpawnDelay: 1},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

type eventLog struct {
	events   []event.Event
	terminal map[types.EntityID]int
}

func (e *eventLog) OnEvent(ev event.Event) {
	e.events = append(e.events, ev)
	if data, ok := ev.Data.(event.EnemyData); ok && ev.Type != event.EnemySpawned {
		e.terminal[data.ID]++
	}
}

func subscribeAll(lvl *Level) *eventLog {
	log := &eventLog{terminal: make(map[types.EntityID]int)}
	for _, typ := range []event.EventType{event.EnemySpawned, event.EnemyReachedEnd, event.EnemyDestroyed,
		event.WaveStarted, event.WaveResolved, event.VillageDamaged, event.LevelWon, event.LevelLost, event.UnitPlaced} {
		lvl.EventDispatcher.Subscribe(typ, log)
	}
	return log
}

func runLevel(t *testing.T, lvl *Level, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks && lvl.Running(); i++ {
		lvl.Update(step)
	}
	if lvl.Running() {
		t.Fatalf("level still running after %d ticks: %+v", maxTicks, lvl.WaveState())
	}
}

func TestLevelScriptedScenarioAllReachEnd(t *testing.T) {
	lvl, err := NewLevel(scenarioConfig(), ledger.New(75), nil)
	if err != nil {
		t.Fatal(err)
	}
	var outcomes []component.Phase
	lvl.SetOutcomeHandler(func(levelID string, outcome component.Phase, attemptID string) {
		outcomes = append(outcomes, outcome)
	})
	log := subscribeAll(lvl)

	lvl.StartGame()
	runLevel(t, lvl, 60*120)

	var healths []int
	for _, e := range log.events {
		if e.Type == event.WaveResolved {
			healths = append(healths, e.Data.(event.WaveData).VillageHealth)
		}
	}
	if len(healths) != 3 || healths[0] != 100 || healths[1] != 50 || healths[2] != 0 {
		t.Fatalf("health after each wave = %v, want [100 50 0]", healths)
	}
	if !lvl.Village.Destroyed() {
		t.Error("village must be destroyed")
	}
	if lvl.Outcome() != component.PhaseLost {
		t.Errorf("outcome = %s, want lost", lvl.Outcome())
	}
	if len(outcomes) != 1 || outcomes[0] != component.PhaseLost {
		t.Errorf("outcome handler calls = %v", outcomes)
	}
	if lvl.Ledger().IsLevelCompleted("1") {
		t.Error("lost level must not be completed")
	}
	for id, n := range log.terminal {
		if n != 1 {
			t.Errorf("enemy %d: %d terminal events", id, n)
		}
	}
	if len(log.terminal) != 15 {
		t.Errorf("terminal events for %d enemies, want 15", len(log.terminal))
	}
}

func TestLevelStopGameMidSecondWave(t *testing.T) {
	lvl, err := NewLevel(scenarioConfig(), ledger.New(75), nil)
	if err != nil {
		t.Fatal(err)
	}
	log := subscribeAll(lvl)
	lvl.StartGame()

	for i := 0; i < 60*60; i++ {
		lvl.Update(step)
		st := lvl.WaveState()
		if st.Index == 1 && st.Phase == component.PhaseSpawning && st.Spawned == 3 {
			break
		}
	}
	if st := lvl.WaveState(); st.Index != 1 || st.Spawned != 3 {
		t.Fatalf("did not reach mid-spawn of wave 2: %+v", st)
	}
	gold := lvl.Ledger().Gold()
	lvl.StopGame()

	spawned := 0
	for _, e := range log.events {
		if e.Type == event.EnemySpawned {
			spawned++
		}
	}
	for i := 0; i < 60*30; i++ {
		lvl.Update(step)
	}
	after := 0
	for _, e := range log.events {
		if e.Type == event.EnemySpawned {
			after++
		}
	}
	if after != spawned {
		t.Errorf("%d enemies spawned after StopGame", after-spawned)
	}
	if lvl.Running() {
		t.Error("gameStarted must be false")
	}
	if st := lvl.WaveState(); st.Index != 1 {
		t.Errorf("wave index = %d, want 1", st.Index)
	}
	if lvl.Ledger().Gold() != gold {
		t.Errorf("StopGame changed gold from %d to %d", gold, lvl.Ledger().Gold())
	}
}

func TestLevelWonWithUnits(t *testing.T) {
	cfg := &defs.LevelConfig{
		ID:         "1",
		RewardGold: 25,
		Path:       []defs.Point{{X: 0, Y: 0}, {X: 12, Y: 0}},
		Enemies:    []defs.EnemyDefinition{{ID: "weak", Health: 1, Speed: 1, GoldReward: 5}},
		Waves:      []defs.WaveSpec{{EnemyCount: 3, SpawnDelay: 2}},
		Damage:     defs.DamageConfig{Policy: defs.DamageScriptedBreach},
	}
	cfg.ApplyDefaults()
	l := ledger.New(75)
	lvl, err := NewLevel(cfg, l, nil)
	if err != nil {
		t.Fatal(err)
	}
	log := subscribeAll(lvl)
	lvl.StartGame()

	if _, err := lvl.PlaceUnit("unit1", 3, 1.5); err != nil {
		t.Fatalf("PlaceUnit: %v", err)
	}
	if l.Gold() != 50 {
		t.Fatalf("gold after placement = %d, want 50", l.Gold())
	}
	runLevel(t, lvl, 60*120)

	if lvl.Outcome() != component.PhaseWon {
		t.Fatalf("outcome = %s, want won", lvl.Outcome())
	}
	if !l.IsLevelCompleted("1") {
		t.Error("won level must be completed")
	}
	// 50 после покупки + 3 * 5 за врагов + 25 за уровень
	if l.Gold() != 90 {
		t.Errorf("gold = %d, want 90", l.Gold())
	}
	if lvl.Village.Current() != 100 {
		t.Errorf("village health = %d, want 100", lvl.Village.Current())
	}
	won := 0
	for _, e := range log.events {
		if e.Type == event.LevelWon {
			won++
			if data := e.Data.(event.OutcomeData); data.LevelID != "1" || data.AttemptID == "" {
				t.Errorf("unexpected outcome data %+v", data)
			}
		}
	}
	if won != 1 {
		t.Errorf("LevelWon delivered %d times", won)
	}
}

func TestPlaceUnitRules(t *testing.T) {
	l := ledger.New(30)
	lvl, err := NewLevel(scenarioConfig(), l, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := lvl.PlaceUnit("unit1", 0, 3); !errors.Is(err, ErrGameNotStarted) {
		t.Errorf("before start: %v", err)
	}
	lvl.StartGame()

	if _, err := lvl.PlaceUnit("nope", 0, 3); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("unknown unit: %v", err)
	}
	if _, err := lvl.PlaceUnit("unit2", 0, 3); !errors.Is(err, ErrSlotNotOwned) {
		t.Errorf("unowned slot: %v", err)
	}
	if _, err := lvl.PlaceUnit("unit1", 0.5, 0.1); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("on the path: %v", err)
	}
	if _, err := lvl.PlaceUnit("unit1", 0, 3); err != nil {
		t.Fatalf("valid placement: %v", err)
	}
	if _, err := lvl.PlaceUnit("unit1", 0.1, 3); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("overlapping unit: %v", err)
	}
	if _, err := lvl.PlaceUnit("unit1", 4, 4); !errors.Is(err, ErrInsufficientGold) {
		t.Errorf("no gold: %v", err)
	}
	if l.Gold() != 5 {
		t.Errorf("gold = %d, want 5", l.Gold())
	}
	if len(lvl.ECS.Units) != 1 {
		t.Errorf("units = %d, want 1", len(lvl.ECS.Units))
	}
}

func TestUnitsSurviveRestart(t *testing.T) {
	lvl, err := NewLevel(scenarioConfig(), ledger.New(75), nil)
	if err != nil {
		t.Fatal(err)
	}
	lvl.StartGame()
	if _, err := lvl.PlaceUnit("unit1", 0, 3); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		lvl.Update(step)
	}
	lvl.StopGame()
	lvl.StartGame()

	if len(lvl.ECS.Units) != 1 {
		t.Errorf("units after restart = %d, want 1", len(lvl.ECS.Units))
	}
	if len(lvl.ECS.Projectiles) != 0 {
		t.Errorf("projectiles after restart = %d", len(lvl.ECS.Projectiles))
	}
	if st := lvl.WaveState(); st.Index != 0 || st.Spawned != 0 {
		t.Errorf("wave state after restart = %+v", st)
	}
	snap := lvl.Snapshot()
	if !snap.Running || len(snap.Units) != 1 || snap.VillageHealth != 100 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestNewLevelRejectsInvalidConfig(t *testing.T) {
	if _, err := NewLevel(nil, ledger.New(0), nil); err == nil {
		t.Error("nil config must be rejected")
	}
	if _, err := NewLevel(scenarioConfig(), nil, nil); err == nil {
		t.Error("nil ledger must be rejected")
	}
	cfg := scenarioConfig()
	cfg.Path = nil
	if _, err := NewLevel(cfg, ledger.New(0), nil); err == nil {
		t.Error("missing path must be rejected")
	}
	cfg = scenarioConfig()
	cfg.VillageHealth = 0
	if _, err := NewLevel(cfg, ledger.New(0), nil); err == nil {
		t.Error("missing village health must be rejected")
	}
}

func TestSpeedMultiplierAdvancesFaster(t *testing.T) {
	slow, _ := NewLevel(scenarioConfig(), ledger.New(0), nil)
	fast, _ := NewLevel(scenarioConfig(), ledger.New(0), nil)
	fast.SpeedMultiplier = 4
	slow.StartGame()
	fast.StartGame()
	for i := 0; i < 60; i++ {
		slow.Update(step)
		fast.Update(step)
	}
	if fast.GameTime() <= slow.GameTime()*3 {
		t.Errorf("fast game time %v, slow %v", fast.GameTime(), slow.GameTime())
	}
}

func TestEntityAt(t *testing.T) {
	lvl, err := NewLevel(scenarioConfig(), ledger.New(75), nil)
	if err != nil {
		t.Fatal(err)
	}
	lvl.StartGame()
	unitID, err := lvl.PlaceUnit("unit1", 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if id, ok := lvl.EntityAt(0.1, 3); !ok || id != unitID {
		t.Errorf("EntityAt(unit) = %d, %v", id, ok)
	}
	// первый враг появляется в первом же тике в начале пути
	lvl.Update(step)
	enemies := lvl.ECS.EnemyIDs()
	if len(enemies) != 1 {
		t.Fatalf("enemies after start = %d, want 1", len(enemies))
	}
	if id, ok := lvl.EntityAt(0, 0); !ok || id != enemies[0] {
		t.Errorf("EntityAt(enemy) = %d, %v", id, ok)
	}
	if _, ok := lvl.EntityAt(8, 8); ok {
		t.Error("empty spot must not match")
	}
}
