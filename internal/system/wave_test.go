package system

import (
	"errors"
	"testing"

	"go-village-defense/internal/component"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/event"
	"go-village-defense/internal/ledger"
	"go-village-defense/internal/types"
	"go-village-defense/internal/village"
)

const testDT = 0.05

type fakeLevel struct {
	ecs     *entity.ECS
	cfg     *defs.LevelConfig
	spawned []types.EntityID
	failAt  int // номер спавна, на котором вернуть ошибку; 0 — никогда
	won     []string
	lost    []string
}

func (f *fakeLevel) LevelID() string { return f.cfg.ID }

func (f *fakeLevel) SpawnEnemy(wave int) (types.EntityID, error) {
	if f.failAt > 0 && len(f.spawned)+1 == f.failAt {
		return 0, errors.New("spawn blocked")
	}
	def, _ := f.cfg.Enemy(f.cfg.Waves[wave].Enemy)
	points := make([]component.Position, len(f.cfg.Path))
	for i, p := range f.cfg.Path {
		points[i] = component.Position{X: p.X, Y: p.Y}
	}
	id := f.ecs.NewEntity()
	f.ecs.Positions[id] = &component.Position{X: points[0].X, Y: points[0].Y}
	f.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	f.ecs.Paths[id] = &component.Path{Points: points}
	f.ecs.Healths[id] = &component.Health{Current: def.Health, Max: def.Health}
	f.ecs.Enemies[id] = &component.Enemy{DefID: def.ID, Wave: wave, GoldReward: def.GoldReward}
	f.spawned = append(f.spawned, id)
	return id, nil
}

func (f *fakeLevel) ClearEnemies() {
	for _, id := range entity.SortedIDs(f.ecs.Enemies) {
		f.ecs.RemoveEntity(id)
	}
}

func (f *fakeLevel) OnLevelWon(attemptID string)  { f.won = append(f.won, attemptID) }
func (f *fakeLevel) OnLevelLost(attemptID string) { f.lost = append(f.lost, attemptID) }

// recorder собирает события, которые дошли до диспетчера.
type recorder struct {
	events   []event.Event
	terminal map[types.EntityID]int
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
	if data, ok := e.Data.(event.EnemyData); ok && (e.Type == event.EnemyReachedEnd || e.Type == event.EnemyDestroyed) {
		r.terminal[data.ID]++
	}
}

func (r *recorder) waveHealths() []int {
	var out []int
	for _, e := range r.events {
		if e.Type == event.WaveResolved {
			out = append(out, e.Data.(event.WaveData).VillageHealth)
		}
	}
	return out
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type harness struct {
	t          *testing.T
	ecs        *entity.ECS
	queue      *event.Queue
	dispatcher *event.Dispatcher
	village    *village.Health
	level      *fakeLevel
	seq        *WaveSequencer
	movement   *MovementSystem
	rec        *recorder
	// hook вызывается после спавна и движения, до раздачи событий
	hook func()
}

func newHarness(t *testing.T, cfg *defs.LevelConfig) *harness {
	t.Helper()
	cfg.ApplyDefaults()
	ecs := entity.NewECS()
	queue := event.NewQueue()
	dispatcher := event.NewDispatcher()
	health, err := village.NewHealth(cfg.VillageHealth)
	if err != nil {
		t.Fatal(err)
	}
	level := &fakeLevel{ecs: ecs, cfg: cfg}
	seq, err := NewWaveSequencer(cfg, health, level, queue, dispatcher)
	if err != nil {
		t.Fatalf("NewWaveSequencer: %v", err)
	}
	rec := &recorder{terminal: make(map[types.EntityID]int)}
	for _, typ := range []event.EventType{event.EnemyReachedEnd, event.EnemyDestroyed, event.WaveStarted,
		event.WaveResolved, event.VillageDamaged, event.LevelWon, event.LevelLost} {
		dispatcher.Subscribe(typ, rec)
	}
	return &harness{
		t: t, ecs: ecs, queue: queue, dispatcher: dispatcher, village: health,
		level: level, seq: seq, movement: NewMovementSystem(ecs, queue), rec: rec,
	}
}

func (h *harness) tick() {
	h.seq.Update(testDT)
	h.movement.Update(testDT)
	if h.hook != nil {
		h.hook()
	}
	h.queue.Drain(h.dispatcher)

	st := h.seq.State()
	if h.seq.Running() && st.Phase != component.PhaseSettling {
		count := h.level.cfg.Waves[st.Index].EnemyCount
		if st.Resolved > st.Spawned || st.Spawned > count {
			h.t.Fatalf("invariant broken: resolved %d, spawned %d, count %d", st.Resolved, st.Spawned, count)
		}
	}
}

// runUntilDone крутит тики, пока попытка не закончится.
func (h *harness) runUntilDone(maxTicks int) {
	for i := 0; i < maxTicks; i++ {
		h.tick()
		if !h.seq.Running() {
			return
		}
	}
	h.t.Fatalf("attempt did not finish in %d ticks, state %+v", maxTicks, h.seq.State())
}

func shortLevel(policy defs.DamagePolicy) *defs.LevelConfig {
	return &defs.LevelConfig{
		ID:        "test",
		WaveDelay: 0.5,
		Path:      []defs.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Waves: []defs.WaveSpec{
			{EnemyCount: 5, SpawnDelay: 0.2},
			{EnemyCount: 5, SpawnDelay: 0.2},
			{EnemyCount: 5, SpawnDelay: 0.2},
		},
		Damage: defs.DamageConfig{Policy: policy},
	}
}

func TestScriptedDamageAllReachEnd(t *testing.T) {
	h := newHarness(t, shortLevel(defs.DamageScripted))
	h.seq.StartGame()
	h.runUntilDone(5000)

	got := h.rec.waveHealths()
	want := []int{100, 50, 0}
	if len(got) != len(want) {
		t.Fatalf("wave healths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("after wave %d health = %d, want %d", i+1, got[i], want[i])
		}
	}
	if !h.village.Destroyed() {
		t.Error("village must be destroyed")
	}
	if h.seq.Outcome() != component.PhaseLost {
		t.Errorf("outcome = %s, want lost", h.seq.Outcome())
	}
	if len(h.level.lost) != 1 || len(h.level.won) != 0 {
		t.Errorf("won %v lost %v", h.level.won, h.level.lost)
	}
	if h.rec.count(event.LevelLost) != 1 {
		t.Errorf("expected one LevelLost event, got %d", h.rec.count(event.LevelLost))
	}
	if len(h.level.spawned) != 15 {
		t.Errorf("spawned %d enemies, want 15", len(h.level.spawned))
	}
}

func TestScriptedHalveUsesIntegerDivision(t *testing.T) {
	cfg := shortLevel(defs.DamageScripted)
	cfg.VillageHealth = 51
	cfg.Damage.Schedule = []defs.DamageStep{{Kind: defs.StepHalve}, {Kind: defs.StepHalve}, {Kind: defs.StepNone}}
	h := newHarness(t, cfg)
	h.seq.StartGame()
	h.runUntilDone(5000)

	got := h.rec.waveHealths()
	if len(got) != 3 || got[0] != 26 || got[1] != 13 || got[2] != 13 {
		t.Fatalf("wave healths = %v, want [26 13 13]", got)
	}
	if h.seq.Outcome() != component.PhaseWon {
		t.Errorf("outcome = %s, want won", h.seq.Outcome())
	}
}

func TestPerArrivalDamage(t *testing.T) {
	cfg := shortLevel(defs.DamagePerArrival)
	cfg.Waves = cfg.Waves[:2]
	h := newHarness(t, cfg)
	h.seq.StartGame()
	h.runUntilDone(5000)

	got := h.rec.waveHealths()
	if len(got) != 2 || got[0] != 50 || got[1] != 0 {
		t.Fatalf("wave healths = %v, want [50 0]", got)
	}
	if h.seq.Outcome() != component.PhaseLost {
		t.Errorf("outcome = %s, want lost", h.seq.Outcome())
	}
}

func TestScriptedBreachSkipsCleanWaves(t *testing.T) {
	h := newHarness(t, shortLevel(defs.DamageScriptedBreach))
	// Башня-невидимка: каждый враг погибает в тике своего появления
	h.hook = func() {
		for _, id := range h.ecs.EnemyIDs() {
			if err := ApplyDamage(h.ecs, h.queue, id, 100); err != nil {
				t.Fatal(err)
			}
		}
	}
	h.seq.StartGame()
	h.runUntilDone(5000)

	if h.village.Current() != 100 {
		t.Errorf("village health = %d, want 100", h.village.Current())
	}
	if h.seq.Outcome() != component.PhaseWon {
		t.Fatalf("outcome = %s, want won", h.seq.Outcome())
	}
	if len(h.level.won) != 1 || h.level.won[0] != h.seq.AttemptID() {
		t.Errorf("OnLevelWon calls = %v, attempt %s", h.level.won, h.seq.AttemptID())
	}
	if h.rec.count(event.EnemyDestroyed) != 15 || h.rec.count(event.EnemyReachedEnd) != 0 {
		t.Errorf("destroyed %d reached %d", h.rec.count(event.EnemyDestroyed), h.rec.count(event.EnemyReachedEnd))
	}
}

func TestStopGameMidSpawnFreezesWave(t *testing.T) {
	cfg := shortLevel(defs.DamageScripted)
	cfg.Waves[1].SpawnDelay = 1
	h := newHarness(t, cfg)
	h.seq.StartGame()

	for i := 0; i < 5000; i++ {
		h.tick()
		st := h.seq.State()
		if st.Index == 1 && st.Phase == component.PhaseSpawning && st.Spawned == 2 {
			break
		}
	}
	st := h.seq.State()
	if st.Index != 1 || st.Spawned != 2 {
		t.Fatalf("did not reach mid-spawn of the second wave: %+v", st)
	}

	h.seq.StopGame()
	spawned := len(h.level.spawned)
	for i := 0; i < 400; i++ {
		h.tick()
	}

	if len(h.level.spawned) != spawned {
		t.Errorf("spawned %d more enemies after StopGame", len(h.level.spawned)-spawned)
	}
	if h.seq.Running() {
		t.Error("sequencer must not be running")
	}
	st = h.seq.State()
	if st.Index != 1 || st.Phase != component.PhaseIdle {
		t.Errorf("state after stop = %+v, want index 1 idle", st)
	}
	if len(h.level.won)+len(h.level.lost) != 0 {
		t.Error("stopped attempt must not report an outcome")
	}
}

func TestStopGameDuringSettleSuppressesOutcome(t *testing.T) {
	cfg := shortLevel(defs.DamageScripted)
	cfg.Waves = cfg.Waves[:1]
	h := newHarness(t, cfg)
	h.seq.StartGame()
	for i := 0; i < 5000 && h.seq.State().Phase != component.PhaseSettling; i++ {
		h.tick()
	}
	if h.seq.State().Phase != component.PhaseSettling {
		t.Fatalf("phase = %s, want settling", h.seq.State().Phase)
	}
	if !h.seq.Running() {
		t.Error("gameStarted must stay true until the outcome is reported")
	}
	h.seq.StopGame()
	for i := 0; i < 100; i++ {
		h.tick()
	}
	if len(h.level.won)+len(h.level.lost) != 0 {
		t.Error("outcome reported after StopGame")
	}
}

func TestRestartResetsVillageAndCounters(t *testing.T) {
	h := newHarness(t, shortLevel(defs.DamageScripted))
	h.seq.StartGame()
	h.runUntilDone(5000)
	first := h.seq.AttemptID()
	if !h.village.Destroyed() {
		t.Fatal("first attempt must destroy the village")
	}

	h.seq.StartGame()
	if h.village.Destroyed() || h.village.Current() != h.village.Max() {
		t.Errorf("village not reset: %d destroyed=%v", h.village.Current(), h.village.Destroyed())
	}
	if h.seq.AttemptID() == first {
		t.Error("attempt id must change on restart")
	}
	if st := h.seq.State(); st.Index != 0 || st.Spawned != 0 || st.Resolved != 0 {
		t.Errorf("counters not reset: %+v", st)
	}
	if len(h.ecs.Enemies) != 0 {
		t.Errorf("enemies left after restart: %d", len(h.ecs.Enemies))
	}
}

func TestStaleEventsAreIgnored(t *testing.T) {
	h := newHarness(t, shortLevel(defs.DamageScripted))
	h.seq.StartGame()
	h.tick()
	before := h.seq.State().Resolved

	h.seq.OnEvent(event.Event{Type: event.EnemyReachedEnd, Data: event.EnemyData{ID: 9999}})
	h.seq.OnEvent(event.Event{Type: event.EnemyDestroyed, Data: "garbage"})
	if got := h.seq.State().Resolved; got != before {
		t.Errorf("resolved changed from %d to %d on stale events", before, got)
	}

	id := h.level.spawned[0]
	h.seq.OnEvent(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyData{ID: id}})
	h.seq.OnEvent(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyData{ID: id}})
	if got := h.seq.State().Resolved; got != before+1 {
		t.Errorf("duplicate event counted twice: resolved %d", got)
	}
}

func TestSpawnFailureStopsGame(t *testing.T) {
	h := newHarness(t, shortLevel(defs.DamageScripted))
	h.level.failAt = 3
	h.seq.StartGame()
	for i := 0; i < 100; i++ {
		h.tick()
	}
	if h.seq.Running() {
		t.Error("sequencer must stop after a spawn error")
	}
	if len(h.level.spawned) != 2 {
		t.Errorf("spawned %d, want 2", len(h.level.spawned))
	}
}

func TestNewWaveSequencerRejectsMissingDependencies(t *testing.T) {
	cfg := shortLevel(defs.DamageScripted)
	cfg.ApplyDefaults()
	health, _ := village.NewHealth(100)
	level := &fakeLevel{ecs: entity.NewECS(), cfg: cfg}
	q, d := event.NewQueue(), event.NewDispatcher()

	if _, err := NewWaveSequencer(cfg, nil, level, q, d); err == nil {
		t.Error("nil village must be rejected")
	}
	if _, err := NewWaveSequencer(nil, health, level, q, d); err == nil {
		t.Error("nil config must be rejected")
	}
	if _, err := NewWaveSequencer(cfg, health, nil, q, d); err == nil {
		t.Error("nil level context must be rejected")
	}
	bad := *cfg
	bad.Path = bad.Path[:1]
	if _, err := NewWaveSequencer(&bad, health, level, q, d); err == nil {
		t.Error("invalid config must be rejected")
	}
}

func TestExactlyOneTerminalEventWithCombat(t *testing.T) {
	cfg := shortLevel(defs.DamagePerArrival)
	cfg.Path = []defs.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	h := newHarness(t, cfg)

	gold := ledger.New(0)
	economy := NewEconomySystem(gold, h.dispatcher)
	combat := NewCombatSystem(h.ecs, gold)
	projectiles := NewProjectileSystem(h.ecs, h.queue)

	unit := h.ecs.NewEntity()
	h.ecs.Positions[unit] = &component.Position{X: 5, Y: 1}
	h.ecs.Units[unit] = &component.Unit{DefID: "unit1", Slot: 1}
	h.ecs.Combats[unit] = &component.Combat{Cooldown: 0.3, Range: 3, Damage: 1, BulletSpeed: 12, BulletLifetime: 2}

	h.hook = func() {
		combat.Update(testDT)
		projectiles.Update(testDT)
	}
	h.seq.StartGame()
	h.runUntilDone(20000)

	if !h.seq.Outcome().Finished() {
		t.Fatalf("attempt not finished: %s", h.seq.Outcome())
	}
	for _, id := range h.level.spawned {
		if n := h.rec.terminal[id]; n != 1 {
			t.Errorf("enemy %d emitted %d terminal events", id, n)
		}
	}
	destroyed := h.rec.count(event.EnemyDestroyed)
	if destroyed == 0 {
		t.Error("the unit should have killed at least one enemy")
	}
	if gold.Gold() != destroyed*10 || economy.Earned() != gold.Gold() {
		t.Errorf("gold %d earned %d for %d kills", gold.Gold(), economy.Earned(), destroyed)
	}
}
