// cmd/sim/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go-village-defense/internal/app"
	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/event"
	"go-village-defense/internal/ledger"

	"gopkg.in/yaml.v3"
)

// Placement — юнит, которого симулятор ставит сразу после старта попытки.
type Placement struct {
	UnitID string  `yaml:"unit"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// Report — итог прогона, печатается как YAML.
type Report struct {
	LevelID     string        `yaml:"levelId"`
	Outcome     string        `yaml:"outcome"`
	TimedOut    bool          `yaml:"timedOut,omitempty"`
	Ticks       int           `yaml:"ticks"`
	WaveHealth  []int         `yaml:"villageHealthAfterWave"`
	Destroyed   int           `yaml:"enemiesDestroyed"`
	ReachedEnd  int           `yaml:"enemiesReachedEnd"`
	GoldAtStart int           `yaml:"goldAtStart"`
	GoldAtEnd   int           `yaml:"goldAtEnd"`
	Placed      int           `yaml:"unitsPlaced"`
	Rejected    []string      `yaml:"rejectedPlacements,omitempty"`
	Snapshot    *app.Snapshot `yaml:"snapshot,omitempty"`
}

// ParsePlacements разбирает список вида "unit1@3,1.5;unit2@5,-2".
func ParsePlacements(raw string) ([]Placement, error) {
	var out []Placement
	for _, item := range strings.Split(raw, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		unit, coords, ok := strings.Cut(item, "@")
		if !ok {
			return nil, fmt.Errorf("placement %q: expected unit@x,y", item)
		}
		xs, ys, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("placement %q: expected unit@x,y", item)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("placement %q: bad x: %w", item, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("placement %q: bad y: %w", item, err)
		}
		out = append(out, Placement{UnitID: strings.TrimSpace(unit), X: x, Y: y})
	}
	return out, nil
}

// waveRecorder собирает здоровье деревни после каждой волны и терминальные события.
type waveRecorder struct {
	health     []int
	destroyed  int
	reachedEnd int
}

func (r *waveRecorder) OnEvent(e event.Event) {
	switch e.Type {
	case event.WaveResolved:
		r.health = append(r.health, e.Data.(event.WaveData).VillageHealth)
	case event.EnemyDestroyed:
		r.destroyed++
	case event.EnemyReachedEnd:
		r.reachedEnd++
	}
}

// Simulate прогоняет одну попытку уровня с фиксированным шагом.
// Если попытка не закончилась за maxTicks, она останавливается и помечается TimedOut.
func Simulate(cfg *defs.LevelConfig, l *ledger.Ledger, units []defs.UnitDefinition, placements []Placement, step float64, maxTicks int, withSnapshot bool) (Report, error) {
	lvl, err := app.NewLevel(cfg, l, units)
	if err != nil {
		return Report{}, err
	}
	rec := &waveRecorder{}
	for _, typ := range []event.EventType{event.WaveResolved, event.EnemyDestroyed, event.EnemyReachedEnd} {
		lvl.EventDispatcher.Subscribe(typ, rec)
	}

	report := Report{LevelID: cfg.ID, GoldAtStart: l.Gold()}
	lvl.StartGame()
	for _, p := range placements {
		if _, err := lvl.PlaceUnit(p.UnitID, p.X, p.Y); err != nil {
			report.Rejected = append(report.Rejected, fmt.Sprintf("%s@%g,%g: %v", p.UnitID, p.X, p.Y, err))
			continue
		}
		report.Placed++
	}

	for report.Ticks < maxTicks && lvl.Running() {
		lvl.Update(step)
		report.Ticks++
	}
	if withSnapshot {
		snap := lvl.Snapshot()
		report.Snapshot = &snap
	}
	if lvl.Running() {
		report.TimedOut = true
		lvl.StopGame()
	}

	report.Outcome = lvl.Outcome().String()
	if lvl.Outcome() == component.PhaseIdle {
		report.Outcome = "none"
	}
	report.GoldAtEnd = l.Gold()
	report.WaveHealth = rec.health
	report.Destroyed = rec.destroyed
	report.ReachedEnd = rec.reachedEnd
	return report, nil
}

func findLevel(levels []*defs.LevelConfig, id string) (*defs.LevelConfig, error) {
	for _, cfg := range levels {
		if cfg.ID == id {
			return cfg, nil
		}
	}
	return nil, fmt.Errorf("level %q not found", id)
}

func parseSlots(raw string) ([]int, error) {
	var slots []int
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("bad slot %q: %w", s, err)
		}
		slots = append(slots, n)
	}
	return slots, nil
}

func main() {
	levelID := flag.String("level", "1", "level id to simulate")
	levelsDir := flag.String("levels", "", "directory with level YAML files (embedded levels if empty)")
	levelFile := flag.String("file", "", "single level YAML file, overrides -level/-levels")
	unitsFile := flag.String("units", "", "YAML file with unit definitions")
	place := flag.String("place", "", `units to place after start, "unit1@3,1.5;unit2@5,-2"`)
	slots := flag.String("slots", "", "extra owned unit slots, e.g. 2,3")
	gold := flag.Int("gold", config.InitialGold, "gold at the start of the attempt")
	multiplier := flag.Float64("damage", 1, "unit damage multiplier")
	maxSeconds := flag.Float64("max-seconds", 600, "stop the simulation after this much game time")
	withSnapshot := flag.Bool("snapshot", false, "include the final level snapshot")
	flag.Parse()

	var cfg *defs.LevelConfig
	var err error
	switch {
	case *levelFile != "":
		cfg, err = defs.LoadLevelConfig(*levelFile)
	case *levelsDir != "":
		var levels []*defs.LevelConfig
		if levels, err = defs.LoadLevelsDir(*levelsDir); err == nil {
			cfg, err = findLevel(levels, *levelID)
		}
	default:
		var levels []*defs.LevelConfig
		if levels, err = defs.LoadEmbeddedLevels(); err == nil {
			cfg, err = findLevel(levels, *levelID)
		}
	}
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	var units []defs.UnitDefinition
	if *unitsFile != "" {
		if units, err = defs.LoadUnitDefinitions(*unitsFile); err != nil {
			log.Fatalf("Failed to load units: %v", err)
		}
	}
	placements, err := ParsePlacements(*place)
	if err != nil {
		log.Fatal(err)
	}
	extraSlots, err := parseSlots(*slots)
	if err != nil {
		log.Fatal(err)
	}

	l := ledger.New(*gold)
	for _, slot := range extraSlots {
		l.GrantSlot(slot)
	}
	if *multiplier > 1 {
		if err := l.ApplyDamageUpgrade(*multiplier - 1); err != nil {
			log.Fatal(err)
		}
	}

	maxTicks := int(*maxSeconds / config.FixedStep)
	report, err := Simulate(cfg, l, units, placements, config.FixedStep, maxTicks, *withSnapshot)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		log.Fatal(err)
	}
	_ = enc.Close()
}
