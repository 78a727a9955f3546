// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"go-village-defense/internal/app"
	"go-village-defense/internal/config"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/ledger"
	"go-village-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "go-village-defense"

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	levelsDir := flag.String("levels", "", "directory with level YAML files (embedded levels if empty)")
	unitsFile := flag.String("units", "", "YAML file with unit definitions (built-in units if empty)")
	pprofAddr := flag.String("pprof", "", "address for the pprof server, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	levels, err := loadLevels(*levelsDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	var units []defs.UnitDefinition
	if *unitsFile != "" {
		if units, err = defs.LoadUnitDefinitions(*unitsFile); err != nil {
			log.Fatalf("Failed to load units: %v", err)
		}
	}

	store, err := ledger.OpenStore(appName)
	if err != nil {
		log.Printf("[Main] progress will not be saved: %v", err)
	}
	session, err := app.NewSession(levels, units, store)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	sm.SetState(state.NewMenuState(sm, session))
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetTPS(config.TicksPerSec)
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Village Defense")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func loadLevels(dir string) ([]*defs.LevelConfig, error) {
	if dir == "" {
		return defs.LoadEmbeddedLevels()
	}
	return defs.LoadLevelsDir(dir)
}
