// internal/state/level_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"go-village-defense/internal/app"
	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/ui"
	"go-village-defense/internal/utils"
	"go-village-defense/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const messageSeconds = 2.5

// LevelState — экран одной попытки уровня.
type LevelState struct {
	sm             *StateMachine
	session        *app.Session
	level          *app.Level
	pathRenderer   *render.PathRenderer
	entityRenderer *render.EntityRenderer
	indicator      *ui.StateIndicator
	speedButton    *ui.SpeedButton
	pauseButton    *ui.PauseButton
	healthBar      *ui.VillageHealthIndicator
	waveIndicator  *ui.WaveIndicator
	gold           *ui.GoldIndicator
	infoPanel      *ui.InfoPanel
	selectedUnit   string
	message        string
	messageTimer   float64
	lastClickTime  time.Time
}

func NewLevelState(sm *StateMachine, session *app.Session, lvl *app.Level) *LevelState {
	// кнопки в правом верхнем углу, справа налево
	top := float32(config.IndicatorOffsetX)
	right := float32(config.ScreenWidth - config.IndicatorOffsetX)
	return &LevelState{
		sm:             sm,
		session:        session,
		level:          lvl,
		pathRenderer:   render.NewPathRenderer(lvl.Path(), render.DefaultMapColors(), config.ScreenWidth, config.ScreenHeight),
		entityRenderer: render.NewEntityRenderer(lvl.ECS),
		indicator:      ui.NewStateIndicator(right, top, config.IndicatorRadius),
		speedButton:    ui.NewSpeedButton(right-60, top, config.ButtonSize, config.SpeedButtonColors, config.SpeedMultipliers),
		pauseButton:    ui.NewPauseButton(right-120, top, config.ButtonSize, config.PauseButtonColor, config.PlayButtonColor),
		healthBar:      ui.NewVillageHealthIndicator(40, 40),
		waveIndicator:  ui.NewWaveIndicator(float32(config.ScreenWidth/2), 40),
		gold:           ui.NewGoldIndicator(40, 90),
		infoPanel:      ui.NewInfoPanel(hudFace),
		selectedUnit:   "unit1",
	}
}

func (g *LevelState) Enter() {
	g.pauseButton.SetPaused(false)
}

// SetPaused вызывается PauseState при выходе из паузы.
func (g *LevelState) SetPaused(paused bool) {
	g.pauseButton.SetPaused(paused)
}

func (g *LevelState) Update(deltaTime float64) {
	g.infoPanel.Update()
	if g.messageTimer > 0 {
		g.messageTimer -= deltaTime
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF9), inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.openPause()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.session.ReturnToMenu()
		g.sm.SetState(NewMenuState(g.sm, g.session))
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.session.ExitLevel()
		g.sm.SetState(NewMapState(g.sm, g.session))
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.startAttempt()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.level.StopGame()
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(key) {
			g.selectedUnit = fmt.Sprintf("unit%d", i+1)
		}
	}

	g.session.Update(deltaTime)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if time.Since(g.lastClickTime) >= config.ClickCooldown*time.Millisecond || !g.isClickOnUI(x, y) {
			g.handleClick(x, y)
		}
		g.lastClickTime = time.Now()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.infoPanel.Hide()
	}
}

func (g *LevelState) startAttempt() {
	if g.level.Running() {
		return
	}
	g.level.StartGame()
	g.indicator.HandleClick()
}

func (g *LevelState) openPause() {
	g.pauseButton.TogglePause()
	g.sm.SetState(NewPauseState(g.sm, g))
}

// isClickOnUI проверяет, был ли клик по какому-либо элементу UI
func (g *LevelState) isClickOnUI(x, y int) bool {
	return g.speedButton.IsClicked(x, y) || g.pauseButton.IsClicked(x, y) ||
		g.indicator.IsClicked(x, y) || g.infoPanel.Contains(y)
}

func (g *LevelState) handleClick(x, y int) {
	switch {
	case g.speedButton.IsClicked(x, y):
		g.level.SpeedMultiplier = g.speedButton.Toggle()
	case g.pauseButton.IsClicked(x, y):
		g.openPause()
	case g.indicator.IsClicked(x, y):
		g.startAttempt()
	case g.infoPanel.Contains(y):
		// клик по самой панели ничего не делает
	default:
		g.handleWorldClick(x, y)
	}
}

func (g *LevelState) handleWorldClick(x, y int) {
	wx, wy := utils.ScreenToWorld(x, y)
	if id, found := g.level.EntityAt(wx, wy); found {
		g.infoPanel.SetTarget(id)
		return
	}
	g.infoPanel.Hide()

	_, err := g.level.PlaceUnit(g.selectedUnit, wx, wy)
	switch {
	case err == nil:
	case errors.Is(err, app.ErrGameNotStarted):
		g.showMessage("Press S to start the attempt")
	case errors.Is(err, app.ErrSlotNotOwned):
		g.showMessage("Buy this slot in the shop first")
	default:
		g.showMessage(err.Error())
	}
	if err != nil {
		log.Printf("[LevelState] placement rejected: %v", err)
	}
}

func (g *LevelState) showMessage(msg string) {
	g.message = msg
	g.messageTimer = messageSeconds
}

func (g *LevelState) Draw(screen *ebiten.Image) {
	g.pathRenderer.Draw(screen, g.entityRenderer)
	g.drawPlacementPreview(screen)

	st := g.level.WaveState()
	g.healthBar.Draw(screen, hudFace, g.level.Village)
	g.waveIndicator.Draw(screen, hudFace, st.Index+1, g.level.Sequencer.WaveCount())
	g.gold.Draw(screen, hudFace, g.level.Ledger(), config.DamageUpgradeStep)
	g.indicator.Draw(screen, ui.PhaseColor(st.Phase))
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)
	g.infoPanel.Draw(screen, g.level)

	status := fmt.Sprintf("%s  |  wave %d/%d  spawned %d  resolved %d  |  unit: %s",
		st.Phase, st.Index+1, g.level.Sequencer.WaveCount(), st.Spawned, st.Resolved, g.selectedUnit)
	text.Draw(screen, status, hudFace, 40, config.ScreenHeight-40, config.TextLightColor)
	text.Draw(screen, "S start  X stop  1-3 unit  P pause  M map  Esc main menu", hudFace, 40, config.ScreenHeight-20, config.TextLightColor)

	switch g.level.Outcome() {
	case component.PhaseWon:
		g.drawBanner(screen, "VILLAGE SAVED", config.WonStateColor)
	case component.PhaseLost:
		g.drawBanner(screen, "VILLAGE DESTROYED", config.HealthHalfColor)
	}
	if g.messageTimer > 0 {
		text.Draw(screen, g.message, hudFace, 40, 130, config.HealthHalfColor)
	}
}

// drawPlacementPreview подсвечивает точку под курсором: можно ли поставить юнита.
func (g *LevelState) drawPlacementPreview(screen *ebiten.Image) {
	if !g.level.Running() {
		return
	}
	x, y := ebiten.CursorPosition()
	wx, wy := utils.ScreenToWorld(x, y)
	c := config.ValidSpotColor
	if !g.level.CanPlaceUnit(wx, wy) {
		c = config.InvalidSpotColor
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), utils.WorldLength(config.UnitRadius), c, true)
}

func (g *LevelState) drawBanner(screen *ebiten.Image, label string, c color.RGBA) {
	bounds := text.BoundString(hudFace, label)
	text.Draw(screen, label, hudFace, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, c)
}

func (g *LevelState) Exit() {}
