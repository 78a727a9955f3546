// internal/state/menu_state.go
package state

import (
	"fmt"
	"log"

	"go-village-defense/internal/app"
	"go-village-defense/internal/config"
	"go-village-defense/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// MenuState — главное меню: новая игра или продолжение сохранённой.
type MenuState struct {
	sm          *StateMachine
	session     *app.Session
	newGame     *ui.Button
	continueBtn *ui.Button
	message     string
}

func NewMenuState(sm *StateMachine, session *app.Session) *MenuState {
	cx := config.ScreenWidth/2 - 100
	return &MenuState{
		sm:          sm,
		session:     session,
		newGame:     ui.NewButton(cx, 380, 200, 40, "New game"),
		continueBtn: ui.NewButton(cx, 440, 200, 40, "Continue"),
	}
}

func (m *MenuState) Enter() {
	m.message = ""
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.startNew()
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	switch {
	case m.newGame.Contains(x, y):
		m.startNew()
	case m.continueBtn.Contains(x, y):
		m.continueSaved()
	}
}

func (m *MenuState) startNew() {
	m.session.ReturnToMenu()
	m.sm.SetState(NewMapState(m.sm, m.session))
}

func (m *MenuState) continueSaved() {
	ok, err := m.session.LoadProgress()
	if err != nil {
		log.Printf("[Menu] load progress: %v", err)
		m.message = "Save is damaged"
		return
	}
	if !ok {
		m.message = "No saved game"
		return
	}
	m.sm.SetState(NewMapState(m.sm, m.session))
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	title := "VILLAGE DEFENSE"
	bounds := text.BoundString(hudFace, title)
	text.Draw(screen, title, hudFace, (config.ScreenWidth-bounds.Dx())/2, 320, config.TextLightColor)

	m.newGame.Draw(screen, hudFace)
	m.continueBtn.Draw(screen, hudFace)
	if m.message != "" {
		text.Draw(screen, m.message, hudFace, m.continueBtn.Rect.Min.X, m.continueBtn.Rect.Max.Y+30, config.HealthHalfColor)
	}
	text.Draw(screen, fmt.Sprintf("Space: new game  |  starting gold %d", config.InitialGold), hudFace, 20, config.ScreenHeight-20, config.TextLightColor)
}

func (m *MenuState) Exit() {}
