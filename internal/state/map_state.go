// internal/state/map_state.go
package state

import (
	"fmt"
	"log"

	"go-village-defense/internal/app"
	"go-village-defense/internal/config"
	"go-village-defense/internal/shop"
	"go-village-defense/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// MapState — выбор уровня и магазин между попытками.
type MapState struct {
	sm           *StateMachine
	session      *app.Session
	levelButtons []*ui.Button
	slotButtons  []*ui.Button
	upgrade      *ui.Button
	save         *ui.Button
	back         *ui.Button
	gold         *ui.GoldIndicator
	message      string
}

func NewMapState(sm *StateMachine, session *app.Session) *MapState {
	m := &MapState{
		sm:      sm,
		session: session,
		upgrade: ui.NewButton(700, 160+shop.SlotCount*50, 260, 40, ""),
		save:    ui.NewButton(700, config.ScreenHeight-120, 120, 40, "Save"),
		back:    ui.NewButton(840, config.ScreenHeight-120, 120, 40, "Main menu"),
		gold:    ui.NewGoldIndicator(40, 60),
	}
	for i := range session.Levels() {
		m.levelButtons = append(m.levelButtons, ui.NewButton(80, 140+i*55, 360, 42, ""))
	}
	for slot := 1; slot <= shop.SlotCount; slot++ {
		m.slotButtons = append(m.slotButtons, ui.NewButton(700, 110+slot*50, 260, 40, ""))
	}
	return m
}

func (m *MapState) Enter() {
	m.refresh()
}

// refresh обновляет подписи и доступность кнопок по ледгеру.
func (m *MapState) refresh() {
	l := m.session.Ledger()
	for i, cfg := range m.session.Levels() {
		btn := m.levelButtons[i]
		name := cfg.Name
		if name == "" {
			name = "Level " + cfg.ID
		}
		btn.Text = name
		if l.IsLevelCompleted(cfg.ID) {
			btn.Text += "  (done)"
		}
		btn.Disabled = !m.session.IsUnlocked(cfg.ID)
	}
	sh := m.session.Shop()
	for i, btn := range m.slotButtons {
		slot := i + 1
		switch {
		case l.OwnsSlot(slot):
			btn.Text = fmt.Sprintf("Slot %d: owned", slot)
			btn.Disabled = true
		case !sh.SlotAvailable(slot):
			btn.Text = fmt.Sprintf("Slot %d: beat level %s", slot, sh.RequiredLevel(slot))
			btn.Disabled = true
		default:
			btn.Text = fmt.Sprintf("Buy slot %d (%d gold)", slot, sh.SlotCost(slot))
			btn.Disabled = false
		}
	}
	m.upgrade.Text = fmt.Sprintf("Damage x%.2f -> +%.2f (%d gold)", l.DamageMultiplier(), config.DamageUpgradeStep, config.DamageUpgradeCost)
}

func (m *MapState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.toMainMenu()
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	for i, btn := range m.levelButtons {
		if btn.Contains(x, y) && !btn.Disabled {
			m.enterLevel(m.session.Levels()[i].ID)
			return
		}
	}
	for i, btn := range m.slotButtons {
		if btn.Contains(x, y) && !btn.Disabled {
			m.report(m.session.Shop().BuySlot(i + 1))
		}
	}
	switch {
	case m.upgrade.Contains(x, y):
		m.report(m.session.Shop().BuyDamageUpgrade())
	case m.save.Contains(x, y):
		if err := m.session.SaveProgress(); err != nil {
			m.report(err)
		} else {
			m.message = "Saved"
		}
	case m.back.Contains(x, y):
		m.toMainMenu()
	}
}

func (m *MapState) enterLevel(id string) {
	lvl, err := m.session.LoadLevel(id)
	if err != nil {
		m.report(err)
		return
	}
	m.sm.SetState(NewLevelState(m.sm, m.session, lvl))
}

func (m *MapState) toMainMenu() {
	m.sm.SetState(NewMenuState(m.sm, m.session))
}

func (m *MapState) report(err error) {
	if err != nil {
		log.Printf("[Map] %v", err)
		m.message = err.Error()
	} else {
		m.message = ""
	}
	m.refresh()
}

func (m *MapState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	m.gold.Draw(screen, hudFace, m.session.Ledger(), config.DamageUpgradeStep)

	text.Draw(screen, "Levels", hudFace, 80, 125, config.TextLightColor)
	for _, btn := range m.levelButtons {
		btn.Draw(screen, hudFace)
	}
	text.Draw(screen, "Shop", hudFace, 700, 145, config.TextLightColor)
	for _, btn := range m.slotButtons {
		btn.Draw(screen, hudFace)
	}
	m.upgrade.Draw(screen, hudFace)
	m.save.Draw(screen, hudFace)
	m.back.Draw(screen, hudFace)

	if m.message != "" {
		text.Draw(screen, m.message, hudFace, 80, config.ScreenHeight-60, config.HealthHalfColor)
	}
}

func (m *MapState) Exit() {}
