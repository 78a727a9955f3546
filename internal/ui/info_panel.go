// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-village-defense/internal/app"
	"go-village-defense/internal/config"
	"go-village-defense/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 110
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 20
	columnSpacing  = 200
)

var (
	panelColor       = color.RGBA{R: 25, G: 35, B: 45, A: 230}
	panelBorderColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// InfoPanel выезжает снизу и показывает сведения о выбранном юните или враге.
type InfoPanel struct {
	IsVisible    bool
	TargetEntity types.EntityID
	fontFace     font.Face
	currentY     float64
	targetY      float64
}

func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains — клик попал в видимую часть панели.
func (p *InfoPanel) Contains(y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Update() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	if math.Abs(diff) < animationSpeed {
		p.currentY = p.targetY
	} else if diff > 0 {
		p.currentY += animationSpeed
	} else {
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.TargetEntity = 0
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, lvl *app.Level) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
	x, y := float32(panelRect.Min.X), float32(panelRect.Min.Y)
	w, h := float32(panelRect.Dx()), float32(panelRect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, panelColor, true)
	vector.StrokeRect(screen, x, y, w, h, 2, panelBorderColor, true)

	if p.TargetEntity == 0 {
		return
	}
	p.drawEntityInfo(screen, lvl, panelRect.Min.X+15, panelRect.Min.Y+25)
}

func (p *InfoPanel) drawEntityInfo(screen *ebiten.Image, lvl *app.Level, startX, startY int) {
	ecs := lvl.ECS
	if unit, ok := ecs.Units[p.TargetEntity]; ok {
		title := unit.DefID
		if def, ok := lvl.UnitDefinition(unit.DefID); ok && def.Name != "" {
			title = def.Name
		}
		text.Draw(screen, title, p.fontFace, startX, startY, config.TextLightColor)
		if combat, ok := ecs.Combats[p.TargetEntity]; ok {
			y := startY + lineHeight
			damage := lvl.CombatSystem.ScaledDamage(combat.Damage)
			text.Draw(screen, fmt.Sprintf("Damage: %d", damage), p.fontFace, startX, y, config.TextLightColor)
			text.Draw(screen, fmt.Sprintf("Range: %.1f", combat.Range), p.fontFace, startX+columnSpacing, y, config.TextLightColor)
			y += lineHeight
			text.Draw(screen, fmt.Sprintf("Cooldown: %.2fs", combat.Cooldown), p.fontFace, startX, y, config.TextLightColor)
			text.Draw(screen, fmt.Sprintf("Slot: %d", unit.Slot), p.fontFace, startX+columnSpacing, y, config.TextLightColor)
		}
		return
	}

	enemy, ok := ecs.Enemies[p.TargetEntity]
	if !ok || !ecs.IsActiveEnemy(p.TargetEntity) {
		text.Draw(screen, "Gone", p.fontFace, startX, startY, config.TextLightColor)
		return
	}
	title := enemy.DefID
	if def, ok := lvl.Config.Enemy(enemy.DefID); ok && def.Name != "" {
		title = def.Name
	}
	text.Draw(screen, title, p.fontFace, startX, startY, config.TextLightColor)
	y := startY + lineHeight
	if health, ok := ecs.Healths[p.TargetEntity]; ok {
		text.Draw(screen, fmt.Sprintf("Health: %d / %d", health.Current, health.Max), p.fontFace, startX, y, config.TextLightColor)
	}
	if velocity, ok := ecs.Velocities[p.TargetEntity]; ok {
		text.Draw(screen, fmt.Sprintf("Speed: %.2f", velocity.Speed), p.fontFace, startX+columnSpacing, y, config.TextLightColor)
	}
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Wave: %d  Reward: %d", enemy.Wave+1, enemy.GoldReward), p.fontFace, startX, y, config.TextLightColor)
}
