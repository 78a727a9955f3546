// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator — круг в углу экрана: цвет показывает фазу волн,
// клик по нему запускает попытку.
type StateIndicator struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// PhaseColor подбирает цвет индикатора для фазы секвенсора.
func PhaseColor(phase component.Phase) color.RGBA {
	switch phase {
	case component.PhaseIdle:
		return config.IdleStateColor
	case component.PhaseWon:
		return config.WonStateColor
	case component.PhaseLost:
		return config.HealthHalfColor
	default:
		return config.WaveStateColor
	}
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.RGBA) {
	elapsed := time.Since(i.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	currentRadius := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, currentRadius, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, currentRadius, 1, color.White, true)
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y int) bool {
	dx := float32(x) - i.X
	dy := float32(y) - i.Y
	return dx*dx+dy*dy <= i.Radius*i.Radius
}

func (i *StateIndicator) HandleClick() {
	i.LastClickTime = time.Now()
}
