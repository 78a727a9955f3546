// internal/ui/village_health_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"go-village-defense/internal/config"
	"go-village-defense/internal/village"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	HealthCells         = 10
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
)

// VillageHealthIndicator рисует здоровье деревни рядом кружков.
// Каждый кружок — десятая часть максимума.
type VillageHealthIndicator struct {
	X, Y float32
}

func NewVillageHealthIndicator(x, y float32) *VillageHealthIndicator {
	return &VillageHealthIndicator{X: x, Y: y}
}

// FilledCells — сколько кружков закрашено. Любой ненулевой остаток занимает кружок.
func FilledCells(current, max int) int {
	if max <= 0 || current <= 0 {
		return 0
	}
	cells := (current*HealthCells + max - 1) / max
	if cells > HealthCells {
		cells = HealthCells
	}
	return cells
}

// StageColor — цвет заполненных кружков для полосы здоровья деревни.
func StageColor(stage village.Stage) color.RGBA {
	switch stage {
	case village.StageFull:
		return config.HealthFullColor
	case village.StageHalf:
		return config.HealthHalfColor
	default:
		return config.HealthEmptyColor
	}
}

func (i *VillageHealthIndicator) Draw(screen *ebiten.Image, face font.Face, health *village.Health) {
	filled := FilledCells(health.Current(), health.Max())
	fill := StageColor(health.Stage())
	step := float32(HealthCircleRadius*2 + HealthCircleSpacing)

	for j := 0; j < HealthCells; j++ {
		cx := i.X + float32(j)*step + HealthCircleRadius
		cy := i.Y + HealthCircleRadius
		c := config.HealthEmptyColor
		if j < filled {
			c = fill
		}
		vector.DrawFilledCircle(screen, cx, cy, HealthCircleRadius, c, true)
		vector.StrokeCircle(screen, cx, cy, HealthCircleRadius, 1, color.White, true)
	}

	label := fmt.Sprintf("%d/%d", health.Current(), health.Max())
	text.Draw(screen, label, face, int(i.X), int(i.Y)-6, config.TextLightColor)
}
