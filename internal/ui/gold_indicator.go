// internal/ui/gold_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"go-village-defense/internal/ledger"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	goldColor        = color.RGBA{255, 215, 0, 255}
	upgradeFillColor = color.RGBA{70, 100, 120, 220}
)

const (
	upgradeRectWidth  = 16
	upgradeRectHeight = 12
	upgradeRectGap    = 6
	maxUpgradeMarks   = 8
)

// GoldIndicator показывает золото ледгера и купленные улучшения урона.
type GoldIndicator struct {
	X, Y float32
}

func NewGoldIndicator(x, y float32) *GoldIndicator {
	return &GoldIndicator{X: x, Y: y}
}

// UpgradeMarks — сколько прямоугольников улучшений закрасить.
func UpgradeMarks(multiplier, step float64) int {
	if step <= 0 || multiplier <= 1 {
		return 0
	}
	n := int((multiplier-1)/step + 0.5)
	if n > maxUpgradeMarks {
		n = maxUpgradeMarks
	}
	return n
}

func (i *GoldIndicator) Draw(screen *ebiten.Image, face font.Face, l *ledger.Ledger, upgradeStep float64) {
	vector.DrawFilledCircle(screen, i.X+6, i.Y-4, 6, goldColor, true)
	text.Draw(screen, fmt.Sprintf("%d", l.Gold()), face, int(i.X)+18, int(i.Y), goldColor)

	marks := UpgradeMarks(l.DamageMultiplier(), upgradeStep)
	top := i.Y + 8
	for j := 0; j < maxUpgradeMarks; j++ {
		left := i.X + float32(j*(upgradeRectWidth+upgradeRectGap))
		if j < marks {
			vector.DrawFilledRect(screen, left, top, upgradeRectWidth, upgradeRectHeight, upgradeFillColor, false)
		}
		vector.StrokeRect(screen, left, top, upgradeRectWidth, upgradeRectHeight, 1, color.White, false)
	}
}
