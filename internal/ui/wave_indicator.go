// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"go-village-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y             float32
	Color            color.RGBA
	OutlineColor     color.Color
	OutlineThickness int
}

func NewWaveIndicator(x, y float32) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            config.IdleStateColor,
		OutlineColor:     color.White,
		OutlineThickness: 1,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw рисует "номер / всего". Последняя волна выделяется красным.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, waveNumber, waveCount int) {
	if waveNumber <= 0 {
		return
	}
	label := toRoman(waveNumber) + " / " + toRoman(waveCount)

	textColor := i.Color
	if waveNumber == waveCount {
		textColor = config.WaveStateColor
	}

	bounds := text.BoundString(face, label)
	textX := int(i.X) - bounds.Dx()/2
	textY := int(i.Y)

	for y := -i.OutlineThickness; y <= i.OutlineThickness; y++ {
		for x := -i.OutlineThickness; x <= i.OutlineThickness; x++ {
			if x == 0 && y == 0 {
				continue
			}
			text.Draw(screen, label, face, textX+x, textY+y, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, textX, textY, textColor)
}
