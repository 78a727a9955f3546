// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonColor         = color.RGBA{60, 60, 75, 255}
	buttonDisabledColor = color.RGBA{35, 35, 40, 255}
	buttonBorderColor   = color.RGBA{200, 200, 200, 255}
	buttonTextColor     = color.RGBA{240, 240, 240, 255}
	buttonMutedColor    = color.RGBA{120, 120, 120, 255}
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect     image.Rectangle
	Text     string
	Disabled bool
}

// NewButton создает новую кнопку.
func NewButton(x, y, width, height int, label string) *Button {
	return &Button{
		Rect: image.Rect(x, y, x+width, y+height),
		Text: label,
	}
}

// Contains проверяет, попадает ли точка экрана в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw отрисовывает кнопку с текстом по центру.
func (b *Button) Draw(screen *ebiten.Image, face font.Face) {
	bg, fg := buttonColor, buttonTextColor
	if b.Disabled {
		bg, fg = buttonDisabledColor, buttonMutedColor
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 2, buttonBorderColor, false)

	bounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2
	text.Draw(screen, b.Text, face, textX, textY, fg)
}
