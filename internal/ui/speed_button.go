// internal/ui/speed_button.go
package ui

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whitePixel — источник цвета для DrawTriangles.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// SpeedButton переключает множитель скорости игры по кругу.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastToggleTime time.Time
	StateColors    []color.RGBA
	Multipliers    []float64
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.RGBA, multipliers []float64) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
		Multipliers: multipliers,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastToggleTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	triangleSize := b.Size * float32(scale)

	fill := b.StateColors[b.CurrentState%len(b.StateColors)]

	// Параметры треугольников
	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	drawTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, fill)
	drawTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, fill)
}

// IsClicked: форма сложная, поэтому попадание считаем по кругу.
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

// Toggle переходит к следующей скорости и возвращает её множитель.
func (b *SpeedButton) Toggle() float64 {
	b.CurrentState = (b.CurrentState + 1) % len(b.Multipliers)
	b.LastToggleTime = time.Now()
	return b.Multiplier()
}

func (b *SpeedButton) Multiplier() float64 {
	return b.Multipliers[b.CurrentState]
}

func drawTriangle(screen *ebiten.Image, x1, y1, x2, y2, x3, y3 float32, fill color.RGBA) {
	var path vector.Path
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	path.LineTo(x3, y3)
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(fill.R)/255, float32(fill.G)/255, float32(fill.B)/255, float32(fill.A)/255
	for i := range vertices {
		vertices[i].SrcX, vertices[i].SrcY = 1, 1
		vertices[i].ColorR, vertices[i].ColorG, vertices[i].ColorB, vertices[i].ColorA = r, g, b, a
	}
	screen.DrawTriangles(vertices, indices, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	vector.StrokeLine(screen, x1, y1, x2, y2, 1, color.White, true)
	vector.StrokeLine(screen, x2, y2, x3, y3, 1, color.White, true)
	vector.StrokeLine(screen, x3, y3, x1, y1, 1, color.White, true)
}
