// pkg/render/path_renderer.go
package render

import (
	"go-village-defense/internal/component"
	"go-village-defense/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PathRenderer рисует статичный задник уровня: фон и дорогу врагов.
type PathRenderer struct {
	path     []component.Position
	colors   MapColors
	mapImage *ebiten.Image // Поле для предрендеренной карты
}

func NewPathRenderer(path []component.Position, colors MapColors, screenWidth, screenHeight int) *PathRenderer {
	r := &PathRenderer{
		path:     path,
		colors:   colors,
		mapImage: ebiten.NewImage(screenWidth, screenHeight),
	}
	// Отрисовываем карту один раз при инициализации
	r.RenderMapImage()
	return r
}

// RenderMapImage создаёт предрендеренное изображение задника
func (r *PathRenderer) RenderMapImage() {
	r.mapImage.Fill(r.colors.BackgroundColor)
	if len(r.path) == 0 {
		return
	}

	width := utils.WorldLength(r.colors.PathWidth)
	for i := 1; i < len(r.path); i++ {
		x1, y1 := utils.WorldToScreen(r.path[i-1].X, r.path[i-1].Y)
		x2, y2 := utils.WorldToScreen(r.path[i].X, r.path[i].Y)
		vector.StrokeLine(r.mapImage, x1, y1, x2, y2, width, r.colors.PathColor, true)
		// скругляем стыки отрезков
		vector.DrawFilledCircle(r.mapImage, x2, y2, width/2, r.colors.PathColor, true)
	}

	entryX, entryY := utils.WorldToScreen(r.path[0].X, r.path[0].Y)
	exit := r.path[len(r.path)-1]
	exitX, exitY := utils.WorldToScreen(exit.X, exit.Y)
	vector.DrawFilledCircle(r.mapImage, entryX, entryY, width*0.6, r.colors.EntryColor, true)
	vector.DrawFilledCircle(r.mapImage, exitX, exitY, width*0.6, r.colors.ExitColor, true)
}

// Draw рисует задник одним вызовом, затем динамические сущности.
func (r *PathRenderer) Draw(screen *ebiten.Image, entities *EntityRenderer) {
	screen.DrawImage(r.mapImage, nil)
	if entities != nil {
		entities.Draw(screen)
	}
}
