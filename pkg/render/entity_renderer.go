// pkg/render/entity_renderer.go
package render

import (
	"image/color"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/entity"
	"go-village-defense/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var healthBarBackground = color.RGBA{40, 40, 40, 255}

// EntityRenderer рисует сущности с Renderable. Только читает ECS.
type EntityRenderer struct {
	ecs *entity.ECS
}

func NewEntityRenderer(ecs *entity.ECS) *EntityRenderer {
	return &EntityRenderer{ecs: ecs}
}

func (r *EntityRenderer) Draw(screen *ebiten.Image) {
	for _, id := range entity.SortedIDs(r.ecs.Renderables) {
		renderable := r.ecs.Renderables[id]
		pos, hasPos := r.ecs.Positions[id]
		if !hasPos {
			continue
		}
		x, y := utils.WorldToScreen(pos.X, pos.Y)
		radius := utils.WorldLength(renderable.Radius)
		if renderable.HasStroke {
			vector.DrawFilledCircle(screen, x, y, radius+2, DarkenColor(renderable.Color), true)
		}
		fill := renderable.Color
		if _, flashing := r.ecs.DamageFlashes[id]; flashing {
			fill = config.FlashColor
		}
		vector.DrawFilledCircle(screen, x, y, radius, fill, true)

		if health, ok := r.ecs.Healths[id]; ok && health.Current < health.Max {
			drawHealthBar(screen, x, y-radius-6, radius*2, health)
		}
	}
}

func drawHealthBar(screen *ebiten.Image, cx, top, width float32, health *component.Health) {
	frac := float32(utils.Clamp01(float64(health.Current) / float64(health.Max)))
	left := cx - width/2
	vector.DrawFilledRect(screen, left, top, width, 3, healthBarBackground, false)
	vector.DrawFilledRect(screen, left, top, utils.Lerp(0, width, frac), 3, config.HealthHalfColor, false)
}
