// pkg/render/color.go
package render

import (
	"image/color"

	"go-village-defense/internal/config"
)

// MapColors holds all the color definitions needed to render the static level background.
type MapColors struct {
	BackgroundColor color.RGBA
	PathColor       color.RGBA
	EntryColor      color.RGBA
	ExitColor       color.RGBA
	PathWidth       float64 // в единицах мира
}

// DefaultMapColors — палитра из config.
func DefaultMapColors() MapColors {
	return MapColors{
		BackgroundColor: config.BackgroundColor,
		PathColor:       config.PathColor,
		EntryColor:      config.EntryColor,
		ExitColor:       config.ExitColor,
		PathWidth:       0.5,
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}
