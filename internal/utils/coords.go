// internal/utils/coords.go
package utils

import "go-village-defense/internal/config"

// WorldToScreen переводит координаты мира в пиксели экрана
func WorldToScreen(x, y float64) (float32, float32) {
	return float32(config.WorldOffsetX + x*config.WorldScale), float32(config.WorldOffsetY + y*config.WorldScale)
}

// ScreenToWorld — обратное преобразование, для кликов мыши
func ScreenToWorld(sx, sy int) (float64, float64) {
	return (float64(sx) - config.WorldOffsetX) / config.WorldScale, (float64(sy) - config.WorldOffsetY) / config.WorldScale
}

// WorldLength переводит длину из единиц мира в пиксели
func WorldLength(l float64) float32 {
	return float32(l * config.WorldScale)
}
