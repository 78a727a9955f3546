// internal/component/projectile.go
package component

import "go-village-defense/internal/types"

// Projectile представляет летящую пулю.
type Projectile struct {
	OwnerID  types.EntityID
	TargetID types.EntityID
	Speed    float64
	Damage   int
	Lifetime float64 // Через сколько секунд пуля исчезает сама
	Age      float64
}
