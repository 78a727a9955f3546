// internal/component/combat.go
package component

import "go-village-defense/internal/types"

// Health — компонент здоровья
type Health struct {
	Current int
	Max     int
}

// Combat — компонент для юнитов, управляющий атакой
type Combat struct {
	Cooldown float64        // Перезарядка между выстрелами, сек
	Timer    float64        // Оставшееся время до следующего выстрела
	Range    float64        // Радиус атаки
	Damage   int            // Базовый урон пули
	Target   types.EntityID // Последняя цель

	BulletSpeed    float64
	BulletLifetime float64
}
