// internal/component/movement.go
package component

// Position — компонент позиции (в единицах мира)
type Position struct {
	X, Y float64
}

// Velocity — компонент скорости
type Velocity struct {
	Speed float64
}

// Path — компонент пути: точки маршрута и индекс текущей цели
type Path struct {
	Points       []Position
	CurrentIndex int
}
