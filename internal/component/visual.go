// internal/component/visual.go
package component

// DamageFlash указывает, что сущность должна быть отрисована цветом урона.
type DamageFlash struct {
	Timer float64 // Сколько времени эффекту осталось
}

// FadeEffect — след уничтоженного врага: круг сжимается и исчезает.
type FadeEffect struct {
	CurrentTimer float64
	Duration     float64
	StartRadius  float64
}
