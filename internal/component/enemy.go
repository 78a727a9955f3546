// internal/component/enemy.go
package component

// Outcome — терминальное состояние врага.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeReachedEnd
	OutcomeDestroyed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReachedEnd:
		return "reached_end"
	case OutcomeDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	DefID      string  // ID из определения уровня
	Wave       int     // Индекс волны, в которой враг появился
	GoldReward int     // Награда за уничтожение
	Resolved   bool    // Терминальное событие уже отправлено
	Outcome    Outcome // Какое именно
}
