// internal/component/game_state.go
package component

// Phase — фаза секвенсора волн
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpawning
	PhaseAwaitingResolution
	PhaseApplyingDamage
	PhaseInterWave
	PhaseSettling
	PhaseWon
	PhaseLost
)

var phaseNames = map[Phase]string{
	PhaseIdle:               "idle",
	PhaseSpawning:           "spawning",
	PhaseAwaitingResolution: "awaiting_resolution",
	PhaseApplyingDamage:     "applying_damage",
	PhaseInterWave:          "inter_wave",
	PhaseSettling:           "settling",
	PhaseWon:                "won",
	PhaseLost:               "lost",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Finished — уровень завершён победой или поражением.
func (p Phase) Finished() bool {
	return p == PhaseWon || p == PhaseLost
}

// WaveState — счётчики текущей попытки прохождения уровня.
// Инвариант: Resolved <= Spawned <= количество врагов волны.
type WaveState struct {
	Phase      Phase
	Index      int     // Текущая волна (с нуля)
	Spawned    int     // Сколько врагов волны уже появилось
	Resolved   int     // Сколько из них дошли до конца или уничтожены
	ReachedEnd int     // Сколько дошли до деревни
	Timer      float64 // Обратный отсчёт текущей фазы
	Outcome    Phase   // PhaseWon/PhaseLost, пока идёт PhaseSettling
}
