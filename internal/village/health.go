// internal/village/health.go
package village

import (
	"errors"
	"fmt"
	"log"
)

var ErrNegativeDamage = errors.New("village: negative damage")

// Stage — полоса здоровья, по которой UI выбирает спрайт деревни.
type Stage int

const (
	StageFull Stage = iota // больше половины
	StageHalf              // от 1 до половины
	StageZero
)

// Health — пул здоровья деревни.
// destroyed — защёлка: после обнуления урон игнорируется, а ResetHealth
// ничего не делает до явного ResetDestroyedFlag при перезапуске уровня.
type Health struct {
	max       int
	current   int
	destroyed bool
}

func NewHealth(maxHealth int) (*Health, error) {
	if maxHealth <= 0 {
		return nil, fmt.Errorf("village: max health must be positive, got %d", maxHealth)
	}
	return &Health{max: maxHealth, current: maxHealth}, nil
}

// TakeDamage наносит урон. Отрицательный урон — ошибка вызывающего.
func (h *Health) TakeDamage(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDamage, n)
	}
	if h.destroyed {
		return nil
	}
	h.current -= n
	if h.current < 0 {
		h.current = 0
	}
	if h.current == 0 {
		h.destroyed = true
		log.Printf("[Village] destroyed")
	}
	return nil
}

// ResetHealth восстанавливает здоровье до максимума, если деревня не разрушена.
func (h *Health) ResetHealth() {
	if h.destroyed {
		return
	}
	h.current = h.max
}

// ResetDestroyedFlag снимает защёлку. Вызывается только при перезапуске уровня.
func (h *Health) ResetDestroyedFlag() {
	h.destroyed = false
}

func (h *Health) Current() int    { return h.current }
func (h *Health) Max() int        { return h.max }
func (h *Health) Destroyed() bool { return h.destroyed }

func (h *Health) Stage() Stage {
	switch {
	case h.current > h.max/2:
		return StageFull
	case h.current > 0:
		return StageHalf
	default:
		return StageZero
	}
}
