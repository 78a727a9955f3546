// internal/ledger/ledger.go
package ledger

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

var (
	ErrNegativeAmount  = errors.New("ledger: negative amount")
	ErrInvalidUpgrade  = errors.New("ledger: upgrade step must be positive")
	ErrInvalidSnapshot = errors.New("ledger: invalid snapshot")
)

// Ledger — золото, пройденные уровни, купленные слоты и множитель урона.
// Живёт всю игровую сессию, между попытками уровня не сбрасывается.
type Ledger struct {
	initialGold      int
	gold             int
	completed        map[string]bool
	slots            map[int]bool
	damageMultiplier float64
}

// Snapshot — сериализуемое состояние ледгера.
type Snapshot struct {
	Gold             int      `yaml:"gold"`
	CompletedLevels  []string `yaml:"completedLevels"`
	OwnedSlots       []int    `yaml:"ownedSlots"`
	DamageMultiplier float64  `yaml:"damageMultiplier"`
}

func New(initialGold int) *Ledger {
	if initialGold < 0 {
		initialGold = 0
	}
	l := &Ledger{initialGold: initialGold}
	l.ResetSession()
	return l
}

func (l *Ledger) Gold() int { return l.gold }

func (l *Ledger) AddGold(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAmount, n)
	}
	l.gold += n
	return nil
}

// SpendGold списывает n, только если хватает золота целиком.
func (l *Ledger) SpendGold(n int) bool {
	if n < 0 {
		return false
	}
	if l.gold < n {
		log.Printf("[Ledger] not enough gold: need %d, have %d", n, l.gold)
		return false
	}
	l.gold -= n
	return true
}

// CompleteLevel отмечает уровень пройденным. Повторный вызов ничего не меняет.
func (l *Ledger) CompleteLevel(id string) {
	if l.completed[id] {
		return
	}
	l.completed[id] = true
	log.Printf("[Ledger] level %s completed", id)
}

func (l *Ledger) IsLevelCompleted(id string) bool {
	return l.completed[id]
}

func (l *Ledger) ResetLevel(id string) {
	delete(l.completed, id)
}

func (l *Ledger) CompletedLevels() []string {
	ids := make([]string, 0, len(l.completed))
	for id := range l.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (l *Ledger) OwnsSlot(slot int) bool {
	return l.slots[slot]
}

func (l *Ledger) GrantSlot(slot int) {
	l.slots[slot] = true
}

func (l *Ledger) DamageMultiplier() float64 {
	return l.damageMultiplier
}

func (l *Ledger) ApplyDamageUpgrade(increase float64) error {
	if increase <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidUpgrade, increase)
	}
	l.damageMultiplier += increase
	return nil
}

// ResetSession — возврат в главное меню: всё к начальному состоянию.
// Первый слот принадлежит игроку всегда.
func (l *Ledger) ResetSession() {
	l.gold = l.initialGold
	l.completed = make(map[string]bool)
	l.slots = map[int]bool{1: true}
	l.damageMultiplier = 1
}

func (l *Ledger) Snapshot() Snapshot {
	slots := make([]int, 0, len(l.slots))
	for slot := range l.slots {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return Snapshot{
		Gold:             l.gold,
		CompletedLevels:  l.CompletedLevels(),
		OwnedSlots:       slots,
		DamageMultiplier: l.damageMultiplier,
	}
}

func (l *Ledger) Restore(s Snapshot) error {
	if s.Gold < 0 {
		return fmt.Errorf("%w: gold %d", ErrInvalidSnapshot, s.Gold)
	}
	if s.DamageMultiplier < 1 {
		return fmt.Errorf("%w: damage multiplier %v", ErrInvalidSnapshot, s.DamageMultiplier)
	}
	l.gold = s.Gold
	l.completed = make(map[string]bool, len(s.CompletedLevels))
	for _, id := range s.CompletedLevels {
		l.completed[id] = true
	}
	l.slots = map[int]bool{1: true}
	for _, slot := range s.OwnedSlots {
		l.slots[slot] = true
	}
	l.damageMultiplier = s.DamageMultiplier
	return nil
}
