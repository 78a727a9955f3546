// internal/system/economy.go
package system

import (
	"log"

	"go-village-defense/internal/event"
)

// GoldAccount — куда зачисляется награда за врагов.
type GoldAccount interface {
	AddGold(n int) error
}

// EconomySystem начисляет золото за уничтоженных врагов.
type EconomySystem struct {
	account GoldAccount
	earned  int
}

func NewEconomySystem(account GoldAccount, dispatcher *event.Dispatcher) *EconomySystem {
	s := &EconomySystem{account: account}
	dispatcher.Subscribe(event.EnemyDestroyed, s)
	return s
}

// OnEvent обрабатывает события, на которые подписана система.
func (s *EconomySystem) OnEvent(e event.Event) {
	if e.Type != event.EnemyDestroyed {
		return
	}
	data, ok := e.Data.(event.EnemyData)
	if !ok || data.GoldReward == 0 {
		return
	}
	if err := s.account.AddGold(data.GoldReward); err != nil {
		log.Printf("[EconomySystem] reward for enemy %d rejected: %v", data.ID, err)
		return
	}
	s.earned += data.GoldReward
}

// Earned — сколько золота принесли враги с последнего сброса.
func (s *EconomySystem) Earned() int { return s.earned }

func (s *EconomySystem) Reset() { s.earned = 0 }
