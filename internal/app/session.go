// internal/app/session.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-village-defense/internal/component"
	"go-village-defense/internal/config"
	"go-village-defense/internal/defs"
	"go-village-defense/internal/ledger"
	"go-village-defense/internal/shop"
)

var (
	ErrUnknownLevel = errors.New("unknown level")
	ErrLevelLocked  = errors.New("level is locked")
)

// Session — всё, что живёт между уровнями: ледгер, магазин, каталог уровней.
type Session struct {
	ledger *ledger.Ledger
	shop   *shop.Shop
	store  *ledger.Store
	levels []*defs.LevelConfig
	units  []defs.UnitDefinition

	current     *Level
	lastOutcome component.Phase
}

// NewSession проверяет каталог уровней. store может быть nil: тогда прогресс не сохраняется.
func NewSession(levels []*defs.LevelConfig, units []defs.UnitDefinition, store *ledger.Store) (*Session, error) {
	if len(levels) == 0 {
		return nil, errors.New("session: at least one level is required")
	}
	seen := make(map[string]bool, len(levels))
	for _, cfg := range levels {
		if cfg == nil {
			return nil, errors.New("session: nil level config")
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		if seen[cfg.ID] {
			return nil, fmt.Errorf("session: duplicate level id %q", cfg.ID)
		}
		seen[cfg.ID] = true
	}
	if len(units) == 0 {
		units = defs.DefaultUnits()
	}
	if err := defs.ValidateUnits(units); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	l := ledger.New(config.InitialGold)
	return &Session{
		ledger: l,
		shop:   shop.New(l),
		store:  store,
		levels: levels,
		units:  units,
	}, nil
}

func (s *Session) Ledger() *ledger.Ledger       { return s.ledger }
func (s *Session) Shop() *shop.Shop             { return s.shop }
func (s *Session) Levels() []*defs.LevelConfig  { return s.levels }
func (s *Session) Current() *Level              { return s.current }
func (s *Session) LastOutcome() component.Phase { return s.lastOutcome }

// IsUnlocked: первый уровень открыт всегда, следующий — после прохождения предыдущего.
func (s *Session) IsUnlocked(id string) bool {
	for i, cfg := range s.levels {
		if cfg.ID != id {
			continue
		}
		return i == 0 || s.ledger.IsLevelCompleted(s.levels[i-1].ID)
	}
	return false
}

// LoadLevel останавливает текущий уровень и собирает новый. Попытка не начинается сама.
func (s *Session) LoadLevel(id string) (*Level, error) {
	var cfg *defs.LevelConfig
	for _, c := range s.levels {
		if c.ID == id {
			cfg = c
			break
		}
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
	}
	if !s.IsUnlocked(id) {
		return nil, fmt.Errorf("%w: %s", ErrLevelLocked, id)
	}

	lvl, err := NewLevel(cfg, s.ledger, s.units)
	if err != nil {
		return nil, err
	}
	s.unloadCurrent()
	lvl.SetOutcomeHandler(s.handleOutcome)
	s.current = lvl
	s.lastOutcome = component.PhaseIdle
	log.Printf("[Session] level %s loaded", id)
	return lvl, nil
}

// ReturnToMenu выгружает уровень и сбрасывает прогресс сессии.
func (s *Session) ReturnToMenu() {
	s.unloadCurrent()
	s.ledger.ResetSession()
	s.lastOutcome = component.PhaseIdle
	log.Println("[Session] returned to main menu, progress reset")
}

// ExitLevel выгружает уровень без сброса прогресса (возврат на карту уровней).
func (s *Session) ExitLevel() {
	s.unloadCurrent()
}

func (s *Session) Update(deltaTime float64) {
	if s.current != nil {
		s.current.Update(deltaTime)
	}
}

func (s *Session) SaveProgress() error {
	return s.store.Save(s.ledger)
}

func (s *Session) LoadProgress() (bool, error) {
	return s.store.Load(s.ledger)
}

func (s *Session) unloadCurrent() {
	if s.current == nil {
		return
	}
	// StopGame не трогает ледгер: пройденные уровни сохраняются
	s.current.StopGame()
	s.current = nil
}

func (s *Session) handleOutcome(levelID string, outcome component.Phase, attemptID string) {
	s.lastOutcome = outcome
	log.Printf("[Session] level %s finished: %s (attempt %s)", levelID, outcome, attemptID)
	if outcome == component.PhaseWon && s.store.Enabled() {
		if err := s.SaveProgress(); err != nil {
			log.Printf("[Session] autosave failed: %v", err)
		}
	}
}
