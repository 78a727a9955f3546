// internal/shop/shop.go
package shop

import (
	"errors"
	"fmt"
	"log"

	"go-village-defense/internal/config"
	"go-village-defense/internal/ledger"
)

var (
	ErrUnknownSlot      = errors.New("shop: unknown slot")
	ErrSlotLocked       = errors.New("shop: slot is locked")
	ErrAlreadyOwned     = errors.New("shop: slot already owned")
	ErrInsufficientGold = errors.New("shop: not enough gold")
)

// SlotCount — сколько слотов юнитов продаёт магазин.
const SlotCount = 3

// slotRequirements: какой уровень нужно пройти, чтобы открыть слот.
var slotRequirements = map[int]string{
	2: "1",
	3: "2",
}

// Shop продаёт слоты юнитов и улучшения урона за золото из ледгера.
type Shop struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Shop {
	return &Shop{ledger: l}
}

// SlotCost — слот N стоит N*SlotCostStep.
func (s *Shop) SlotCost(slot int) int {
	return slot * config.SlotCostStep
}

// RequiredLevel возвращает уровень, открывающий слот, или "" если условий нет.
func (s *Shop) RequiredLevel(slot int) string {
	return slotRequirements[slot]
}

// SlotAvailable — слот можно купить: существует и его уровень пройден.
func (s *Shop) SlotAvailable(slot int) bool {
	if slot < 1 || slot > SlotCount {
		return false
	}
	required, ok := slotRequirements[slot]
	return !ok || s.ledger.IsLevelCompleted(required)
}

// BuySlot покупает слот. Повторная покупка возвращает ErrAlreadyOwned без списания.
func (s *Shop) BuySlot(slot int) error {
	if slot < 1 || slot > SlotCount {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, slot)
	}
	if s.ledger.OwnsSlot(slot) {
		return fmt.Errorf("%w: %d", ErrAlreadyOwned, slot)
	}
	if !s.SlotAvailable(slot) {
		return fmt.Errorf("%w: %d requires level %s", ErrSlotLocked, slot, slotRequirements[slot])
	}
	cost := s.SlotCost(slot)
	if !s.ledger.SpendGold(cost) {
		return fmt.Errorf("%w: slot %d costs %d, have %d", ErrInsufficientGold, slot, cost, s.ledger.Gold())
	}
	s.ledger.GrantSlot(slot)
	log.Printf("[Shop] slot %d bought for %d gold", slot, cost)
	return nil
}

// BuyDamageUpgrade повышает множитель урона всех юнитов.
func (s *Shop) BuyDamageUpgrade() error {
	if !s.ledger.SpendGold(config.DamageUpgradeCost) {
		return fmt.Errorf("%w: upgrade costs %d, have %d", ErrInsufficientGold, config.DamageUpgradeCost, s.ledger.Gold())
	}
	if err := s.ledger.ApplyDamageUpgrade(config.DamageUpgradeStep); err != nil {
		// вернуть деньги: улучшение не применилось
		_ = s.ledger.AddGold(config.DamageUpgradeCost)
		return err
	}
	log.Printf("[Shop] damage multiplier is now %.2f", s.ledger.DamageMultiplier())
	return nil
}
