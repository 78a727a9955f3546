// internal/defs/types.go
package defs

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Point — точка маршрута в единицах мира.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DamagePolicy определяет, как волна бьёт по деревне.
type DamagePolicy string

const (
	// Урон по фиксированной таблице, индекс — номер волны.
	DamageScripted DamagePolicy = "scripted"
	// Та же таблица, но волна, которую полностью перебили, урона не наносит.
	DamageScriptedBreach DamagePolicy = "scripted_breach"
	// Фиксированный урон за каждого врага, дошедшего до конца.
	DamagePerArrival DamagePolicy = "per_arrival"
)

// UsesSchedule — политика берёт урон из таблицы по номеру волны.
func (p DamagePolicy) UsesSchedule() bool {
	return p == DamageScripted || p == DamageScriptedBreach
}

// StepKind — вид шага таблицы урона.
type StepKind string

const (
	StepNone  StepKind = "none"
	StepHalve StepKind = "halve"
	StepZero  StepKind = "zero"
	StepFlat  StepKind = "flat"
)

// DamageStep — один шаг таблицы урона. В YAML пишется строкой:
// "none", "halve", "zero" или "flat:<n>".
type DamageStep struct {
	Kind   StepKind
	Amount int // только для StepFlat
}

// Damage возвращает урон, который шаг наносит деревне с текущим здоровьем current.
// halve — целочисленное деление: 51 -> урон 25, остаётся 26.
func (s DamageStep) Damage(current int) int {
	switch s.Kind {
	case StepHalve:
		return current / 2
	case StepZero:
		return current
	case StepFlat:
		return s.Amount
	default:
		return 0
	}
}

func (s DamageStep) String() string {
	if s.Kind == StepFlat {
		return fmt.Sprintf("flat:%d", s.Amount)
	}
	return string(s.Kind)
}

// ParseDamageStep разбирает строковую запись шага.
func ParseDamageStep(raw string) (DamageStep, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch StepKind(raw) {
	case StepNone, StepHalve, StepZero:
		return DamageStep{Kind: StepKind(raw)}, nil
	}
	if amount, ok := strings.CutPrefix(raw, string(StepFlat)+":"); ok {
		n, err := strconv.Atoi(amount)
		if err != nil {
			return DamageStep{}, fmt.Errorf("invalid flat damage %q: %w", raw, err)
		}
		if n < 0 {
			return DamageStep{}, fmt.Errorf("flat damage cannot be negative, got %d", n)
		}
		return DamageStep{Kind: StepFlat, Amount: n}, nil
	}
	return DamageStep{}, fmt.Errorf("unknown damage step %q", raw)
}

func (s *DamageStep) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	step, err := ParseDamageStep(raw)
	if err != nil {
		return err
	}
	*s = step
	return nil
}

func (s DamageStep) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
