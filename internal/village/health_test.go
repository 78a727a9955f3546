package village

import (
	"errors"
	"testing"
)

func newHealth(t *testing.T, max int) *Health {
	t.Helper()
	h, err := NewHealth(max)
	if err != nil {
		t.Fatalf("NewHealth(%d) failed: %v", max, err)
	}
	return h
}

func TestNewHealthRejectsNonPositiveMax(t *testing.T) {
	for _, max := range []int{0, -5} {
		if _, err := NewHealth(max); err == nil {
			t.Errorf("NewHealth(%d): expected error", max)
		}
	}
}

func TestTakeDamageClampsAndLatches(t *testing.T) {
	h := newHealth(t, 100)

	if err := h.TakeDamage(30); err != nil {
		t.Fatalf("TakeDamage(30): %v", err)
	}
	if h.Current() != 70 || h.Destroyed() {
		t.Fatalf("expected 70/not destroyed, got %d/%v", h.Current(), h.Destroyed())
	}

	if err := h.TakeDamage(500); err != nil {
		t.Fatalf("TakeDamage(500): %v", err)
	}
	if h.Current() != 0 {
		t.Errorf("health must clamp at 0, got %d", h.Current())
	}
	if !h.Destroyed() {
		t.Error("expected destroyed latch to be set")
	}
}

func TestTakeDamageZeroOnFullHealthKeepsAlive(t *testing.T) {
	h := newHealth(t, 10)
	if err := h.TakeDamage(0); err != nil {
		t.Fatal(err)
	}
	if h.Current() != 10 || h.Destroyed() {
		t.Errorf("zero damage changed state: %d/%v", h.Current(), h.Destroyed())
	}
}

func TestTakeDamageRejectsNegative(t *testing.T) {
	h := newHealth(t, 100)
	err := h.TakeDamage(-1)
	if !errors.Is(err, ErrNegativeDamage) {
		t.Fatalf("expected ErrNegativeDamage, got %v", err)
	}
	if h.Current() != 100 {
		t.Errorf("negative damage must not change health, got %d", h.Current())
	}
}

func TestDestroyedIgnoresDamageAndReset(t *testing.T) {
	h := newHealth(t, 100)
	_ = h.TakeDamage(100)

	if err := h.TakeDamage(10); err != nil {
		t.Fatalf("damage after destruction should be a silent no-op, got %v", err)
	}
	if h.Current() != 0 {
		t.Errorf("expected 0, got %d", h.Current())
	}

	h.ResetHealth()
	if h.Current() != 0 || !h.Destroyed() {
		t.Errorf("ResetHealth must be a no-op while destroyed, got %d/%v", h.Current(), h.Destroyed())
	}

	h.ResetDestroyedFlag()
	h.ResetHealth()
	if h.Current() != 100 || h.Destroyed() {
		t.Errorf("expected full health after unlatch, got %d/%v", h.Current(), h.Destroyed())
	}
}

func TestStage(t *testing.T) {
	tests := []struct {
		damage int
		want   Stage
	}{
		{0, StageFull},
		{49, StageFull},
		{50, StageHalf},
		{99, StageHalf},
		{100, StageZero},
	}
	for _, tt := range tests {
		h := newHealth(t, 100)
		_ = h.TakeDamage(tt.damage)
		if got := h.Stage(); got != tt.want {
			t.Errorf("damage %d: stage = %v, want %v", tt.damage, got, tt.want)
		}
	}
}
