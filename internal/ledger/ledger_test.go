package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func TestSpendGoldInsufficientFunds(t *testing.T) {
	l := New(20)
	if l.SpendGold(30) {
		t.Fatal("SpendGold(30) with 20 gold must fail")
	}
	if l.Gold() != 20 {
		t.Errorf("gold must stay 20, got %d", l.Gold())
	}
}

func TestSpendGoldExactAndNegative(t *testing.T) {
	l := New(50)
	if !l.SpendGold(50) {
		t.Fatal("SpendGold(50) with 50 gold must succeed")
	}
	if l.Gold() != 0 {
		t.Errorf("expected 0 gold, got %d", l.Gold())
	}
	if l.SpendGold(-5) {
		t.Error("negative spend must be rejected")
	}
	if l.Gold() != 0 {
		t.Errorf("negative spend changed gold to %d", l.Gold())
	}
}

func TestAddGold(t *testing.T) {
	l := New(0)
	if err := l.AddGold(10); err != nil {
		t.Fatal(err)
	}
	if err := l.AddGold(-1); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
	if l.Gold() != 10 {
		t.Errorf("expected 10, got %d", l.Gold())
	}
}

func TestCompleteLevelIdempotent(t *testing.T) {
	l := New(75)
	l.CompleteLevel("2")
	l.CompleteLevel("1")
	l.CompleteLevel("2")
	if !l.IsLevelCompleted("1") || !l.IsLevelCompleted("2") {
		t.Fatal("levels must be marked completed")
	}
	if got := l.CompletedLevels(); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("CompletedLevels = %v", got)
	}
	l.ResetLevel("1")
	if l.IsLevelCompleted("1") {
		t.Error("ResetLevel must clear the flag")
	}
}

func TestResetSession(t *testing.T) {
	l := New(75)
	_ = l.AddGold(100)
	l.CompleteLevel("1")
	l.GrantSlot(2)
	_ = l.ApplyDamageUpgrade(0.5)

	l.ResetSession()

	if l.Gold() != 75 {
		t.Errorf("gold = %d, want 75", l.Gold())
	}
	if l.IsLevelCompleted("1") {
		t.Error("completion flags must be cleared")
	}
	if !l.OwnsSlot(1) || l.OwnsSlot(2) {
		t.Error("only slot 1 must be owned after reset")
	}
	if l.DamageMultiplier() != 1 {
		t.Errorf("multiplier = %v, want 1", l.DamageMultiplier())
	}
}

func TestApplyDamageUpgrade(t *testing.T) {
	l := New(0)
	if err := l.ApplyDamageUpgrade(0); !errors.Is(err, ErrInvalidUpgrade) {
		t.Errorf("expected ErrInvalidUpgrade, got %v", err)
	}
	_ = l.ApplyDamageUpgrade(0.25)
	_ = l.ApplyDamageUpgrade(0.25)
	if l.DamageMultiplier() != 1.5 {
		t.Errorf("multiplier = %v, want 1.5", l.DamageMultiplier())
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := New(75)
	_ = l.AddGold(25)
	l.CompleteLevel("3")
	l.GrantSlot(3)

	other := New(0)
	if err := other.Restore(l.Snapshot()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(other.Snapshot(), l.Snapshot()) {
		t.Errorf("snapshots differ: %+v vs %+v", other.Snapshot(), l.Snapshot())
	}

	if err := other.Restore(Snapshot{Gold: -1, DamageMultiplier: 1}); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestStoreDisabledIsNoop(t *testing.T) {
	s := NewStore(nil)
	l := New(75)
	if err := s.Save(l); err != nil {
		t.Fatalf("Save without manager: %v", err)
	}
	found, err := s.Load(l)
	if err != nil || found {
		t.Errorf("Load without manager = %v, %v", found, err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	appName := fmt.Sprintf("village_defense_test_%d", time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	store := NewStore(manager)
	l := New(75)
	found, err := store.Load(l)
	if err != nil || found {
		t.Fatalf("fresh store Load = %v, %v", found, err)
	}

	_ = l.AddGold(40)
	l.CompleteLevel("1")
	if err := store.Save(l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := New(0)
	found, err = store.Load(restored)
	if err != nil || !found {
		t.Fatalf("Load = %v, %v", found, err)
	}
	if restored.Gold() != 115 || !restored.IsLevelCompleted("1") {
		t.Errorf("restored gold=%d completed=%v", restored.Gold(), restored.CompletedLevels())
	}
}
