// internal/ledger/store.go
package ledger

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	progressObject   = "progress"
	progressProperty = "session"
)

// Store сохраняет снимок ледгера через gdata.
// При manager == nil работает в режиме "только память": Save и Load ничего не делают.
type Store struct {
	manager *gdata.Manager
}

func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// OpenStore открывает хранилище приложения appName. Ошибка gdata не фатальна:
// возвращается Store без менеджера и сама ошибка для лога.
func OpenStore(appName string) (*Store, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("open gdata for %s: %w", appName, err)
	}
	return NewStore(manager), nil
}

func (s *Store) Enabled() bool {
	return s != nil && s.manager != nil
}

func (s *Store) Save(l *Ledger) error {
	if !s.Enabled() {
		return nil
	}
	data, err := yaml.Marshal(l.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	log.Printf("[Store] progress saved (gold=%d)", l.Gold())
	return nil
}

// Load восстанавливает ледгер. Возвращает false, если сохранения нет.
func (s *Store) Load(l *Ledger) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	if !s.manager.ObjectPropExists(progressObject, progressProperty) {
		return false, nil
	}
	data, err := s.manager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return false, fmt.Errorf("failed to load progress: %w", err)
	}
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return false, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	if err := l.Restore(snapshot); err != nil {
		return false, err
	}
	log.Printf("[Store] progress loaded (gold=%d, levels=%v)", l.Gold(), snapshot.CompletedLevels)
	return true, nil
}
