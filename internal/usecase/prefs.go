package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// SetPreference stores a value under key. Strings pass through
// verbatim; any other value is stored as its JSON encoding.
func (s *Service) SetPreference(key string, value any) error {
	if key == "" {
		return types.ErrInvalidID
	}
	str, ok := value.(string)
	if !ok {
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode preference %s: %w", key, err)
		}
		str = string(b)
	}
	if err := s.store.Prefs().Set(key, str, s.now()); err != nil {
		return err
	}
	s.notify.Invalidate(bus.KindPrefs)
	return nil
}
