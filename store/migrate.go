package store

import (
	"errors"
	"fmt"
	"log"
)

// Migrate copies state from the legacy flat store into the structured
// store. It runs only when the structured store holds no records at
// all, so it happens at most once per data directory; after that the
// structured store is authoritative and the flat blob is left in place
// untouched.
func Migrate(s *Store, flat *FlatStore, logger *log.Logger) (bool, error) {
	empty, err := s.Empty()
	if err != nil {
		return false, fmt.Errorf("migrate: %w", err)
	}
	if !empty {
		return false, nil
	}
	if flat == nil || !flat.Has() {
		return false, nil
	}

	state, err := flat.Read()
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("migrate: %w", err)
	}

	if err := s.SaveState(state); err != nil {
		return false, fmt.Errorf("migrate: %w", err)
	}
	if logger != nil {
		logger.Printf("migrated flat store: %d tasks, %d lists, %d habits",
			len(state.Tasks), len(state.TodoLists), len(state.Habits))
	}
	return true, nil
}
