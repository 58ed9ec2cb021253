package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/daykeep/daykeep/plan"
)

// flatStateKey is the single key the legacy generation stored the whole
// state under.
const flatStateKey = "state"

// FlatStore is the legacy flat-file generation: the entire application
// state serialized as one JSON blob. New writes still land here so a
// rollback to an older build finds current data; reads only happen
// during migration.
type FlatStore struct {
	d *diskv.Diskv
}

// OpenFlat opens the legacy flat store in dir.
func OpenFlat(dir string) (*FlatStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create flat store dir: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 8 * 1024 * 1024,
	})
	return &FlatStore{d: d}, nil
}

// Has reports whether a flat state blob exists.
func (f *FlatStore) Has() bool {
	return f.d.Has(flatStateKey)
}

// Read loads the flat state blob. Unknown fields are tolerated here:
// the blob may have been written by an older or newer build, and the
// legacy generation never validated its schema.
func (f *FlatStore) Read() (plan.State, error) {
	data, err := f.d.Read(flatStateKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return plan.State{}, ErrNotFound
		}
		return plan.State{}, fmt.Errorf("read flat state: %w", err)
	}
	var state plan.State
	if err := json.Unmarshal(data, &state); err != nil {
		return plan.State{}, fmt.Errorf("decode flat state: %w", err)
	}
	return state, nil
}

// Write replaces the flat state blob.
func (f *FlatStore) Write(state plan.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode flat state: %w", err)
	}
	if err := f.d.Write(flatStateKey, data); err != nil {
		return fmt.Errorf("write flat state: %w", err)
	}
	return nil
}
