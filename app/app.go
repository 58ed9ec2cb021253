// Package app wires the pure reducer to the durable stores. Every
// mutation flows through App.Dispatch, which reduces in memory,
// enqueues sync items synchronously, and persists the new state in the
// background.
package app

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/daykeep/daykeep/plan"
	"github.com/daykeep/daykeep/store"
)

// Options configures Open.
type Options struct {
	// DataDir is the directory holding both store generations.
	DataDir string

	// Reducer overrides the default reducer, letting tests inject
	// deterministic clocks and id generators.
	Reducer plan.Reducer

	// Logger receives persistence warnings. If nil, logging is
	// discarded.
	Logger *log.Logger

	// Defaults seeds planner settings on first run, before any settings
	// record exists. Once settings have been persisted the stored
	// values win and Defaults is ignored.
	Defaults Defaults
}

// Defaults carries first-run planner settings, typically sourced from
// the config file. Zero-valued fields are left at their built-in
// defaults.
type Defaults struct {
	DailyCapacityMinutes int
	TaskAgingDays        int
	WorkingHours         *plan.WorkingHours
}

// action converts the defaults into a settings dispatch, reporting
// whether any field is set.
func (d Defaults) action() (plan.SetCapacitySettings, bool) {
	var a plan.SetCapacitySettings
	if d.DailyCapacityMinutes > 0 {
		v := d.DailyCapacityMinutes
		a.DailyCapacityMinutes = &v
	}
	if d.TaskAgingDays > 0 {
		v := d.TaskAgingDays
		a.TaskAgingDays = &v
	}
	if d.WorkingHours != nil {
		hours := *d.WorkingHours
		a.WorkingHours = &hours
	}
	return a, a.DailyCapacityMinutes != nil || a.TaskAgingDays != nil || a.WorkingHours != nil
}

// App owns the in-memory state and the persistence bridge. Methods are
// safe for concurrent use.
type App struct {
	reducer plan.Reducer
	store   *store.Store
	flat    *store.FlatStore
	logger  *log.Logger

	mu    sync.Mutex
	state plan.State

	// Snapshots are persisted by a single worker so writes land in
	// dispatch order; a delete is never overtaken by the upsert of an
	// earlier snapshot that still contains the record.
	persistCh chan persistReq
	loopDone  chan struct{}
	wg        sync.WaitGroup
}

type persistReq struct {
	snapshot plan.State
	action   plan.Action
	prev     plan.State
}

// Open opens both store generations under opts.DataDir, migrates the
// flat generation if the structured store is empty, and hydrates the
// in-memory state.
func Open(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s, err := store.Open(opts.DataDir)
	if err != nil {
		return nil, err
	}
	flat, err := store.OpenFlat(opts.DataDir)
	if err != nil {
		s.Close()
		return nil, err
	}

	if _, err := store.Migrate(s, flat, logger); err != nil {
		s.Close()
		return nil, err
	}

	// Settings written by a previous run (or the migration) take
	// precedence over configuration defaults.
	hasSettings, err := s.HasSettings()
	if err != nil {
		s.Close()
		return nil, err
	}

	state, err := s.LoadState()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}

	a := &App{
		reducer:   opts.Reducer,
		store:     s,
		flat:      flat,
		logger:    logger,
		persistCh: make(chan persistReq, 64),
		loopDone:  make(chan struct{}),
	}
	a.state = state
	go a.persistLoop()

	if !hasSettings {
		if action, ok := opts.Defaults.action(); ok {
			a.Dispatch(action)
		}
	}
	return a, nil
}

// State returns a copy of the current state. Slices inside the copy
// are shared; callers treat them as read-only.
func (a *App) State() plan.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Store exposes the structured store, for wiring the sync manager and
// for queue inspection commands.
func (a *App) Store() *store.Store {
	return a.store
}

// Dispatch applies an action and returns the new state. Sync items
// derived from the action are enqueued before Dispatch returns; the
// state snapshot is persisted in the background. Dispatch never fails:
// persistence problems are logged, and the in-memory state remains the
// source of truth until the next write succeeds.
func (a *App) Dispatch(action plan.Action) plan.State {
	a.mu.Lock()
	prev := a.state
	next := a.reducer.Apply(prev, action)
	a.state = next
	a.mu.Unlock()

	a.enqueueSyncItems(prev, next, action)

	a.wg.Add(1)
	a.persistCh <- persistReq{snapshot: next, action: action, prev: prev}

	return next
}

func (a *App) persistLoop() {
	defer close(a.loopDone)
	for req := range a.persistCh {
		a.persist(req.snapshot, req.action, req.prev)
		a.wg.Done()
	}
}

// persist writes the snapshot to both generations and applies any
// deletions the snapshot upsert cannot express.
func (a *App) persist(snapshot plan.State, action plan.Action, prev plan.State) {
	if err := a.store.SaveState(snapshot); err != nil {
		a.logger.Printf("persist: %v", err)
	}
	a.applyDeletions(action, prev)
	if err := a.flat.Write(snapshot); err != nil {
		a.logger.Printf("persist flat: %v", err)
	}
}

// applyDeletions removes records that the action deleted from state.
// SaveState only upserts, so removals must be explicit.
func (a *App) applyDeletions(action plan.Action, prev plan.State) {
	var err error
	switch act := action.(type) {
	case plan.DeleteTask:
		err = a.store.DeleteTask(act.ID)
	case plan.DeleteHabit:
		err = a.store.DeleteHabit(act.ID)
	case plan.DeleteTimeBlock:
		err = a.store.DeleteTimeBlock(act.ID)
	case plan.DeleteFixedCommitment:
		err = a.store.DeleteFixedCommitment(act.ID)
	case plan.ImportData:
		// A non-nil category set replaces the previous one, so stale
		// category rows must go.
		if act.Categories == nil {
			return
		}
		imported := make(map[string]bool, len(act.Categories))
		for _, c := range act.Categories {
			imported[c.ID] = true
		}
		for _, c := range prev.Categories {
			if !imported[c.ID] {
				if err := a.store.DeleteCategory(c.ID); err != nil {
					a.logger.Printf("persist: %v", err)
				}
			}
		}
		return
	default:
		return
	}
	if err != nil {
		a.logger.Printf("persist: %v", err)
	}
}

// Flush blocks until all background persistence started so far has
// finished.
func (a *App) Flush() {
	a.wg.Wait()
}

// Close flushes pending writes and closes the store. The app must not
// be used after Close.
func (a *App) Close() error {
	a.Flush()
	close(a.persistCh)
	<-a.loopDone
	return a.store.Close()
}
