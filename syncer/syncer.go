// Package syncer drains the pending sync queue to a remote backend.
// The Manager owns nothing but the queue: handlers for each entity type
// are registered by the caller, and connectivity is probed through an
// injected function so tests can run fully offline.
package syncer

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/daykeep/daykeep/store"
)

const (
	// MaxRetries is the number of failed attempts after which a queue
	// item is dropped.
	MaxRetries = 3

	// DefaultInterval is the periodic drain cadence used by Start when
	// no interval is configured.
	DefaultInterval = 30 * time.Second

	// onlineSettleDelay is how long NotifyOnline waits before draining,
	// giving a freshly restored connection a moment to stabilize.
	onlineSettleDelay = time.Second
)

// Queue is the slice of the store the Manager needs.
type Queue interface {
	SyncQueue() ([]store.QueueItem, error)
	UpdateSyncItem(store.QueueItem) error
	RemoveSyncItem(id string) error
}

// Handler attempts to sync one queue item. It returns true when the
// item was accepted by the backend, and false with a nil error when the
// backend rejected it in a retryable way.
type Handler func(ctx context.Context, item store.QueueItem) (bool, error)

// Options configures a Manager.
type Options struct {
	// Online reports current connectivity. If nil, the Manager assumes
	// it is always online.
	Online func() bool

	// Logger receives drain progress and warnings. If nil, logging is
	// discarded.
	Logger *log.Logger
}

// Manager drains the sync queue. It is safe for concurrent use; at most
// one drain pass runs at a time, and overlapping requests are dropped
// rather than queued.
type Manager struct {
	queue  Queue
	online func() bool
	logger *log.Logger

	mu           sync.Mutex
	draining     bool
	handlers     map[store.ItemType]Handler
	listeners    map[int]func(store.QueueItem)
	nextListener int
}

// New returns a Manager draining the given queue.
func New(queue Queue, opts Options) *Manager {
	online := opts.Online
	if online == nil {
		online = func() bool { return true }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		queue:     queue,
		online:    online,
		logger:    logger,
		handlers:  make(map[store.ItemType]Handler),
		listeners: make(map[int]func(store.QueueItem)),
	}
}

// RegisterHandler sets the handler for one entity type, replacing any
// existing handler for that type.
func (m *Manager) RegisterHandler(itemType store.ItemType, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[itemType] = handler
}

// AddListener registers a callback invoked after each successfully
// synced item. The returned function removes the listener.
func (m *Manager) AddListener(fn func(store.QueueItem)) (remove func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// ProcessQueue runs one drain pass: every pending item is attempted
// once, oldest first. Items whose handler succeeds are removed and
// announced to listeners. Items that fail have their retry count
// persisted and are dropped once it reaches MaxRetries. Items with no
// registered handler stay queued untouched.
//
// A pass already in progress makes ProcessQueue return immediately, as
// does being offline.
func (m *Manager) ProcessQueue(ctx context.Context) error {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return nil
	}
	m.draining = true
	handlers := make(map[store.ItemType]Handler, len(m.handlers))
	for t, h := range m.handlers {
		handlers[t] = h
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.draining = false
		m.mu.Unlock()
	}()

	if !m.online() {
		return nil
	}

	items, err := m.queue.SyncQueue()
	if err != nil {
		return fmt.Errorf("read sync queue: %w", err)
	}
	if len(items) == 0 {
		return nil
	}
	m.logger.Printf("sync: draining %d items", len(items))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		handler, ok := handlers[item.Type]
		if !ok {
			m.logger.Printf("sync: no handler for type %q, leaving %s queued", item.Type, item.ID)
			continue
		}

		synced, err := handler(ctx, item)
		if err != nil {
			m.logger.Printf("sync: %s failed: %v", item.ID, err)
		}
		if synced {
			if err := m.queue.RemoveSyncItem(item.ID); err != nil {
				return fmt.Errorf("remove synced item: %w", err)
			}
			m.notify(item)
			continue
		}

		item.Retries++
		if item.Retries >= MaxRetries {
			m.logger.Printf("sync: dropping %s after %d attempts", item.ID, item.Retries)
			if err := m.queue.RemoveSyncItem(item.ID); err != nil {
				return fmt.Errorf("drop exhausted item: %w", err)
			}
			continue
		}
		if err := m.queue.UpdateSyncItem(item); err != nil {
			return fmt.Errorf("persist retry count: %w", err)
		}
	}
	return nil
}

func (m *Manager) notify(item store.QueueItem) {
	m.mu.Lock()
	listeners := make([]func(store.QueueItem), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(item)
	}
}

// NotifyOnline signals that connectivity was just restored. The drain
// is scheduled after a short settle delay rather than run inline.
func (m *Manager) NotifyOnline(ctx context.Context) {
	time.AfterFunc(onlineSettleDelay, func() {
		if err := m.ProcessQueue(ctx); err != nil {
			m.logger.Printf("sync: drain after reconnect: %v", err)
		}
	})
}

// Start begins periodic drains every interval (DefaultInterval when
// zero) and runs one immediately. The returned function stops the
// schedule; it does not interrupt a pass already running.
func (m *Manager) Start(ctx context.Context, interval time.Duration) (stop func(), err error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	c := cron.New()
	_, err = c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := m.ProcessQueue(ctx); err != nil {
			m.logger.Printf("sync: scheduled drain: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule sync: %w", err)
	}
	c.Start()

	if err := m.ProcessQueue(ctx); err != nil {
		m.logger.Printf("sync: initial drain: %v", err)
	}

	return func() { c.Stop() }, nil
}
