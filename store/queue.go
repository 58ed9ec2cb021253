package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType identifies the entity kind a sync item refers to.
type ItemType string

const (
	ItemTask            ItemType = "task"
	ItemTodoList        ItemType = "todoList"
	ItemHabit           ItemType = "habit"
	ItemCategory        ItemType = "category"
	ItemTimeBlock       ItemType = "timeBlock"
	ItemFixedCommitment ItemType = "fixedCommitment"
)

// ItemAction identifies the operation a sync item records.
type ItemAction string

const (
	ActionCreate ItemAction = "create"
	ActionUpdate ItemAction = "update"
	ActionDelete ItemAction = "delete"
)

// QueueItem is one pending sync operation. Data holds the entity
// payload for creates and updates, and just the id for deletes.
type QueueItem struct {
	ID        string          `json:"id"`
	Type      ItemType        `json:"type"`
	Action    ItemAction      `json:"action"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	Retries   int             `json:"retries"`
}

// EnqueueSync appends a sync item to the queue and returns it. The id
// embeds the type and action so queue contents are greppable during
// debugging.
func (s *Store) EnqueueSync(itemType ItemType, action ItemAction, payload any) (QueueItem, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return QueueItem{}, fmt.Errorf("encode sync payload: %w", err)
	}
	item := QueueItem{
		ID:        fmt.Sprintf("%s-%s-%s", itemType, action, uuid.NewString()),
		Type:      itemType,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	_, err = s.db.Exec(
		"INSERT INTO sync_queue (id, type, action, data, timestamp, retries) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, string(item.Type), string(item.Action), []byte(item.Data), item.Timestamp, item.Retries,
	)
	if err != nil {
		return QueueItem{}, fmt.Errorf("enqueue sync item: %w", err)
	}
	return item, nil
}

// SyncQueue returns all pending sync items oldest first. Timestamps
// have millisecond resolution, so rowid breaks ties to keep the order
// stable across reads.
func (s *Store) SyncQueue() ([]QueueItem, error) {
	rows, err := s.db.Query("SELECT id, type, action, data, timestamp, retries FROM sync_queue ORDER BY timestamp, rowid")
	if err != nil {
		return nil, fmt.Errorf("query sync queue: %w", err)
	}
	defer rows.Close()

	var items []QueueItem
	for rows.Next() {
		var item QueueItem
		var itemType, action string
		var data []byte
		if err := rows.Scan(&item.ID, &itemType, &action, &data, &item.Timestamp, &item.Retries); err != nil {
			return nil, fmt.Errorf("scan sync item: %w", err)
		}
		item.Type = ItemType(itemType)
		item.Action = ItemAction(action)
		item.Data = data
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sync queue: %w", err)
	}
	return items, nil
}

// UpdateSyncItem replaces a queued item, keyed by id. Used to persist
// retry counts between drain passes.
func (s *Store) UpdateSyncItem(item QueueItem) error {
	result, err := s.db.Exec(
		"UPDATE sync_queue SET type = ?, action = ?, data = ?, timestamp = ?, retries = ? WHERE id = ?",
		string(item.Type), string(item.Action), []byte(item.Data), item.Timestamp, item.Retries, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update sync item %s: %w", item.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sync item %s: %w", item.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveSyncItem deletes a queued item. Removing a missing id is not
// an error.
func (s *Store) RemoveSyncItem(id string) error {
	if _, err := s.db.Exec("DELETE FROM sync_queue WHERE id = ?", id); err != nil {
		return fmt.Errorf("remove sync item %s: %w", id, err)
	}
	return nil
}

// ClearSyncQueue deletes every queued item.
func (s *Store) ClearSyncQueue() error {
	if _, err := s.db.Exec("DELETE FROM sync_queue"); err != nil {
		return fmt.Errorf("clear sync queue: %w", err)
	}
	return nil
}

// SyncQueueCount returns the number of pending sync items.
func (s *Store) SyncQueueCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sync_queue").Scan(&count); err != nil {
		return 0, fmt.Errorf("count sync queue: %w", err)
	}
	return count, nil
}
