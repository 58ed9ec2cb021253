package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/store"
	"github.com/daykeep/daykeep/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage the pending sync queue",
}

// sync status
var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending sync items",
	Args:  cobra.NoArgs,
	RunE:  runSyncStatus,
}

// sync run
var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Drain the queue once against the configured endpoint",
	Args:  cobra.NoArgs,
	RunE:  runSyncRun,
}

// sync watch
var syncWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Drain the queue periodically until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runSyncWatch,
}

// sync clear
var syncClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every pending sync item",
	Args:  cobra.NoArgs,
	RunE:  runSyncClear,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncStatusCmd, syncRunCmd, syncWatchCmd, syncClearCmd)
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	a, cfg, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.Store().SyncQueue()
	if err != nil {
		return err
	}

	if cfg.Sync.Endpoint == "" {
		fmt.Println("Sync is not configured (set sync.endpoint in config.toml).")
	}
	if len(items) == 0 {
		fmt.Println("Queue is empty.")
		return nil
	}

	fmt.Printf("%d pending items:\n", len(items))
	for _, item := range items {
		at := time.UnixMilli(item.Timestamp).Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("  %s %s  %s", item.Type, item.Action, at)
		if item.Retries > 0 {
			line += fmt.Sprintf("  (%d retries)", item.Retries)
		}
		fmt.Println(line)
	}
	return nil
}

func runSyncRun(cmd *cobra.Command, args []string) error {
	a, cfg, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	manager, err := newSyncManager(a.Store(), cfg.Sync.Endpoint)
	if err != nil {
		return err
	}

	synced := 0
	defer manager.AddListener(func(store.QueueItem) { synced++ })()

	if err := manager.ProcessQueue(cmd.Context()); err != nil {
		return err
	}
	remaining, err := a.Store().SyncQueueCount()
	if err != nil {
		return err
	}
	fmt.Printf("Synced %d items, %d remaining.\n", synced, remaining)
	return nil
}

func runSyncWatch(cmd *cobra.Command, args []string) error {
	a, cfg, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	manager, err := newSyncManager(a.Store(), cfg.Sync.Endpoint)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stop, err := manager.Start(ctx, cfg.SyncInterval())
	if err != nil {
		return err
	}
	defer stop()

	fmt.Println("Watching sync queue; SIGHUP forces a drain, Ctrl-C stops.")
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range signals {
		if sig == syscall.SIGHUP {
			// Connectivity is back (or the operator wants a drain now);
			// give the link a moment to settle, then drain.
			manager.NotifyOnline(ctx)
			continue
		}
		return nil
	}
	return nil
}

func runSyncClear(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	count, err := a.Store().SyncQueueCount()
	if err != nil {
		return err
	}
	if err := a.Store().ClearSyncQueue(); err != nil {
		return err
	}
	fmt.Printf("Cleared %d items.\n", count)
	return nil
}

// newSyncManager wires an HTTP handler for every entity type against
// the configured endpoint.
func newSyncManager(s *store.Store, endpoint string) (*syncer.Manager, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("sync is not configured: set sync.endpoint in config.toml")
	}

	manager := syncer.New(s, syncer.Options{
		Logger: log.New(os.Stderr, "", 0),
	})
	handler := syncer.HTTPHandler(&http.Client{Timeout: 15 * time.Second}, endpoint)
	for _, itemType := range []store.ItemType{
		store.ItemTask, store.ItemTodoList, store.ItemHabit,
		store.ItemCategory, store.ItemTimeBlock, store.ItemFixedCommitment,
	} {
		manager.RegisterHandler(itemType, handler)
	}
	return manager, nil
}
