package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"roomfeed/internal/repository"
	"roomfeed/internal/uploads"
)

const sweepTimeout = time.Minute

// FileStore is the part of uploads.Store the sweep needs.
type FileStore interface {
	List() ([]uploads.File, error)
	Remove(url string) error
}

// UploadSweepWorker deletes uploaded files no post references once they
// are older than the grace period. The grace period covers the window
// between saving a file and inserting its post.
type UploadSweepWorker struct {
	store    FileStore
	posts    repository.PostRepository
	interval time.Duration
	grace    time.Duration
	stopChan chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	running  bool
	stopped  bool
	now      func() time.Time
}

func NewUploadSweepWorker(store FileStore, posts repository.PostRepository, interval, grace time.Duration) *UploadSweepWorker {
	return &UploadSweepWorker{
		store:    store,
		posts:    posts,
		interval: interval,
		grace:    grace,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

func (w *UploadSweepWorker) Name() string {
	return "upload_sweep"
}

func (w *UploadSweepWorker) Start() {
	w.mu.Lock()
	if w.running || w.stopped {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	log.Printf("Upload sweep worker started with interval %v", w.interval)

	go w.run()
}

func (w *UploadSweepWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	if wasRunning {
		<-w.done
	}
	log.Println("Upload sweep worker stopped")
}

func (w *UploadSweepWorker) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stopChan:
			return
		}
	}
}

func (w *UploadSweepWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := w.Sweep(ctx)
	if err != nil {
		log.Printf("Upload sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Upload sweep removed %d orphaned files", removed)
	}
}

// Sweep runs one pass and returns how many files it removed.
func (w *UploadSweepWorker) Sweep(ctx context.Context) (int, error) {
	files, err := w.store.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list uploads: %w", err)
	}
	if len(files) == 0 {
		return 0, nil
	}

	urls, err := w.posts.ImageURLs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load referenced images: %w", err)
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		referenced[url] = struct{}{}
	}

	cutoff := w.now().Add(-w.grace)
	removed := 0
	for _, file := range files {
		if _, ok := referenced[file.Path]; ok {
			continue
		}
		if file.ModTime.After(cutoff) {
			continue
		}
		if err := w.store.Remove(file.Path); err != nil {
			log.Printf("Failed to remove orphaned upload %s: %v", file.Path, err)
			continue
		}
		removed++
	}

	return removed, nil
}
