package worker

import (
	"log"
	"sync"
	"time"
)

const stopTimeout = 10 * time.Second

type Worker interface {
	Name() string
	Start()
	Stop()
}

type Scheduler struct {
	workers []Worker
	wg      sync.WaitGroup
	stopped bool
	mu      sync.RWMutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		workers: make([]Worker, 0),
	}
}

func (s *Scheduler) AddWorker(worker Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker)
}

// Status reports every registered worker as enabled while the scheduler runs.
func (s *Scheduler) Status() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := make(map[string]bool, len(s.workers))
	for _, w := range s.workers {
		status[w.Name()] = !s.stopped
	}
	return status
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	log.Println("Starting scheduler with", len(s.workers), "workers")

	for _, worker := range s.workers {
		s.wg.Add(1)
		go func(w Worker) {
			defer s.wg.Done()
			w.Start()
		}(worker)
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	workers := s.workers
	s.mu.Unlock()

	log.Println("Stopping scheduler...")

	for _, worker := range workers {
		worker.Stop()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Scheduler stopped gracefully")
	case <-time.After(stopTimeout):
		log.Println("Scheduler stop timeout")
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.stopped
}
