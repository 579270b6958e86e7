package batch

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hughac94/rungrade-backend/internal/reliability"
)

// Broadcaster is the slice of the stream hub the registry needs; the
// tests substitute a recorder.
type Broadcaster interface {
	Broadcast(jobID string, payload []byte)
	Abandoned(jobID string) bool
	Subscribed(jobID string) bool
	Forget(jobID string)
}

type job struct {
	id         string
	files      []File
	binLengthM float64
	filter     *reliability.Options
	cancel     context.CancelFunc
	createdAt  time.Time
}

// Registry owns all in-flight batch jobs. It is the only holder of job
// state: entries are inserted on submission, removed at the terminal
// event, and evicted by the janitor after a bounded time if a job never
// reaches one.
type Registry struct {
	hub   Broadcaster
	ttl   time.Duration
	delay time.Duration

	mu   sync.Mutex
	jobs map[string]*job
	stop chan struct{}
	once sync.Once
}

func NewRegistry(hub Broadcaster, ttl, progressDelay time.Duration) *Registry {
	r := &Registry{
		hub:   hub,
		ttl:   ttl,
		delay: progressDelay,
		jobs:  map[string]*job{},
		stop:  make(chan struct{}),
	}
	go r.janitor()
	return r
}

// Submit registers a new job and starts its sequential worker,
// returning the job handle immediately.
func (r *Registry) Submit(files []File, binLengthM float64, filter *reliability.Options) string {
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{
		id:         uuid.NewString(),
		files:      files,
		binLengthM: binLengthM,
		filter:     filter,
		cancel:     cancel,
		createdAt:  time.Now(),
	}

	r.mu.Lock()
	r.jobs[j.id] = j
	r.mu.Unlock()

	go r.run(ctx, j)
	return j.id
}

// Active reports the number of jobs currently held.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// Close stops the janitor and cancels every in-flight job.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.stop) })
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, j := range r.jobs {
		j.cancel()
		delete(r.jobs, id)
	}
}

func (r *Registry) run(ctx context.Context, j *job) {
	total := len(j.files)

	report := Process(ctx, j.files, j.binLengthM, j.filter, func(processed int, sofar Report) {
		r.emit(j.id, Event{
			Type:      "progress",
			Processed: processed,
			Total:     total,
			Percent:   float64(processed) / float64(total) * 100,
			Results:   sofar.Results,
			Errors:    sofar.Errors,
		})

		// cosmetic pacing so a consumer can drain the stream
		if r.delay > 0 {
			time.Sleep(r.delay)
		}
		// every subscriber left: stop burning cycles on the rest
		if r.hub != nil && r.hub.Abandoned(j.id) {
			j.cancel()
		}
	})

	if ctx.Err() == nil {
		r.emit(j.id, Event{
			Type:     "complete",
			Total:    total,
			Results:  report.Results,
			Errors:   report.Errors,
			Analysis: &report.Analysis,
		})
	}
	r.discard(j)
}

// discard releases a job's buffers and registry entry; jobs are never
// kept past their terminal event.
func (r *Registry) discard(j *job) {
	j.cancel()
	r.mu.Lock()
	delete(r.jobs, j.id)
	r.mu.Unlock()
	if r.hub != nil {
		r.hub.Forget(j.id)
	}
	j.files = nil
}

func (r *Registry) emit(jobID string, ev Event) {
	if r.hub == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("marshal batch event: %v", err)
		return
	}
	r.hub.Broadcast(jobID, payload)
}

func (r *Registry) janitor() {
	// a non-positive TTL disables eviction entirely; jobs are still
	// discarded at their terminal event
	if r.ttl <= 0 {
		return
	}
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.evictStale()
		}
	}
}

func (r *Registry) evictStale() {
	if r.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, j := range r.jobs {
		if !j.createdAt.Before(cutoff) {
			continue
		}
		// a long job somebody is still watching is not stale
		if r.hub != nil && r.hub.Subscribed(id) {
			continue
		}
		j.cancel()
		delete(r.jobs, id)
		log.Printf("evicted stale batch job %s", id)
	}
}
