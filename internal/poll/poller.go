// Package poll drives periodic refresh for one consumer.
//
// Every consumer (popup, dashboard) owns an independent Poller; there is
// no cross-consumer coordination. Each tick replaces the consumer's local
// snapshot wholesale, which keeps the design eventually consistent
// without any diffing or shared locks.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/user/phishguard/internal/util"
)

// Job is one periodic refresh task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	lastRun    time.Time
	nextRun    time.Time
	lastError  error
	errorCount int
	running    bool
	mu         sync.RWMutex
}

// JobStatus is a point-in-time view of a job.
type JobStatus struct {
	Name       string        `json:"name"`
	Interval   time.Duration `json:"interval"`
	LastRun    time.Time     `json:"last_run"`
	NextRun    time.Time     `json:"next_run"`
	LastError  string        `json:"last_error,omitempty"`
	ErrorCount int           `json:"error_count"`
	Running    bool          `json:"running"`
}

// Poller schedules refresh jobs for a single consumer.
type Poller struct {
	ctx  context.Context
	jobs []*Job
	mu   sync.RWMutex
}

// NewPoller creates a poller bound to the given context.
func NewPoller(ctx context.Context) *Poller {
	return &Poller{
		ctx:  ctx,
		jobs: make([]*Job, 0),
	}
}

// AddJob registers a job. The first run happens on the next tick, so a
// fresh snapshot is available almost immediately.
func (p *Poller) AddJob(job *Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	job.nextRun = time.Now()
	p.jobs = append(p.jobs, job)
}

// Run ticks once per second and fires due jobs until the context ends.
func (p *Poller) Run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	util.Debug("Poller started with %d jobs", len(p.jobs))

	for {
		select {
		case <-p.ctx.Done():
			util.Debug("Poller stopping")
			return
		case now := <-ticker.C:
			p.checkJobs(now)
		}
	}
}

func (p *Poller) checkJobs(now time.Time) {
	p.mu.RLock()
	jobs := p.jobs
	p.mu.RUnlock()

	for _, job := range jobs {
		job.mu.RLock()
		due := !job.running && !now.Before(job.nextRun)
		job.mu.RUnlock()

		if due {
			go p.runJob(job)
		}
	}
}

func (p *Poller) runJob(job *Job) {
	job.mu.Lock()
	if job.running {
		job.mu.Unlock()
		return
	}
	job.running = true
	job.lastRun = time.Now()
	job.mu.Unlock()

	ctx, cancel := context.WithTimeout(p.ctx, job.Interval)
	err := job.Run(ctx)
	cancel()

	job.mu.Lock()
	job.running = false
	if err != nil {
		job.lastError = err
		job.errorCount++
		util.Warn("Poll %s failed: %v", job.Name, err)
		// Transient read failures retry sooner; the snapshot stays
		// whatever the last successful poll produced.
		job.nextRun = time.Now().Add(job.Interval / 2)
	} else {
		job.lastError = nil
		job.nextRun = time.Now().Add(job.Interval)
	}
	job.mu.Unlock()
}

// Kick schedules a job to run on the next tick.
func (p *Poller) Kick(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, job := range p.jobs {
		if job.Name == name {
			job.mu.Lock()
			job.nextRun = time.Now()
			job.mu.Unlock()
			return true
		}
	}
	return false
}

// Statuses returns the status of all jobs.
func (p *Poller) Statuses() []JobStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	statuses := make([]JobStatus, len(p.jobs))
	for i, job := range p.jobs {
		job.mu.RLock()
		st := JobStatus{
			Name:       job.Name,
			Interval:   job.Interval,
			LastRun:    job.lastRun,
			NextRun:    job.nextRun,
			ErrorCount: job.errorCount,
			Running:    job.running,
		}
		if job.lastError != nil {
			st.LastError = job.lastError.Error()
		}
		job.mu.RUnlock()
		statuses[i] = st
	}
	return statuses
}
