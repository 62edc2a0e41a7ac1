// Package scheduler runs downloads on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled task.
type Job func(ctx context.Context) error

// Scheduler manages periodic download jobs.
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

// New creates a scheduler in the local timezone.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.Local)),
		jobs: make(map[string]cron.EntryID),
	}
}

// AddJob adds a job with a cron schedule, e.g. "0 */2 * * *" for every two
// hours.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		log.Printf("[scheduler] starting job: %s", name)
		start := time.Now()

		if err := job(ctx); err != nil {
			log.Printf("[scheduler] job %s failed: %v", name, err)
		} else {
			log.Printf("[scheduler] job %s completed in %v", name, time.Since(start))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	log.Printf("[scheduler] added job: %s (schedule: %s)", name, schedule)
	return nil
}

// AddDownloadJob schedules a download every intervalHours hours.
func (s *Scheduler) AddDownloadJob(intervalHours int, job Job) error {
	schedule := fmt.Sprintf("0 */%d * * *", intervalHours)
	return s.AddJob("download", schedule, job)
}

// RemoveJob removes a scheduled job.
func (s *Scheduler) RemoveJob(name string) {
	if entryID, ok := s.jobs[name]; ok {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		log.Printf("[scheduler] removed job: %s", name)
	}
}

// NextRun returns when the named job fires next.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	entryID, ok := s.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == entryID {
			return entry.Next, true
		}
	}
	return time.Time{}, false
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	log.Println("[scheduler] starting")
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that closes when running
// jobs finish.
func (s *Scheduler) Stop() context.Context {
	log.Println("[scheduler] stopping")
	return s.cron.Stop()
}
