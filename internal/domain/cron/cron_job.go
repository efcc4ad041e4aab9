package cron

import (
	"context"
	"sync"
	"time"

	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// CronJob is a periodic maintenance task of the cron process.
type CronJob interface {
	Name() string
	Do(context.Context)

	// RunNow reports whether the job runs as soon as the manager starts
	// instead of waiting for Next.
	RunNow() bool
	Next() time.Time
}

// CronJobManager runs every registered job on its own timer. A job is never
// run concurrently with itself.
type CronJobManager struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	timers map[CronJob]*time.Timer
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{timers: make(map[CronJob]*time.Timer)}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timers[job] = nil
}

// Start schedules every registered job and blocks until Cancel is called.
func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron started with %d jobs", len(m.timers))

	m.mu.Lock()
	for job := range m.timers {
		m.wg.Add(1)
		if job.RunNow() {
			go m.run(ctx, job)
		} else {
			m.timers[job] = m.after(ctx, job)
		}
	}
	m.mu.Unlock()

	m.wg.Wait()
	xcontext.Logger(ctx).Infof("Cron stopped")
}

// Cancel stops all pending timers. A job which is running finishes but is not
// scheduled again.
func (m *CronJobManager) Cancel(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for job, timer := range m.timers {
		if timer != nil {
			timer.Stop()
		} else {
			xcontext.Logger(ctx).Debugf("Job %s is cancelled while running", job.Name())
		}

		m.wg.Done()
	}

	m.timers = make(map[CronJob]*time.Timer)
}

func (m *CronJobManager) after(ctx context.Context, job CronJob) *time.Timer {
	return time.AfterFunc(time.Until(job.Next()), func() { m.run(ctx, job) })
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				xcontext.Logger(ctx).Errorf("Job %s panicked: %v", job.Name(), r)
			}
		}()

		job.Do(ctx)
	}()
	xcontext.Logger(ctx).Infof("Job %s finished in %s", job.Name(), time.Since(start))

	m.mu.Lock()
	defer m.mu.Unlock()

	// Cancelled jobs are gone from the map.
	if _, ok := m.timers[job]; ok {
		m.timers[job] = m.after(ctx, job)
	}
}
