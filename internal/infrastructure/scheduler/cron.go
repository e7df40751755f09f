package scheduler

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"fedwatch/internal/ports"
)

const (
	defaultMinute = 0
	defaultHour   = 6
)

// DailyScheduler fires the job once on start and then once a day at the
// configured wall-clock time. Documents appear at most once a day and
// idempotent runs make an extra trigger harmless.
type DailyScheduler struct {
	minute   int
	hour     int
	location *time.Location

	mu   sync.Mutex
	stop chan struct{}
}

var _ ports.Scheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler from a cron-style expression. Only the
// minute and hour fields are honored; the day fields are always every-day.
func NewDailyScheduler(expr string, loc *time.Location) *DailyScheduler {
	if loc == nil {
		loc = time.UTC
	}
	minute, hour := parseDailyExpr(expr)
	return &DailyScheduler{minute: minute, hour: hour, location: loc}
}

// Start begins the trigger loop and invokes job with each trigger time.
func (s *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return nil
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	go func() {
		job(time.Now().In(s.location))
		for {
			timer := time.NewTimer(time.Until(s.nextTrigger(time.Now())))
			select {
			case t := <-timer.C:
				job(t.In(s.location))
			case <-ctx.Done():
				timer.Stop()
				return
			case <-stop:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop halts the trigger goroutine. Safe to call more than once.
func (s *DailyScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}

// nextTrigger returns the next configured wall-clock occurrence strictly
// after now.
func (s *DailyScheduler) nextTrigger(now time.Time) time.Time {
	now = now.In(s.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, s.location)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// parseDailyExpr reads the minute and hour fields of a five-field cron
// expression, falling back to 06:00 for anything it cannot parse.
func parseDailyExpr(expr string) (minute, hour int) {
	minute, hour = defaultMinute, defaultHour
	fields := strings.Fields(expr)
	if len(fields) < 2 {
		return minute, hour
	}
	if m, err := strconv.Atoi(fields[0]); err == nil && m >= 0 && m < 60 {
		minute = m
	}
	if h, err := strconv.Atoi(fields[1]); err == nil && h >= 0 && h < 24 {
		hour = h
	}
	return minute, hour
}
