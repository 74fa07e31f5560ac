package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/models"
)

// StatusCounts tallies the current queue's records by status. Reads are not
// linearizable with writes; within a polling interval that is fine.
type StatusCounts struct {
	QueueID  string                     `json:"queueId"`
	Grade    string                     `json:"grade,omitempty"`
	Total    int64                      `json:"total"`
	ByStatus map[dismissal.Status]int64 `json:"byStatus"`
}

// CountsByGrade tallies one grade of the open queue.
func CountsByGrade(ctx context.Context, grade string) (*StatusCounts, error) {
	return counts(ctx, grade)
}

// CountsSchoolWide tallies the whole open queue.
func CountsSchoolWide(ctx context.Context) (*StatusCounts, error) {
	return counts(ctx, "")
}

// counts runs the single GROUP BY that replaces one COUNT query per status.
func counts(ctx context.Context, grade string) (*StatusCounts, error) {
	gdb := db.Conn().WithContext(ctx)

	var open models.Queue
	err := gdb.Where("status = ?", models.QueueOpen).First(&open).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOpenQueue
	}
	if err != nil {
		// store failure, not an empty result; must reach the 500 path
		return nil, err
	}

	q := gdb.Model(&models.DismissalRecord{}).Where("queue_id = ?", open.ID)
	if grade != "" {
		q = q.Where("grade = ?", grade)
	}

	type row struct {
		Status dismissal.Status
		N      int64
	}
	var rows []row
	if err := q.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := &StatusCounts{QueueID: open.ID, Grade: grade, ByStatus: map[dismissal.Status]int64{}}
	for _, s := range dismissal.AllStatuses {
		out.ByStatus[s] = 0
	}
	for _, r := range rows {
		out.ByStatus[r.Status] = r.N
		out.Total += r.N
	}
	return out, nil
}

// CountsPoller re-reads school-wide counts on a fixed interval. Each tick
// supersedes the previous read: the old context is canceled before a new
// read starts, so a slow query can never make ticks pile up behind it.
type CountsPoller struct {
	interval time.Duration
	publish  func(*StatusCounts)
	done     chan struct{}
}

func NewCountsPoller(interval time.Duration, publish func(*StatusCounts)) *CountsPoller {
	return &CountsPoller{interval: interval, publish: publish, done: make(chan struct{})}
}

func (p *CountsPoller) Start() {
	go p.run()
}

func (p *CountsPoller) Stop() {
	close(p.done)
}

func (p *CountsPoller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var cancelPrev context.CancelFunc
	defer func() {
		if cancelPrev != nil {
			cancelPrev()
		}
	}()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			if cancelPrev != nil {
				cancelPrev()
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancelPrev = cancel
			go p.tick(ctx)
		}
	}
}

func (p *CountsPoller) tick(ctx context.Context) {
	counts, err := CountsSchoolWide(ctx)
	if err != nil {
		// no open queue outside dismissal hours; nothing to publish
		if !errors.Is(err, ErrNoOpenQueue) && !errors.Is(err, context.Canceled) {
			slog.Warn("counts poll failed", "component", "counts", "err", err)
		}
		return
	}
	select {
	case <-ctx.Done():
	default:
		p.publish(counts)
	}
}
