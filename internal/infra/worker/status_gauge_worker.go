package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/infra/http/middleware"
)

// StatusGaugeWorker refreshes the leads_by_status gauge on a timer so
// the pipeline breakdown shows up on /metrics. Read-only: all writes
// still go through the mutation path.
type StatusGaugeWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewStatusGaugeWorker(db *sql.DB) *StatusGaugeWorker {
	return &StatusGaugeWorker{
		db:           db,
		tickInterval: 1 * time.Minute,
	}
}

func (w *StatusGaugeWorker) Start(ctx context.Context) {
	log.Println("🕒 status gauge worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ status gauge worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatusGaugeWorker) refresh(ctx context.Context) {
	rows, err := w.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM buyers GROUP BY status`)
	if err != nil {
		log.Printf("❌ failed to count leads by status: %v", err)
		return
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			log.Printf("⚠️ failed to scan status count: %v", err)
			continue
		}
		counts[status] = count
	}

	// Statuses with no leads still get an explicit zero.
	for _, status := range entity.Statuses {
		middleware.SetLeadsByStatus(status, counts[status])
	}
}
