package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okulov/casetrack/internal/model"
)

// WriterConfig controls batching behavior.
type WriterConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// DefaultWriterConfig returns sensible batching defaults. Drops are rare
// events, so the batch is small and the flush timer does most of the work.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     16,
		FlushInterval: 2 * time.Second,
	}
}

// WriterMetrics counts writer activity.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Flushes   int64
	Errors    int64
}

// dropRow is the database representation of a recorded drop.
type dropRow struct {
	ID             uuid.UUID
	Name           string
	PriceRaw       string
	Price          float64
	ImageURL       string
	TotalSpent     float64
	TotalDropValue float64
	CasesOpened    int64
	ReceivedAt     int64
}

// Writer accumulates drop records and writes them to the drops table in
// batches.
type Writer struct {
	cfg    WriterConfig
	logger *slog.Logger

	db *pgxpool.Pool

	batch       []dropRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics WriterMetrics
}

// NewWriter creates a Writer backed by the given pool.
func NewWriter(cfg WriterConfig, db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultWriterConfig().BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultWriterConfig().FlushInterval
	}
	return &Writer{
		cfg:    cfg,
		db:     db,
		logger: logger,
		batch:  make([]dropRow, 0, cfg.BatchSize),
	}
}

// Start begins the periodic flush loop.
func (w *Writer) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("history writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer, flushing anything still queued.
func (w *Writer) Stop(ctx context.Context) error {
	w.logger.Info("stopping history writer")

	if w.cancel != nil {
		w.cancel()
	}

	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("history writer stopped")
	case <-ctx.Done():
		w.logger.Warn("history writer stop timed out")
	}

	// Final flush
	w.flush()

	return nil
}

// Record queues a drop and its stats snapshot for insertion.
func (w *Writer) Record(drop model.Drop, stats model.Stats) {
	row := w.transform(drop, stats)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// Stats returns current metrics.
func (w *Writer) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// transform converts a drop and its stats snapshot to a dropRow.
func (w *Writer) transform(drop model.Drop, stats model.Stats) dropRow {
	return dropRow{
		ID:             drop.ID,
		Name:           drop.Name,
		PriceRaw:       drop.PriceRaw,
		Price:          drop.Price,
		ImageURL:       drop.ImageURL,
		TotalSpent:     stats.TotalSpent,
		TotalDropValue: stats.TotalDropValue,
		CasesOpened:    int64(stats.CasesOpened),
		ReceivedAt:     time.Now().UnixMicro(),
	}
}

// flushLoop periodically flushes the batch.
func (w *Writer) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush()
		}
	}
}

// flush writes the current batch to the database.
func (w *Writer) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	// Take ownership of current batch
	batch := w.batch
	w.batch = make([]dropRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed drops",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *Writer) batchInsert(rows []dropRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO drops (id, name, price_raw, price, image_url, total_spent, total_drop_value, cases_opened, received_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, r.ID, r.Name, r.PriceRaw, r.Price, r.ImageURL, r.TotalSpent, r.TotalDropValue, r.CasesOpened, r.ReceivedAt)
	}

	results := w.db.SendBatch(w.ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
