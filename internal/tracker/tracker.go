package tracker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okulov/casetrack/internal/feed"
	"github.com/okulov/casetrack/internal/model"
	"github.com/okulov/casetrack/internal/price"
	"github.com/okulov/casetrack/internal/seen"
	"github.com/okulov/casetrack/internal/stats"
)

// InventorySource fetches the account inventory, newest asset first.
type InventorySource interface {
	GetInventory(ctx context.Context) (*model.Inventory, error)
	IconURL(icon string) string
}

// PriceResolver resolves an item name to raw market price text.
type PriceResolver interface {
	Resolve(ctx context.Context, marketHashName string) string
}

// Config holds tracker configuration.
type Config struct {
	CasePrice     float64       // Cost of one case
	KeyPrice      float64       // Cost of one key
	PollInterval  time.Duration // Time between cycles (default: 3s)
	MetadataDelay time.Duration // Wait between detection and metadata/price resolution (default: 5s)
	FetchTimeout  time.Duration // Per-fetch timeout (default: 5s)
	EventBuffer   int           // Initial event feed capacity (default: 64)
}

// DefaultConfig returns sensible defaults; prices must still be set.
func DefaultConfig() Config {
	return Config{
		PollInterval:  3 * time.Second,
		MetadataDelay: 5 * time.Second,
		FetchTimeout:  5 * time.Second,
		EventBuffer:   64,
	}
}

// State is the tracker lifecycle state.
type State int32

const (
	StateCreated State = iota
	StateBaselining
	StatePolling
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateBaselining:
		return "baselining"
	case StatePolling:
		return "polling"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Tracker drives the inventory change detection loop. It owns the seen
// set and the running totals for its entire run; no other component holds
// a reference to either.
type Tracker struct {
	cfg       Config
	inventory InventorySource
	prices    PriceResolver
	logger    *slog.Logger

	seen   *seen.Set
	totals *stats.Aggregator
	events *feed.Feed

	state  atomic.Int32
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Tracker. The seen set and totals are created here and
// discarded with the tracker; restarts re-baseline from scratch.
func New(cfg Config, inventory InventorySource, prices PriceResolver, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.EventBuffer < 1 {
		cfg.EventBuffer = 64
	}
	return &Tracker{
		cfg:       cfg,
		inventory: inventory,
		prices:    prices,
		logger:    logger,
		seen:      seen.NewSet(),
		totals:    stats.NewAggregator(cfg.CasePrice, cfg.KeyPrice),
		events:    feed.New(cfg.EventBuffer),
	}
}

// Events returns the feed consumers read tracker events from. The feed
// closes once the tracker stops.
func (t *Tracker) Events() *feed.Feed {
	return t.events
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	return State(t.state.Load())
}

// Start begins the baseline fetch and polling loop.
func (t *Tracker) Start(ctx context.Context) error {
	t.ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(1)
	go t.run()

	t.logger.Info("tracker started",
		"poll_interval", t.cfg.PollInterval,
		"metadata_delay", t.cfg.MetadataDelay,
		"attempt_cost", t.cfg.CasePrice+t.cfg.KeyPrice,
	)

	return nil
}

// Stop cancels the loop and waits for it to exit. Returning nil is the
// "stopped" acknowledgment: the loop goroutine is gone and the event feed
// is closed.
func (t *Tracker) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("tracker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the tracker goroutine: baseline once, then poll until cancelled.
func (t *Tracker) run() {
	defer t.wg.Done()
	defer t.events.Close()
	defer t.state.Store(int32(StateStopped))

	t.state.Store(int32(StateBaselining))
	t.baseline()

	t.state.Store(int32(StatePolling))

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	// First cycle immediately after baselining.
	t.cycle()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			t.cycle()
		}
	}
}

// baseline marks every asset currently in the inventory as seen without
// emitting events. A failed fetch starts from an empty baseline: the
// items present at startup will then surface as drops on the first
// cycles, which only affects the very first interval.
func (t *Tracker) baseline() {
	inv, err := t.fetch()
	if err != nil {
		t.logger.Warn("baseline fetch failed, starting with empty baseline", "error", err)
		return
	}

	for _, a := range inv.Assets {
		t.seen.CheckAndMark(a.AssetID)
	}

	t.logger.Info("baseline loaded", "items", t.seen.Len())
}

// cycle runs one polling iteration. Every failure path is a skip: no
// event, no state change beyond what already happened, loop continues.
func (t *Tracker) cycle() {
	inv, err := t.fetch()
	if err != nil {
		t.logger.Debug("inventory fetch failed, skipping cycle", "error", err)
		return
	}

	// Only the first asset is inspected: the service returns newest-first
	// and at most one relevant change is assumed per interval. Items that
	// arrive in the same interval behind a newer one are not observed.
	newest := inv.Assets[0]
	if t.seen.CheckAndMark(newest.AssetID) {
		return
	}

	t.logger.Info("new asset detected", "assetid", newest.AssetID)

	// Give the remote service time to publish metadata for the new item.
	if !t.wait(t.cfg.MetadataDelay) {
		return
	}

	desc, ok := inv.FindDescription(newest)
	if !ok {
		t.logger.Warn("no description for new asset, skipping cycle",
			"assetid", newest.AssetID,
			"classid", newest.ClassID,
			"instanceid", newest.InstanceID,
		)
		return
	}

	name := desc.MarketHashName
	if name == "" {
		name = "unknown item"
	}

	rawPrice := t.resolvePrice(name)
	parsed := price.Parse(rawPrice)

	dropID := uuid.New()
	snapshot := t.totals.RecordDrop(dropID, parsed)

	// Stats first, then the drop, both tagged with the same id.
	t.events.Publish(model.Event{Kind: model.EventStats, Stats: snapshot})
	t.events.Publish(model.Event{Kind: model.EventDrop, Drop: model.Drop{
		ID:       dropID,
		Name:     name,
		PriceRaw: rawPrice,
		Price:    parsed,
		ImageURL: t.inventory.IconURL(desc.IconURL),
	}})

	t.logger.Info("drop recorded",
		"name", name,
		"price", parsed,
		"cases_opened", snapshot.CasesOpened,
		"profit", snapshot.Profit,
	)
}

func (t *Tracker) fetch() (*model.Inventory, error) {
	ctx, cancel := context.WithTimeout(t.ctx, t.cfg.FetchTimeout)
	defer cancel()
	return t.inventory.GetInventory(ctx)
}

func (t *Tracker) resolvePrice(name string) string {
	ctx, cancel := context.WithTimeout(t.ctx, t.cfg.FetchTimeout)
	defer cancel()
	return t.prices.Resolve(ctx, name)
}

// wait sleeps for d unless the tracker is cancelled first. Returns false
// on cancellation.
func (t *Tracker) wait(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-t.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
