package model

import "github.com/google/uuid"

// -----------------------------------------------------------------------------
// Inventory Types
// -----------------------------------------------------------------------------

// Asset is one concrete item instance in the account's inventory.
// The inventory endpoint returns assets ordered newest-first.
type Asset struct {
	AssetID    string `json:"assetid"`    // Unique per instance
	ClassID    string `json:"classid"`    // Matches Description.ClassID
	InstanceID string `json:"instanceid"` // Matches Description.InstanceID
	Amount     string `json:"amount"`
}

// Description is shared metadata for a class of items, keyed by the
// (classid, instanceid) pair. Not unique per asset.
type Description struct {
	ClassID        string `json:"classid"`
	InstanceID     string `json:"instanceid"`
	MarketHashName string `json:"market_hash_name"`
	IconURL        string `json:"icon_url"`
	Tradable       int    `json:"tradable"`
}

// Inventory is one fetched inventory state: assets plus the descriptions
// needed to resolve their display metadata.
type Inventory struct {
	Assets       []Asset
	Descriptions []Description
}

// FindDescription returns the description matching the asset's
// (classid, instanceid) pair, or false when the response carries none.
func (inv *Inventory) FindDescription(a Asset) (Description, bool) {
	for _, d := range inv.Descriptions {
		if d.ClassID == a.ClassID && d.InstanceID == a.InstanceID {
			return d, true
		}
	}
	return Description{}, false
}

// -----------------------------------------------------------------------------
// Event Types
// -----------------------------------------------------------------------------

// Drop is one confirmed new item detected by the tracker.
type Drop struct {
	ID       uuid.UUID `json:"id"`        // Correlates with the Stats snapshot of the same cycle
	Name     string    `json:"name"`      // market_hash_name
	PriceRaw string    `json:"price_raw"` // Localized price text, or the lookup-failure sentinel
	Price    float64   `json:"price"`     // Parsed numeric price (0.0 on parse failure)
	ImageURL string    `json:"image_url"` // Derived from icon_url, empty if the item has none
}

// Stats is the running totals as of the most recent recorded drop.
// Profit is always recomputed as TotalDropValue - TotalSpent, never stored.
type Stats struct {
	DropID         uuid.UUID `json:"drop_id"` // Drop that produced this snapshot
	TotalSpent     float64   `json:"total_spent"`
	TotalDropValue float64   `json:"total_drop_value"`
	Profit         float64   `json:"profit"`
	CasesOpened    int       `json:"cases_opened"`
}

// EventKind discriminates tracker events.
type EventKind string

const (
	EventDrop  EventKind = "drop"
	EventStats EventKind = "stats"
)

// Event is one tracker emission. Exactly one of Drop or Stats is set,
// according to Kind. Within a cycle the stats snapshot is emitted before
// the drop event; both carry the same correlation ID.
type Event struct {
	Kind  EventKind `json:"kind"`
	Drop  Drop      `json:"drop,omitempty"`
	Stats Stats     `json:"stats,omitempty"`
}
