package steam

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okulov/casetrack/internal/model"
)

// ErrMalformedInventory is returned when the inventory response is missing
// its assets or descriptions. Callers treat it like any other fetch
// failure: skip the cycle, poll again later.
var ErrMalformedInventory = errors.New("steam: inventory response missing assets or descriptions")

// inventoryWire is the raw inventory endpoint response.
type inventoryWire struct {
	Assets       []model.Asset       `json:"assets"`
	Descriptions []model.Description `json:"descriptions"`
	Success      int                 `json:"success"`
}

// GetInventory fetches the account's newest inventory slice. Assets come
// back ordered newest-first.
func (c *Client) GetInventory(ctx context.Context) (*model.Inventory, error) {
	path := fmt.Sprintf("/inventory/%s/%d/%d", c.steamID, c.appID, c.contextID)
	query := url.Values{
		"l":     {c.language},
		"count": {strconv.Itoa(c.count)},
	}

	var wire inventoryWire
	if err := c.get(ctx, path, query, &wire); err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	if len(wire.Assets) == 0 || len(wire.Descriptions) == 0 {
		return nil, ErrMalformedInventory
	}

	return &model.Inventory{
		Assets:       wire.Assets,
		Descriptions: wire.Descriptions,
	}, nil
}

// IconURL builds the full economy image URL for a description's icon
// identifier. Returns "" when the item carries no icon.
func (c *Client) IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return c.cdnBaseURL + "/economy/image/" + icon + "/360fx360f"
}
